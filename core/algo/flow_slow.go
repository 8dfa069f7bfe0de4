package algo

import "gonum.org/v1/gonum/mat"

// differenceMatrix returns the n x n matrix d[i][j] = perf[i] - perf[j].
func differenceMatrix(perf []float64) *mat.Dense {
	n := len(perf)
	d := mat.NewDense(n, n, nil)
	for i := range n {
		row := d.RawRowView(i)
		for j := range n {
			row[j] = perf[i] - perf[j]
		}
	}
	return d
}

// SlowFlows computes the unicriterion positive and negative flows of any
// preference function by comparing every ordered pair. It is O(n^2) and is the
// reference the fast algorithm is checked against.
func SlowFlows(perf []float64, fn PreferenceFunction) (pos, neg []float64) {
	n := len(perf)
	pos = make([]float64, n)
	neg = make([]float64, n)
	if n < 2 {
		return pos, neg
	}

	d := differenceMatrix(perf)
	denom := float64(n - 1)
	for i := range n {
		row := d.RawRowView(i)
		var sumPos, sumNeg float64
		for j, diff := range row {
			if i == j {
				continue
			}
			sumPos += fn.Normalize(diff)
			sumNeg += fn.Normalize(-diff)
		}
		pos[i] = sumPos / denom
		neg[i] = sumNeg / denom
	}
	return pos, neg
}

// NetPreferenceMatrix returns m[a][b] = P(a,b) - P(b,a) for one criterion,
// which is SymNormalize of the performance difference.
func NetPreferenceMatrix(perf []float64, fn PreferenceFunction) *mat.Dense {
	n := len(perf)
	if n == 0 {
		return nil
	}
	d := differenceMatrix(perf)
	d.Apply(func(i, j int, v float64) float64 {
		if i == j {
			return 0
		}
		return fn.SymNormalize(v)
	}, d)
	return d
}
