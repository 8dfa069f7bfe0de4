package algo

// FastFlows computes the unicriterion positive and negative flows of a ramp
// preference function with thresholds q <= p in O(n) after sorting.
//
// order must list the indices of perf by non-decreasing performance. Each pass
// keeps a window of the sorted order whose performances lie on the ramp of the
// current anchor, together with their running sum, and a count of elements that
// are already in full preference. Both boundaries only move forward, so every
// element enters and leaves the window at most once.
//
// The running sums hold performances relative to the smallest one, so columns
// far from zero keep the precision of their spread.
func FastFlows(perf []float64, order []int, q, p float64) (pos, neg []float64) {
	n := len(perf)
	pos = make([]float64, n)
	neg = make([]float64, n)
	if n < 2 {
		return pos, neg
	}
	if p == q {
		stepPositive(perf, order, q, pos)
		stepNegative(perf, order, q, neg)
		return pos, neg
	}
	rampPositive(perf, order, q, p, pos)
	rampNegative(perf, order, q, p, neg)
	return pos, neg
}

// rampPositive walks the sorted order upwards. For the anchor f the ramp is
// [f-p, f-q]: the window is order[head:tail] and order[tail:] is pending.
func rampPositive(perf []float64, order []int, q, p float64, out []float64) {
	n := len(order)
	span := p - q
	denom := float64(n - 1)
	base := perf[order[0]]

	var (
		full       int
		sum        float64
		head, tail int
	)
	for _, idx := range order {
		f := perf[idx]
		low, up := f-p, f-q

		for head < tail && perf[order[head]] <= low {
			sum -= perf[order[head]] - base
			head++
			full++
		}
		if head == tail {
			sum = 0
		}
		for tail < n && perf[order[tail]] <= up {
			x := perf[order[tail]]
			if x >= low {
				sum += x - base
			} else {
				// Only reachable with an empty window, which stays empty.
				full++
				head = tail + 1
			}
			tail++
		}

		width := float64(tail - head)
		out[idx] = (float64(full) + width*(f-base-q)/span - sum/span) / denom
	}
}

// rampNegative mirrors rampPositive walking downwards. For the anchor f the
// ramp is [f+q, f+p]: the window is order[lo:hi] and order[:lo] is pending.
func rampNegative(perf []float64, order []int, q, p float64, out []float64) {
	n := len(order)
	span := p - q
	denom := float64(n - 1)
	base := perf[order[0]]

	var (
		full int
		sum  float64
	)
	lo, hi := n, n
	for i := n - 1; i >= 0; i-- {
		idx := order[i]
		f := perf[idx]
		low, up := f+q, f+p

		for hi > lo && perf[order[hi-1]] >= up {
			sum -= perf[order[hi-1]] - base
			hi--
			full++
		}
		if hi == lo {
			sum = 0
		}
		for lo > 0 && perf[order[lo-1]] >= low {
			x := perf[order[lo-1]]
			if x <= up {
				sum += x - base
			} else {
				full++
				hi = lo - 1
			}
			lo--
		}

		width := float64(hi - lo)
		out[idx] = (float64(full) - width*(f-base+q)/span + sum/span) / denom
	}
}

// stepPositive handles p == q: the ramp collapses to the step d >= p, so every
// alternative at or below f-p counts once. With p == 0 the anchor itself is
// among them and is excluded.
func stepPositive(perf []float64, order []int, p float64, out []float64) {
	n := len(order)
	denom := float64(n - 1)
	tail := 0
	for _, idx := range order {
		up := perf[idx] - p
		for tail < n && perf[order[tail]] <= up {
			tail++
		}
		count := tail
		if p == 0 {
			count--
		}
		out[idx] = float64(count) / denom
	}
}

// stepNegative is the mirrored step count over alternatives at or above f+p.
func stepNegative(perf []float64, order []int, p float64, out []float64) {
	n := len(order)
	denom := float64(n - 1)
	lo := n
	for i := n - 1; i >= 0; i-- {
		idx := order[i]
		low := perf[idx] + p
		for lo > 0 && perf[order[lo-1]] >= low {
			lo--
		}
		count := n - lo
		if p == 0 {
			count--
		}
		out[idx] = float64(count) / denom
	}
}
