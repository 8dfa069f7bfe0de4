package core

import (
	"sync"
)

// criterionFlows holds one criterion's unicriterion flows.
type criterionFlows struct {
	pos []float64
	neg []float64
}

// Solve computes every criterion's flows in index order and aggregates them
// with the normalized weights.
func (p *Problem) Solve() *Result {
	parts := make([]criterionFlows, p.Q())
	for k := range parts {
		parts[k] = p.computeCriterion(k)
	}
	return p.merge(parts)
}

// SolveParallel computes criteria on a pool of workers. Partial results are
// merged in criterion order, so the result is identical to Solve.
func (p *Problem) SolveParallel(workers int) *Result {
	q := p.Q()
	workers = max(1, min(workers, q))

	parts := make([]criterionFlows, q)
	jobs := make(chan int, q)
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for k := range jobs {
				// Each worker writes a unique index of parts.
				parts[k] = p.computeCriterion(k)
			}
		})
	}

	for k := range q {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	return p.merge(parts)
}

func (p *Problem) computeCriterion(k int) criterionFlows {
	pos, neg, _ := p.UnicriterionFlows(k)
	return criterionFlows{pos: pos, neg: neg}
}

// merge accumulates weighted flows criterion by criterion.
func (p *Problem) merge(parts []criterionFlows) *Result {
	n := p.N()
	r := &Result{
		positive: make([]float64, n),
		negative: make([]float64, n),
		critPos:  make([][]float64, len(parts)),
		critNeg:  make([][]float64, len(parts)),
		weights:  p.Weights(),
	}
	for k, part := range parts {
		w := p.weights[k]
		for i := range n {
			r.positive[i] += w * part.pos[i]
			r.negative[i] += w * part.neg[i]
		}
		r.critPos[k] = part.pos
		r.critNeg[k] = part.neg
	}
	return r
}
