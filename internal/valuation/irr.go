package valuation

import "math"

const (
	irrGuess         = 0.1
	irrMaxIterations = 100
	irrTolerance     = 1e-12
	irrBisectSteps   = 300
)

// irrBrackets are the candidate rates scanned when Newton's method fails.
var irrBrackets = []float64{-0.99, -0.9, -0.75, -0.5, -0.25, 0, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// IRR returns the rate r solving Σ cf[t]/(1+r)^t = 0, or 0.0 when no rate can be found.
// Use SolveIRR to tell a genuine 0% IRR apart from an undefined one.
func IRR(cashflows []float64) float64 {
	r, _ := SolveIRR(cashflows)
	return r
}

// SolveIRR finds the internal rate of return for cashflows.
// The bool is false when the series has no sign change or the solver does
// not converge; the rate is then 0.
//
// Newton-Raphson is tried first from a 10% guess. If it diverges or leaves the
// (-1, ∞) domain, the rate axis is scanned for a sign change and the bracket
// nearest to 0% is bisected.
func SolveIRR(cashflows []float64) (float64, bool) {
	if !hasSignChange(cashflows) {
		return 0, false
	}

	if r, ok := newtonIRR(cashflows); ok {
		return r, true
	}
	if r, ok := bisectIRR(cashflows); ok {
		return r, true
	}
	return 0, false
}

func hasSignChange(cashflows []float64) bool {
	var pos, neg bool
	for _, cf := range cashflows {
		if !isFinite(cf) {
			return false
		}
		if cf > 0 {
			pos = true
		} else if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

// npvAt discounts cashflows at rate r.
func npvAt(cashflows []float64, r float64) float64 {
	var sum float64
	for t, cf := range cashflows {
		sum += cf / math.Pow(1+r, float64(t))
	}
	return sum
}

// dnpvAt is the derivative of npvAt with respect to r.
func dnpvAt(cashflows []float64, r float64) float64 {
	var sum float64
	for t, cf := range cashflows {
		if t == 0 {
			continue
		}
		sum -= float64(t) * cf / math.Pow(1+r, float64(t+1))
	}
	return sum
}

func newtonIRR(cashflows []float64) (float64, bool) {
	r := irrGuess
	for range irrMaxIterations {
		f := npvAt(cashflows, r)
		d := dnpvAt(cashflows, r)
		if d == 0 || !isFinite(f) || !isFinite(d) {
			return 0, false
		}
		next := r - f/d
		if next <= -1 || !isFinite(next) {
			return 0, false
		}
		if math.Abs(next-r) < irrTolerance {
			return next, true
		}
		r = next
	}
	return 0, false
}

func bisectIRR(cashflows []float64) (float64, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i := 0; i+1 < len(irrBrackets); i++ {
		lo, hi := irrBrackets[i], irrBrackets[i+1]
		if npvAt(cashflows, lo)*npvAt(cashflows, hi) > 0 {
			continue
		}
		if dist := math.Abs((lo + hi) / 2); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return 0, false
	}

	lo, hi := irrBrackets[best], irrBrackets[best+1]
	flo := npvAt(cashflows, lo)
	for range irrBisectSteps {
		mid := (lo + hi) / 2
		fmid := npvAt(cashflows, mid)
		if fmid == 0 || (hi-lo)/2 < irrTolerance {
			return mid, true
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return (lo + hi) / 2, true
}
