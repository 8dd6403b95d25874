package prob

// Or returns the probability that at least one of the independent events with
// probabilities terms occurs. For independent events the inclusion–exclusion
// sum Σ P(Lᵢ) − Σ P(Lᵢ∩Lⱼ) + … collapses to 1 − ∏(1 − pᵢ), which is what is
// evaluated here.
//
// Zero terms yield 0; a single term yields that term unchanged.
// Complexity: O(k).
func Or[T Value[T]](terms ...T) T {
	var zero T
	switch len(terms) {
	case 0:
		return zero
	case 1:
		return terms[0]
	}
	miss := One[T]()
	for _, t := range terms {
		miss = miss.Mul(t.OneMinus()) // probability that every event fails
	}

	return miss.OneMinus()
}

// InclusionExclusion evaluates the literal alternating expansion over all
// non-empty subsets of terms (independent events, so P(∩) = ∏). It exists to
// cross-check Or on small inputs; it is exponential in len(terms).
//
// Positive and negative subset sums are accumulated separately because Value
// has no subtraction: result = pos − neg = 1 − ((1 − pos) + neg). Partial
// sums may exceed 1, so only unclipped types such as Float give exact results;
// Interval sums clip at 1 and must use Or.
func InclusionExclusion[T Value[T]](terms ...T) T {
	var pos, neg T
	n := len(terms)
	for mask := 1; mask < 1<<n; mask++ {
		prod := One[T]()
		bits := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				prod = prod.Mul(terms[i])
				bits++
			}
		}
		if bits%2 == 1 {
			pos = pos.Add(prod)
		} else {
			neg = neg.Add(prod)
		}
	}

	return pos.OneMinus().Add(neg).OneMinus()
}

// WeightedSum returns Σ weights[i]·values[i]. Extra entries in the longer
// slice are ignored.
func WeightedSum[T Value[T]](weights, values []T) T {
	var acc T
	n := len(weights)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		acc = acc.Add(weights[i].Mul(values[i]))
	}

	return acc
}
