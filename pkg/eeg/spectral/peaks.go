package spectral

import "sort"

// FindPeaks locates local maxima with value >= height, enforcing a
// minimum inter-peak distance in samples. When two candidates fall
// within the refractory distance, the taller one wins. Plateaus count
// as a single peak at their midpoint. Returned indices are ascending.
func FindPeaks(x []float64, height float64, distance int) []int {
	var candidates []int

	i := 1
	for i < len(x)-1 {
		if x[i] <= x[i-1] {
			i++
			continue
		}
		// Possible peak or left edge of a plateau.
		j := i
		for j < len(x)-1 && x[j+1] == x[i] {
			j++
		}
		if j < len(x)-1 && x[j+1] < x[i] {
			candidates = append(candidates, (i+j)/2)
		}
		i = j + 1
	}

	peaks := candidates[:0]
	for _, p := range candidates {
		if x[p] >= height {
			peaks = append(peaks, p)
		}
	}

	if distance <= 1 || len(peaks) < 2 {
		return peaks
	}

	// Resolve distance conflicts highest-first.
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] > x[peaks[order[b]]]
	})

	suppressed := make([]bool, len(peaks))
	for _, idx := range order {
		if suppressed[idx] {
			continue
		}
		for other := range peaks {
			if other == idx || suppressed[other] {
				continue
			}
			d := peaks[other] - peaks[idx]
			if d < 0 {
				d = -d
			}
			if d < distance {
				suppressed[other] = true
			}
		}
	}

	kept := make([]int, 0, len(peaks))
	for i, p := range peaks {
		if !suppressed[i] {
			kept = append(kept, p)
		}
	}
	return kept
}
