package algo

import "github.com/TexablePlum/Sort-Algoritms/core"

func init() {
	Register(Descriptor{
		Name:    "merge",
		Summary: "Recursively merges sorted halves without leaving the sequence.",
		Sorts:   true,
	}, SortFunc(mergeSort))
}

func mergeSort(r *Run) error {
	return mergeRange(r, 0, r.Len())
}

func mergeRange(r *Run, lo, hi int) error {
	if hi-lo < 2 {
		return nil
	}
	mid := lo + (hi-lo)/2
	if err := mergeRange(r, lo, mid); err != nil {
		return err
	}
	if err := mergeRange(r, mid, hi); err != nil {
		return err
	}
	return mergeWindows(r, lo, mid, hi)
}

// mergeWindows merges the sorted windows [lo, mid) and [mid, hi). The
// merged order is decided first by comparing slots in place, then applied
// through in-window swaps, so the sequence holds a valid permutation at
// every suspension point.
func mergeWindows(r *Run, lo, mid, hi int) error {
	order := make([]*core.Line, 0, hi-lo)
	li, ri := lo, mid
	for li < mid && ri < hi {
		greater, err := r.Greater(li, ri)
		if err != nil {
			return err
		}
		if greater {
			order = append(order, r.LineAt(ri))
			ri++
		} else {
			order = append(order, r.LineAt(li))
			li++
		}
	}
	for ; li < mid; li++ {
		order = append(order, r.LineAt(li))
	}
	for ; ri < hi; ri++ {
		order = append(order, r.LineAt(ri))
	}

	for t, ln := range order {
		dst := lo + t
		cur := r.IndexOf(ln, dst)
		if cur < 0 || cur == dst {
			continue
		}
		if err := r.Swap(cur, dst); err != nil {
			return err
		}
	}
	return nil
}
