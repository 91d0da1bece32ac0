package algo

func init() {
	Register(Descriptor{
		Name:    "quick",
		Summary: "Partitions around the last element of each range, then recurses.",
		Sorts:   true,
	}, SortFunc(quickSort))
}

func quickSort(r *Run) error {
	var sortRange func(lo, hi int) error
	sortRange = func(lo, hi int) error {
		if lo >= hi {
			return nil
		}
		p, err := partition(r, lo, hi)
		if err != nil {
			return err
		}
		if err := sortRange(lo, p-1); err != nil {
			return err
		}
		return sortRange(p+1, hi)
	}
	return sortRange(0, r.Len()-1)
}

// partition moves every element not exceeding the pivot to the left of
// the pivot's final slot. The last slot of the range holds the pivot.
func partition(r *Run, lo, hi int) (int, error) {
	i := lo - 1
	for j := lo; j < hi; j++ {
		greater, err := r.Greater(j, hi)
		if err != nil {
			return 0, err
		}
		if greater {
			continue
		}
		i++
		if i != j {
			if err := r.Swap(i, j); err != nil {
				return 0, err
			}
		}
	}
	i++
	if i != hi {
		if err := r.Swap(i, hi); err != nil {
			return 0, err
		}
	}
	return i, nil
}
