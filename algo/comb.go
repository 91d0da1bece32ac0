package algo

func init() {
	Register(Descriptor{
		Name:    "comb",
		Summary: "Bubble passes over a shrinking gap that settles at one.",
		Sorts:   true,
	}, SortFunc(combSort))
}

func combSort(r *Run) error {
	n := r.Len()
	gap := n
	swapped := true
	for gap > 1 || swapped {
		gap = int(float64(gap) / 1.3)
		if gap < 1 {
			gap = 1
		}
		swapped = false
		for i := 0; i+gap < n; i++ {
			greater, err := r.Greater(i, i+gap)
			if err != nil {
				return err
			}
			if !greater {
				continue
			}
			if err := r.Swap(i, i+gap); err != nil {
				return err
			}
			swapped = true
		}
	}
	return nil
}
