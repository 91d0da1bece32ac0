package algo

func init() {
	Register(Descriptor{
		Name:    "selection",
		Summary: "Selects the minimum of the unsorted tail and swaps it forward.",
		Sorts:   true,
	}, SortFunc(selectionSort))
}

func selectionSort(r *Run) error {
	n := r.Len()
	for i := 0; i < n-1; i++ {
		min := i
		for j := i + 1; j < n; j++ {
			greater, err := r.Greater(min, j)
			if err != nil {
				return err
			}
			if greater {
				min = j
			}
		}
		if min == i {
			continue
		}
		if err := r.Swap(i, min); err != nil {
			return err
		}
	}
	return nil
}
