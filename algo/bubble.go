package algo

func init() {
	Register(Descriptor{
		Name:    "bubble",
		Summary: "Adjacent-pair passes that stop early once a pass swaps nothing.",
		Sorts:   true,
	}, SortFunc(bubbleSort))
}

func bubbleSort(r *Run) error {
	n := r.Len()
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			greater, err := r.Greater(j, j+1)
			if err != nil {
				return err
			}
			if !greater {
				continue
			}
			if err := r.Swap(j, j+1); err != nil {
				return err
			}
			swapped = true
		}
		if !swapped {
			break
		}
	}
	return nil
}
