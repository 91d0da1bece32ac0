package algo

func init() {
	Register(Descriptor{
		Name:    "cocktail",
		Summary: "Bubble passes alternating direction, shrinking both ends.",
		Sorts:   true,
	}, SortFunc(cocktailSort))
}

func cocktailSort(r *Run) error {
	lo := 0
	hi := r.Len() - 1
	swapped := true
	for swapped {
		swapped = false
		for i := lo; i < hi; i++ {
			greater, err := r.Greater(i, i+1)
			if err != nil {
				return err
			}
			if greater {
				if err := r.Swap(i, i+1); err != nil {
					return err
				}
				swapped = true
			}
		}
		if !swapped {
			break
		}
		hi--
		swapped = false
		for i := hi; i > lo; i-- {
			greater, err := r.Greater(i-1, i)
			if err != nil {
				return err
			}
			if greater {
				if err := r.Swap(i-1, i); err != nil {
					return err
				}
				swapped = true
			}
		}
		lo++
	}
	return nil
}
