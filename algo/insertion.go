package algo

func init() {
	Register(Descriptor{
		Name:    "insertion",
		Summary: "Grows a sorted prefix by sinking each new element into place.",
		Sorts:   true,
	}, SortFunc(insertionSort))
}

func insertionSort(r *Run) error {
	n := r.Len()
	for i := 1; i < n; i++ {
		for j := i; j > 0; j-- {
			greater, err := r.Greater(j-1, j)
			if err != nil {
				return err
			}
			if !greater {
				break
			}
			if err := r.Swap(j-1, j); err != nil {
				return err
			}
		}
	}
	return nil
}
