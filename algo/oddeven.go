package algo

func init() {
	Register(Descriptor{
		Name:    "oddeven",
		Summary: "Alternates odd and even adjacent passes until a clean round.",
		Sorts:   true,
	}, SortFunc(oddEvenSort))
}

func oddEvenSort(r *Run) error {
	n := r.Len()
	sorted := false
	for !sorted {
		sorted = true
		for i := 1; i+1 < n; i += 2 {
			greater, err := r.Greater(i, i+1)
			if err != nil {
				return err
			}
			if greater {
				if err := r.Swap(i, i+1); err != nil {
					return err
				}
				sorted = false
			}
		}
		for i := 0; i+1 < n; i += 2 {
			greater, err := r.Greater(i, i+1)
			if err != nil {
				return err
			}
			if greater {
				if err := r.Swap(i, i+1); err != nil {
					return err
				}
				sorted = false
			}
		}
	}
	return nil
}
