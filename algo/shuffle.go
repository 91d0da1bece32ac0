package algo

func init() {
	Register(Descriptor{
		Name:    "shuffle",
		Summary: "Fisher-Yates rearrangement into a random permutation.",
		Sorts:   false,
	}, SortFunc(shuffleRun))
}

// shuffleRun walks the sequence back to front, swapping each slot with a
// random slot at or below it. Runs end without the completion animation
// since the result is not ordered.
func shuffleRun(r *Run) error {
	rng := r.Rand()
	for i := r.Len() - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		if err := r.Swap(i, j); err != nil {
			return err
		}
	}
	return nil
}
