package algo

func init() {
	Register(Descriptor{
		Name:    "heap",
		Summary: "Builds a max-heap in place and extracts the maximum repeatedly.",
		Sorts:   true,
	}, SortFunc(heapSort))
}

func heapSort(r *Run) error {
	n := r.Len()
	for i := n/2 - 1; i >= 0; i-- {
		if err := siftDown(r, i, n); err != nil {
			return err
		}
	}
	for end := n - 1; end > 0; end-- {
		if err := r.Swap(0, end); err != nil {
			return err
		}
		if err := siftDown(r, 0, end); err != nil {
			return err
		}
	}
	return nil
}

// siftDown restores the max-heap property for the subtree rooted at root,
// considering only the first size slots.
func siftDown(r *Run, root, size int) error {
	for {
		child := 2*root + 1
		if child >= size {
			return nil
		}
		if child+1 < size {
			rightGreater, err := r.Greater(child+1, child)
			if err != nil {
				return err
			}
			if rightGreater {
				child++
			}
		}
		childGreater, err := r.Greater(child, root)
		if err != nil {
			return err
		}
		if !childGreater {
			return nil
		}
		if err := r.Swap(root, child); err != nil {
			return err
		}
		root = child
	}
}
