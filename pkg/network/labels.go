package network

import (
	"cmp"
	"slices"
)

// NormalizeLabels maps raw class labels to a dense categorical encoding.
// It returns the sorted vocabulary of distinct labels and, for every
// input position, the index of its label within that vocabulary, so
// vocab[indices[p]] == labels[p] always holds.
//
// Sorting uses the label type's natural order, which makes the result
// deterministic for any permutation of the same multiset. An empty
// input yields an empty vocabulary and empty indices.
func NormalizeLabels[L cmp.Ordered](labels []L) (vocab []L, indices []int) {
	if len(labels) == 0 {
		return nil, nil
	}

	vocab = make([]L, len(labels))
	copy(vocab, labels)
	slices.Sort(vocab)
	vocab = slices.Compact(vocab)

	indices = make([]int, len(labels))
	for p, l := range labels {
		// Always found: vocab contains every distinct input label.
		i, _ := slices.BinarySearch(vocab, l)
		indices[p] = i
	}
	return vocab, indices
}
