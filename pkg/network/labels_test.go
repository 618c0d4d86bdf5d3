package network

import (
	"slices"
	"testing"
)

func TestNormalizeLabelsStrings(t *testing.T) {
	labels := []string{"inactive", "active", "inactive", "toxic", "active"}
	vocab, indices := NormalizeLabels(labels)

	if want := []string{"active", "inactive", "toxic"}; !slices.Equal(vocab, want) {
		t.Fatalf("vocab = %v, want %v", vocab, want)
	}
	if want := []int{1, 0, 1, 2, 0}; !slices.Equal(indices, want) {
		t.Fatalf("indices = %v, want %v", indices, want)
	}

	// Round-trip: the vocabulary entry at each index is the raw label.
	for p, idx := range indices {
		if vocab[idx] != labels[p] {
			t.Errorf("position %d: vocab[%d] = %q, want %q", p, idx, vocab[idx], labels[p])
		}
	}
}

func TestNormalizeLabelsInts(t *testing.T) {
	vocab, indices := NormalizeLabels([]int{7, 1, 7, 3})
	if want := []int{1, 3, 7}; !slices.Equal(vocab, want) {
		t.Fatalf("vocab = %v, want %v", vocab, want)
	}
	if want := []int{2, 0, 2, 1}; !slices.Equal(indices, want) {
		t.Fatalf("indices = %v, want %v", indices, want)
	}
}

func TestNormalizeLabelsEmpty(t *testing.T) {
	vocab, indices := NormalizeLabels([]string(nil))
	if len(vocab) != 0 || len(indices) != 0 {
		t.Fatalf("empty input: vocab = %v, indices = %v", vocab, indices)
	}
}

func TestNormalizeLabelsDeterministic(t *testing.T) {
	// Any permutation of the same multiset yields the same vocabulary.
	a, _ := NormalizeLabels([]string{"x", "y", "z"})
	b, _ := NormalizeLabels([]string{"z", "x", "y"})
	if !slices.Equal(a, b) {
		t.Fatalf("vocabularies differ: %v vs %v", a, b)
	}
}
