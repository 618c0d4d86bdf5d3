package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chemnet/molnet/pkg/persistence"
)

func buildSample(t *testing.T) (*Builder, *Network) {
	t.Helper()
	b := stubBuilder(1.0, 0.5, 1)
	net, err := b.Build([]string{"m1", "m2", "m3"}, []string{"x", "y", "x"})
	if err != nil {
		t.Fatal(err)
	}
	return b, net
}

func TestSaveLoadRoundTrip(t *testing.T) {
	b, original := buildSample(t)
	path := filepath.Join(t.TempDir(), "sample.graph")

	if err := b.SaveNetwork(path); err != nil {
		t.Fatal(err)
	}

	// Load into a fresh builder; it must replace the owned network.
	b2 := stubBuilder(1.0, 0.5, 1)
	loaded, err := b2.ReadNetwork(path)
	if err != nil {
		t.Fatal(err)
	}
	if b2.Network() != loaded {
		t.Error("ReadNetwork did not replace the owned network")
	}

	// Node attributes and edge set survive exactly.
	if got, want := loaded.Nodes(), original.Nodes(); len(got) != len(want) {
		t.Fatalf("node counts differ: %d vs %d", len(got), len(want))
	}
	for k, want := range original.Nodes() {
		got, _ := loaded.Node(k)
		if got != want {
			t.Errorf("node %d: %+v != %+v", k, got, want)
		}
	}
	gotE, wantE := loaded.Edges(), original.Edges()
	if len(gotE) != len(wantE) {
		t.Fatalf("edge counts differ: %d vs %d", len(gotE), len(wantE))
	}
	for k := range wantE {
		if gotE[k] != wantE[k] {
			t.Errorf("edge %d: %+v != %+v", k, gotE[k], wantE[k])
		}
	}
}

func TestSaveOverwritesExisting(t *testing.T) {
	b, _ := buildSample(t)
	path := filepath.Join(t.TempDir(), "sample.graph")

	if err := os.WriteFile(path, []byte("stale content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := b.SaveNetwork(path); err != nil {
		t.Fatal(err)
	}

	b2 := stubBuilder(1.0, 0.5, 1)
	if _, err := b2.ReadNetwork(path); err != nil {
		t.Fatalf("overwritten snapshot unreadable: %v", err)
	}
}

func TestReadCorruptSnapshot(t *testing.T) {
	b, _ := buildSample(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.graph")
	if err := b.SaveNetwork(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// 1. Flip a payload byte: checksum mismatch.
	corrupt := append([]byte(nil), data...)
	corrupt[len(corrupt)-1] ^= 0xFF
	if _, err := Decode(bytes.NewReader(corrupt)); !errors.Is(err, persistence.ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}

	// 2. Truncate mid-frame.
	if _, err := Decode(bytes.NewReader(data[:len(data)-4])); !errors.Is(err, persistence.ErrIncompleteFrame) {
		t.Errorf("expected ErrIncompleteFrame, got %v", err)
	}

	// 3. Not a snapshot at all.
	if _, err := Decode(bytes.NewReader([]byte("not a molnet snapshot stream"))); !errors.Is(err, persistence.ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}

	// A failed load never swaps the owned network.
	prev := b.Network()
	bad := filepath.Join(dir, "bad.graph")
	if err := os.WriteFile(bad, corrupt, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReadNetwork(bad); err == nil {
		t.Fatal("corrupt snapshot loaded successfully")
	}
	if b.Network() != prev {
		t.Error("failed load replaced the owned network")
	}
}

func TestDecodeRejectsIncompatibleSchema(t *testing.T) {
	encode := func(doc persistedNetwork) *bytes.Reader {
		payload, err := json.Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := persistence.WriteFrame(&buf, payload); err != nil {
			t.Fatal(err)
		}
		return bytes.NewReader(buf.Bytes())
	}

	cases := []struct {
		name string
		doc  persistedNetwork
	}{
		{"non-dense ids", persistedNetwork{Nodes: []Node{{ID: 5, SMILES: "C"}}}},
		{"edge out of range", persistedNetwork{
			Nodes: []Node{{ID: 0, SMILES: "C"}},
			Edges: [][2]int{{0, 3}},
		}},
		{"self-loop", persistedNetwork{
			Nodes: []Node{{ID: 0, SMILES: "C"}, {ID: 1, SMILES: "N"}},
			Edges: [][2]int{{1, 1}},
		}},
		{"negative endpoint", persistedNetwork{
			Nodes: []Node{{ID: 0, SMILES: "C"}, {ID: 1, SMILES: "N"}},
			Edges: [][2]int{{-1, 0}},
		}},
	}
	for _, tc := range cases {
		if _, err := Decode(encode(tc.doc)); !errors.Is(err, ErrIncompatibleNetwork) {
			t.Errorf("%s: expected ErrIncompatibleNetwork, got %v", tc.name, err)
		}
	}
}
