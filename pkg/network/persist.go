package network

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chemnet/molnet/pkg/persistence"
)

// Snapshot schema: a JSON document wrapped in one checksummed frame.
// Edges are stored as canonical [i, j] pairs with i < j.
type persistedNetwork struct {
	Nodes []Node   `json:"nodes"`
	Edges [][2]int `json:"edges"`
}

// Encode writes the network as one snapshot frame.
func (n *Network) Encode(w io.Writer) error {
	doc := persistedNetwork{
		Nodes: n.Nodes(),
		Edges: make([][2]int, 0, n.NumEdges()),
	}
	for _, e := range n.Edges() {
		doc.Edges = append(doc.Edges, [2]int{e.I, e.J})
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return persistence.WriteFrame(w, payload)
}

// Decode reads one snapshot frame and reconstructs the network.
// Anything that frames, decodes or validates badly fails without
// returning a half-built network.
func Decode(r io.Reader) (*Network, error) {
	payload, err := persistence.ReadFrame(r)
	if err != nil {
		if err == io.EOF {
			return nil, persistence.ErrIncompleteFrame
		}
		return nil, err
	}

	var doc persistedNetwork
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleNetwork, err)
	}

	net := New()
	net.nodes = make([]Node, 0, len(doc.Nodes))
	for k, nd := range doc.Nodes {
		if nd.ID != k {
			return nil, fmt.Errorf("%w: node ids not dense (got %d at position %d)",
				ErrIncompatibleNetwork, nd.ID, k)
		}
		net.nodes = append(net.nodes, nd)
	}
	for _, e := range doc.Edges {
		i, j := e[0], e[1]
		if i < 0 || j < 0 || i >= len(net.nodes) || j >= len(net.nodes) {
			return nil, fmt.Errorf("%w: edge {%d,%d} out of range", ErrIncompatibleNetwork, i, j)
		}
		if i == j {
			return nil, fmt.Errorf("%w: self-loop on node %d", ErrIncompatibleNetwork, i)
		}
		net.addEdge(i, j)
	}
	return net, nil
}

// SaveNetwork writes the builder's network to path. The snapshot is
// written to a temp file first and renamed over the destination, so a
// crash mid-write never leaves a truncated snapshot behind.
func (b *Builder) SaveNetwork(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".molnet-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := b.net.Encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadNetwork loads a snapshot from path and replaces the builder's
// owned network with it. On any failure the previous network is kept.
func (b *Builder) ReadNetwork(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	net, err := Decode(f)
	if err != nil {
		return nil, err
	}
	b.net = net
	return net, nil
}
