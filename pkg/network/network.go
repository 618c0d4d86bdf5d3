// Package network builds molecular similarity networks: one node per
// input SMILES string, one edge per molecule pair whose fingerprint
// similarity exceeds a configured threshold.
package network

import (
	"github.com/tidwall/btree"
)

// Node is one molecule in the network. IDs are dense and follow input
// order, so node k corresponds to the k-th SMILES string of the build.
type Node struct {
	ID               int    `json:"id"`
	SMILES           string `json:"smiles"`
	CategoricalLabel string `json:"categorical_label"`
}

// Edge connects two nodes whose similarity exceeded the threshold.
// The invariant I < J makes the pair canonical: the network is simple
// and undirected, so {i,j} and {j,i} are the same edge and self-loops
// never exist.
type Edge struct {
	I int `json:"i"`
	J int `json:"j"`
}

func edgeLess(a, b Edge) bool {
	if a.I != b.I {
		return a.I < b.I
	}
	return a.J < b.J
}

// Network is the node and edge collection produced by one build call.
// The edge set lives in a btree so iteration order is deterministic
// regardless of insertion order.
type Network struct {
	nodes []Node
	edges *btree.BTreeG[Edge]
}

// New returns an empty network.
func New() *Network {
	return &Network{edges: btree.NewBTreeG(edgeLess)}
}

// NumNodes returns the node count.
func (n *Network) NumNodes() int { return len(n.nodes) }

// NumEdges returns the edge count.
func (n *Network) NumEdges() int { return n.edges.Len() }

// Node returns the node with the given id.
func (n *Network) Node(id int) (Node, bool) {
	if id < 0 || id >= len(n.nodes) {
		return Node{}, false
	}
	return n.nodes[id], true
}

// Nodes returns the nodes in id order. The slice is a copy.
func (n *Network) Nodes() []Node {
	out := make([]Node, len(n.nodes))
	copy(out, n.nodes)
	return out
}

// Edges returns the edges sorted by (I, J).
func (n *Network) Edges() []Edge {
	out := make([]Edge, 0, n.edges.Len())
	n.edges.Ascend(Edge{}, func(e Edge) bool {
		out = append(out, e)
		return true
	})
	return out
}

// HasEdge reports whether {i, j} is in the network, in either order.
func (n *Network) HasEdge(i, j int) bool {
	if j < i {
		i, j = j, i
	}
	_, ok := n.edges.Get(Edge{I: i, J: j})
	return ok
}

// addEdge inserts the canonical form of {i, j}. Self-loops are ignored;
// re-inserting an existing pair is a no-op thanks to btree semantics.
func (n *Network) addEdge(i, j int) {
	if i == j {
		return
	}
	if j < i {
		i, j = j, i
	}
	n.edges.Set(Edge{I: i, J: j})
}
