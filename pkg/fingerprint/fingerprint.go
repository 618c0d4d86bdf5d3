// Package fingerprint turns SMILES strings into fixed-size descriptor
// vectors used for molecular similarity comparison.
//
// A Calculator is configured once with a DescriptorKind and reused for
// every molecule in a batch. The kind catalog is resolved at construction
// time, so an unknown kind fails immediately instead of mid-batch.
package fingerprint

import (
	"errors"
	"fmt"
	"math/bits"
)

// DescriptorKind selects the fingerprint family a Calculator produces.
type DescriptorKind string

const (
	AtomPairs   DescriptorKind = "atompairs"
	MACCS       DescriptorKind = "maccs"
	Morgan2     DescriptorKind = "morgan2"
	Morgan3     DescriptorKind = "morgan3"
	RDKit       DescriptorKind = "rdkit"
	Topological DescriptorKind = "topo"
)

var (
	// ErrUnsupportedDescriptor indicates the requested kind is not in the catalog.
	ErrUnsupportedDescriptor = errors.New("unsupported descriptor kind")
	// ErrInvalidSMILES indicates the input string is not parseable as a molecule.
	ErrInvalidSMILES = errors.New("invalid SMILES string")
)

// InvalidSMILESError reports the offending input alongside the parse reason.
type InvalidSMILESError struct {
	SMILES string
	Reason string
}

func (e *InvalidSMILESError) Error() string {
	return fmt.Sprintf("invalid SMILES %q: %s", e.SMILES, e.Reason)
}

func (e *InvalidSMILESError) Unwrap() error { return ErrInvalidSMILES }

// Fingerprint is a fixed-size bit vector descriptor. Count-based kinds
// (atompairs, topo) additionally carry a raw count vector used by the
// dense similarity path.
type Fingerprint struct {
	bits   []uint64
	nbits  int
	counts []float32
}

func newFingerprint(nbits int) Fingerprint {
	return Fingerprint{
		bits:  make([]uint64, (nbits+63)/64),
		nbits: nbits,
	}
}

func newCountFingerprint(nbits int) Fingerprint {
	fp := newFingerprint(nbits)
	fp.counts = make([]float32, nbits)
	return fp
}

// Size returns the number of bit positions in the fingerprint.
func (fp Fingerprint) Size() int { return fp.nbits }

// Counts returns the raw count vector, or nil for bit-only kinds.
func (fp Fingerprint) Counts() []float32 { return fp.counts }

// Test reports whether bit i is set.
func (fp Fingerprint) Test(i int) bool {
	if i < 0 || i >= fp.nbits {
		return false
	}
	return fp.bits[i/64]&(1<<(uint(i)%64)) != 0
}

// OnBits returns the number of set bits.
func (fp Fingerprint) OnBits() int {
	n := 0
	for _, w := range fp.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// CommonOnBits returns the number of bits set in both fingerprints.
// Fingerprints of different sizes share no bits beyond the shorter one.
func (fp Fingerprint) CommonOnBits(other Fingerprint) int {
	n := 0
	words := min(len(fp.bits), len(other.bits))
	for i := 0; i < words; i++ {
		n += bits.OnesCount64(fp.bits[i] & other.bits[i])
	}
	return n
}

func (fp Fingerprint) set(i int) {
	fp.bits[i/64] |= 1 << (uint(i) % 64)
}

func (fp Fingerprint) add(i int) {
	fp.set(i)
	if fp.counts != nil {
		fp.counts[i]++
	}
}

// featurizerFunc computes one fingerprint from a parsed molecule.
type featurizerFunc func(mol *molecule) Fingerprint

// featurizers is the kind catalog. It is resolved once per Calculator;
// Compute never consults it again.
var featurizers = map[DescriptorKind]featurizerFunc{
	AtomPairs:   atomPairsFingerprint,
	MACCS:       maccsFingerprint,
	Morgan2:     func(m *molecule) Fingerprint { return morganFingerprint(m, 2) },
	Morgan3:     func(m *molecule) Fingerprint { return morganFingerprint(m, 3) },
	RDKit:       rdkitFingerprint,
	Topological: torsionFingerprint,
}

// Kinds returns the supported descriptor kinds, in no particular order.
func Kinds() []DescriptorKind {
	out := make([]DescriptorKind, 0, len(featurizers))
	for k := range featurizers {
		out = append(out, k)
	}
	return out
}

// Calculator computes fingerprints of a single configured kind.
type Calculator struct {
	kind DescriptorKind
	fn   featurizerFunc
}

// NewCalculator resolves the featurizer for kind, failing with
// ErrUnsupportedDescriptor if the kind is unknown.
func NewCalculator(kind DescriptorKind) (*Calculator, error) {
	fn, ok := featurizers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDescriptor, kind)
	}
	return &Calculator{kind: kind, fn: fn}, nil
}

// Kind returns the configured descriptor kind.
func (c *Calculator) Kind() DescriptorKind { return c.kind }

// Compute parses the SMILES string and returns its fingerprint.
// A string that does not parse fails with an *InvalidSMILESError.
func (c *Calculator) Compute(smiles string) (Fingerprint, error) {
	mol, err := parseSMILES(smiles)
	if err != nil {
		return Fingerprint{}, err
	}
	return c.fn(mol), nil
}
