package network

import (
	"fmt"
	"sync"
	"time"

	"github.com/chemnet/molnet/pkg/fingerprint"
	"github.com/chemnet/molnet/pkg/metrics"
	"github.com/chemnet/molnet/pkg/similarity"
)

// DescriptorProvider turns a SMILES string into a descriptor vector.
// The build loop never inspects the fingerprint itself; it only hands
// it to the scorer.
type DescriptorProvider interface {
	Compute(smiles string) (fingerprint.Fingerprint, error)
}

// SimilarityScorer maps two descriptors of the same kind to a bounded
// similarity score.
type SimilarityScorer interface {
	Score(a, b fingerprint.Fingerprint) float64
}

// Options configures a Builder.
type Options struct {
	// Descriptor selects the fingerprint kind computed per molecule.
	Descriptor fingerprint.DescriptorKind

	// Metric selects the similarity formula, with Params feeding the
	// Tversky weights when that metric is chosen.
	Metric similarity.Metric
	Params similarity.Params

	// Threshold is the exclusive lower bound for edge creation: an edge
	// appears only when the pair scores strictly above it.
	Threshold float64

	// Workers bounds the goroutines used for fingerprint computation
	// and pairwise scoring. Values below 2 keep the build sequential.
	Workers int
}

// DefaultOptions mirrors the classic defaults: Morgan radius-2
// fingerprints compared with Tanimoto at 0.7.
func DefaultOptions() Options {
	return Options{
		Descriptor: fingerprint.Morgan2,
		Metric:     similarity.Tanimoto,
		Params:     similarity.DefaultParams(),
		Threshold:  0.7,
		Workers:    1,
	}
}

// Builder owns one Network and rebuilds it wholesale on every Build
// call. It is not safe for concurrent use; the parallelism knob in
// Options is internal to a single Build.
type Builder struct {
	opts     Options
	provider DescriptorProvider
	scorer   SimilarityScorer
	net      *Network
}

// NewBuilder wires the built-in fingerprint calculator and similarity
// scorer for the configured kind and metric. Unknown names fail here,
// never mid-build.
func NewBuilder(opts Options) (*Builder, error) {
	provider, err := fingerprint.NewCalculator(opts.Descriptor)
	if err != nil {
		return nil, err
	}
	scorer, err := similarity.NewCalculator(opts.Metric, opts.Params)
	if err != nil {
		return nil, err
	}
	return NewBuilderWith(provider, scorer, opts), nil
}

// NewBuilderWith accepts caller-supplied collaborators. The descriptor
// and metric fields of opts are informational here; only Threshold and
// Workers drive the build.
func NewBuilderWith(provider DescriptorProvider, scorer SimilarityScorer, opts Options) *Builder {
	return &Builder{
		opts:     opts,
		provider: provider,
		scorer:   scorer,
		net:      New(),
	}
}

// Network returns the builder's current network. It is the value built
// by the last successful Build or ReadNetwork; failed operations leave
// it untouched.
func (b *Builder) Network() *Network { return b.net }

// Build constructs a fresh network from parallel SMILES and label
// sequences and replaces the builder's owned network with it.
//
// The first unparseable SMILES string, in input order, aborts the whole
// batch; there is no partial graph on failure.
func (b *Builder) Build(smilesList, labels []string) (*Network, error) {
	if len(smilesList) != len(labels) {
		metrics.BuildsTotal.WithLabelValues("shape_mismatch").Inc()
		return nil, &ShapeMismatchError{Structures: len(smilesList), Labels: len(labels)}
	}

	start := time.Now()

	// 1. Descriptors, fail-fast in input order.
	fps, err := b.computeFingerprints(smilesList)
	if err != nil {
		metrics.BuildsTotal.WithLabelValues("invalid_structure").Inc()
		return nil, err
	}

	// 2. Label vocabulary and per-item categorical indices.
	vocab, indices := NormalizeLabels(labels)

	// 3. Nodes, numbered in input order. The stored label is the string
	// form of the vocabulary entry, not the intermediate index.
	net := New()
	net.nodes = make([]Node, len(smilesList))
	for k, smi := range smilesList {
		net.nodes[k] = Node{
			ID:               k,
			SMILES:           smi,
			CategoricalLabel: fmt.Sprint(vocab[indices[k]]),
		}
	}

	// 4. Exhaustive pairwise scoring. Quadratic on purpose: every pair
	// is evaluated, no approximate neighbor search.
	b.addEdges(net, fps)

	metrics.BuildsTotal.WithLabelValues("ok").Inc()
	metrics.BuildDuration.Observe(time.Since(start).Seconds())
	n := len(fps)
	metrics.ComparisonsTotal.Add(float64(n * (n - 1) / 2))
	metrics.NetworkNodes.Set(float64(net.NumNodes()))
	metrics.NetworkEdges.Set(float64(net.NumEdges()))

	b.net = net
	return net, nil
}

func (b *Builder) workers() int {
	if b.opts.Workers < 2 {
		return 1
	}
	return b.opts.Workers
}

// computeFingerprints resolves one fingerprint per input. With multiple
// workers the items are still attributed by index, so the reported
// failure is always the lowest-input-order one, exactly as if the loop
// had run sequentially.
func (b *Builder) computeFingerprints(smilesList []string) ([]fingerprint.Fingerprint, error) {
	n := len(smilesList)
	fps := make([]fingerprint.Fingerprint, n)

	if b.workers() == 1 {
		for i, smi := range smilesList {
			fp, err := b.provider.Compute(smi)
			if err != nil {
				return nil, err
			}
			fps[i] = fp
		}
		return fps, nil
	}

	errs := make([]error, n)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < b.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fps[i], errs[i] = b.provider.Compute(smilesList[i])
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return fps, nil
}

// addEdges scores every unordered pair and keeps those strictly above
// the threshold. With multiple workers the rows are interleaved across
// goroutines and each worker collects into a private slice, so the
// shared edge set is only touched during the final merge.
func (b *Builder) addEdges(net *Network, fps []fingerprint.Fingerprint) {
	n := len(fps)
	workers := b.workers()

	if workers == 1 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if b.scorer.Score(fps[i], fps[j]) > b.opts.Threshold {
					net.addEdge(i, j)
				}
			}
		}
		return
	}

	partials := make([][]Edge, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var local []Edge
			for i := w; i < n; i += workers {
				for j := i + 1; j < n; j++ {
					if b.scorer.Score(fps[i], fps[j]) > b.opts.Threshold {
						local = append(local, Edge{I: i, J: j})
					}
				}
			}
			partials[w] = local
		}(w)
	}
	wg.Wait()

	for _, local := range partials {
		for _, e := range local {
			net.addEdge(e.I, e.J)
		}
	}
}
