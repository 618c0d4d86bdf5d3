// Package similarity scores pairs of molecular fingerprints.
//
// The metric catalog mirrors the classic bit-vector similarity family
// (Tanimoto, Dice, Cosine, Tversky, ...). A Calculator resolves its
// metric function once at construction, so an unknown metric name fails
// before any scoring happens.
package similarity

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/gonum"

	"github.com/chemnet/molnet/pkg/fingerprint"
)

// Metric names a similarity formula over two fingerprints.
type Metric string

const (
	Asymmetric    Metric = "asymmetric"
	BraunBlanquet Metric = "braunblanquet"
	Cosine        Metric = "cosine"
	Dice          Metric = "dice"
	Kulczynski    Metric = "kulczynski"
	McConnaughey  Metric = "mcconnaughey"
	OnBit         Metric = "onbit"
	RogotGoldberg Metric = "rogotgoldberg"
	Russel        Metric = "russel"
	Sokal         Metric = "sokal"
	Tanimoto      Metric = "tanimoto"
	Tversky       Metric = "tversky"
)

// ErrUnsupportedMetric indicates the requested metric is not in the catalog.
var ErrUnsupportedMetric = errors.New("unsupported similarity metric")

// Params carries the Tversky weighting factors. Every other metric
// ignores them.
type Params struct {
	Alpha float64
	Beta  float64
}

// DefaultParams returns the Tversky weights that reduce it to Tanimoto.
func DefaultParams() Params { return Params{Alpha: 1, Beta: 1} }

// metricFunc computes a directed similarity score. a, b and c are the
// on-bit counts of fp1, fp2 and their intersection.
type metricFunc func(fp1, fp2 fingerprint.Fingerprint, p Params) float64

var metricFuncs = map[Metric]metricFunc{
	Asymmetric:    asymmetricSim,
	BraunBlanquet: braunBlanquetSim,
	Cosine:        cosineSim,
	Dice:          diceSim,
	Kulczynski:    kulczynskiSim,
	McConnaughey:  mcConnaugheySim,
	OnBit:         onBitSim,
	RogotGoldberg: rogotGoldbergSim,
	Russel:        russelSim,
	Sokal:         sokalSim,
	Tanimoto:      tanimotoSim,
	Tversky:       tverskySim,
}

// Metrics returns the supported metric names, in no particular order.
func Metrics() []Metric {
	out := make([]Metric, 0, len(metricFuncs))
	for m := range metricFuncs {
		out = append(out, m)
	}
	return out
}

// Calculator scores fingerprint pairs with one configured metric.
type Calculator struct {
	metric Metric
	fn     metricFunc
	params Params
}

// NewCalculator resolves the metric function, failing with
// ErrUnsupportedMetric if the name is unknown.
func NewCalculator(metric Metric, params Params) (*Calculator, error) {
	fn, ok := metricFuncs[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMetric, metric)
	}
	return &Calculator{metric: metric, fn: fn, params: params}, nil
}

// Metric returns the configured metric name.
func (c *Calculator) Metric() Metric { return c.metric }

// Score returns max(f(a,b), f(b,a)). Most metrics are symmetric and the
// second evaluation is a no-op; for the asymmetric family (Tversky with
// alpha != beta) the max keeps the edge decision order-independent.
func (c *Calculator) Score(a, b fingerprint.Fingerprint) float64 {
	return math.Max(c.fn(a, b, c.params), c.fn(b, a, c.params))
}

// --- Bit-vector counts ---

func abc(fp1, fp2 fingerprint.Fingerprint) (a, b, c float64) {
	return float64(fp1.OnBits()), float64(fp2.OnBits()), float64(fp1.CommonOnBits(fp2))
}

// --- Metric implementations ---
// Conventions: empty-versus-empty comparisons score 0 rather than NaN.

func tanimotoSim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	a, b, c := abc(fp1, fp2)
	if a+b-c == 0 {
		return 0
	}
	return c / (a + b - c)
}

// onBitSim coincides with Tanimoto on explicit bit vectors; both names
// are kept so either spelling resolves.
func onBitSim(fp1, fp2 fingerprint.Fingerprint, p Params) float64 {
	return tanimotoSim(fp1, fp2, p)
}

func diceSim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	a, b, c := abc(fp1, fp2)
	if a+b == 0 {
		return 0
	}
	return 2 * c / (a + b)
}

var gonumEngine = gonum.Implementation{}

// cosineSim uses the dense count vectors via BLAS when both sides carry
// them (count-based descriptor kinds); otherwise the bit-vector form.
func cosineSim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	v1, v2 := fp1.Counts(), fp2.Counts()
	if v1 != nil && v2 != nil && len(v1) == len(v2) {
		dot := gonumEngine.Sdot(len(v1), v1, 1, v2, 1)
		n1 := gonumEngine.Snrm2(len(v1), v1, 1)
		n2 := gonumEngine.Snrm2(len(v2), v2, 1)
		if n1 == 0 || n2 == 0 {
			return 0
		}
		return float64(dot) / (float64(n1) * float64(n2))
	}
	a, b, c := abc(fp1, fp2)
	if a == 0 || b == 0 {
		return 0
	}
	return c / math.Sqrt(a*b)
}

func asymmetricSim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	a, b, c := abc(fp1, fp2)
	if math.Min(a, b) == 0 {
		return 0
	}
	return c / math.Min(a, b)
}

func braunBlanquetSim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	a, b, c := abc(fp1, fp2)
	if math.Max(a, b) == 0 {
		return 0
	}
	return c / math.Max(a, b)
}

func kulczynskiSim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	a, b, c := abc(fp1, fp2)
	if a == 0 || b == 0 {
		return 0
	}
	return c * (a + b) / (2 * a * b)
}

func mcConnaugheySim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	a, b, c := abc(fp1, fp2)
	if a == 0 || b == 0 {
		return 0
	}
	return (c*(a+b) - a*b) / (a * b)
}

func russelSim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	_, _, c := abc(fp1, fp2)
	n := float64(fp1.Size())
	if n == 0 {
		return 0
	}
	return c / n
}

func sokalSim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	a, b, c := abc(fp1, fp2)
	d := 2*a + 2*b - 3*c
	if d == 0 {
		return 0
	}
	return c / d
}

func rogotGoldbergSim(fp1, fp2 fingerprint.Fingerprint, _ Params) float64 {
	a, b, c := abc(fp1, fp2)
	n := float64(fp1.Size())
	d := n - a - b + c // off in both
	var s float64
	if a+b > 0 {
		s += c / (a + b)
	}
	if 2*n-a-b > 0 {
		s += d / (2*n - a - b)
	}
	return s
}

func tverskySim(fp1, fp2 fingerprint.Fingerprint, p Params) float64 {
	a, b, c := abc(fp1, fp2)
	denom := p.Alpha*(a-c) + p.Beta*(b-c) + c
	if denom == 0 {
		return 0
	}
	return c / denom
}
