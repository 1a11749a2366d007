package probability

import (
	"math"
	"math/rand"
	"time"

	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/resolver"
	"github.com/brunokim/judged/term"
)

// splitmixWeight spreads a sample index across a 64-bit seed space so that
// sampleWorld's per-sample rand.Source is reproducible given (seed, index)
// regardless of draw order — the property spec.md §5 requires to allow an
// implementation to sample in parallel.
const splitmixWeight int64 = -0x61C8864680B583EB

// Config configures a Monte-Carlo run (spec.md §4.4).
type Config struct {
	// N is the sample count. Must be positive.
	N int
	// Seed, if non-nil, makes the run reproducible. Nil means
	// nondeterministic (seeded from wall-clock time).
	Seed *int64
	// ConvergenceThreshold, if non-nil, stops sampling early once the
	// running Wilson-score 95% half-width for every answer falls below
	// it, subject to MinSamples.
	ConvergenceThreshold *float64
	// MinSamples floors the sample count a convergence check may stop
	// at. Zero means the default.
	MinSamples int
}

const defaultMinSamples = 100

func (c Config) minSamples() int {
	if c.MinSamples > 0 {
		return c.MinSamples
	}
	return defaultMinSamples
}

func (c Config) seed() int64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return time.Now().UnixNano()
}

// AnswerEstimate is one answer's estimated probability.
type AnswerEstimate struct {
	Subst       term.Substitution
	Probability float64
	Hits        int
	// SampleError is the absolute difference between this answer's
	// empirical hit rate and its analytically exact
	// probability under the declared distribution — a diagnostic
	// carried over from the source implementation's own error estimate,
	// not used to gate convergence.
	SampleError float64
}

// Result is the outcome of a Monte-Carlo run.
type Result struct {
	Samples   int
	Estimates []AnswerEstimate
}

// Run samples N worlds (or fewer, if a convergence threshold is set and
// reached) and estimates each answer's probability as hits/samples.
func Run(k *kb.KB, result *resolver.Result, cfg Config) (*Result, error) {
	if cfg.N <= 0 {
		cfg.N = 1
	}
	partitions := relevantPartitions(result.Answers)
	if err := checkProbabilities(k, partitions); err != nil {
		return nil, err
	}

	hits := make([]int, len(result.Answers))
	seed := cfg.seed()
	minSamples := cfg.minSamples()
	if minSamples > cfg.N {
		minSamples = cfg.N
	}

	samples := 0
	for samples < cfg.N {
		rng := rand.New(rand.NewSource(seed + int64(samples)*splitmixWeight))
		w := sampleWorld(k, partitions, rng)
		for i, a := range result.Answers {
			if a.Sentence.Evaluate(w) {
				hits[i]++
			}
		}
		samples++

		if cfg.ConvergenceThreshold != nil && samples >= minSamples && converged(hits, samples, *cfg.ConvergenceThreshold) {
			break
		}
	}

	estimates := make([]AnswerEstimate, len(result.Answers))
	for i, a := range result.Answers {
		p := float64(hits[i]) / float64(samples)
		exact := exactProbability(k, partitions, a.Sentence)
		estimates[i] = AnswerEstimate{
			Subst:       a.Subst,
			Probability: p,
			Hits:        hits[i],
			SampleError: math.Abs(p - exact),
		}
	}
	return &Result{Samples: samples, Estimates: estimates}, nil
}

// converged reports whether every answer's running Wilson-score 95%
// half-width is below threshold.
func converged(hits []int, samples int, threshold float64) bool {
	for _, h := range hits {
		if wilsonHalfWidth(h, samples) >= threshold {
			return false
		}
	}
	return true
}

// wilsonHalfWidth returns the half-width of the 95% Wilson score interval
// for a binomial proportion h/n.
func wilsonHalfWidth(h, n int) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	const z = 1.959963985 // 97.5th percentile of the standard normal
	p := float64(h) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := p + z*z/(2*nf)
	margin := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf))
	lo := (center - margin) / denom
	hi := (center + margin) / denom
	return (hi - lo) / 2
}
