package probability

import (
	"math/rand"
	"sort"

	"github.com/brunokim/judged/errors"
	"github.com/brunokim/judged/kb"
	"github.com/brunokim/judged/resolver"
	"github.com/brunokim/judged/sentence"
)

// relevantPartitions collects, in sorted order, every partition mentioned
// by any answer's sentence — the only partitions a sample needs to draw.
func relevantPartitions(answers []resolver.Answer) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, a := range answers {
		for l := range a.Sentence.Labels() {
			if _, ok := seen[l.Partition]; !ok {
				seen[l.Partition] = struct{}{}
				out = append(out, l.Partition)
			}
		}
	}
	sort.Strings(out)
	return out
}

// checkProbabilities verifies every value of every relevant partition has a
// declared probability, returning a MissingProbability error naming the
// first partition found without one.
func checkProbabilities(k *kb.KB, partitions []string) error {
	for _, p := range partitions {
		part, ok := k.Partition(p)
		if !ok || len(part.Values) == 0 {
			return errors.Wrap(errors.MissingProbability,
				"partition %q has no declared values or probabilities", p)
		}
		for _, v := range part.Values {
			if _, ok := part.Prob[v]; !ok {
				return errors.Wrap(errors.MissingProbability,
					"label %s=%s has no declared probability", p, v)
			}
		}
	}
	return nil
}

// sampleWorld draws one value per partition from rng, according to the
// KB's declared probability distribution for that partition.
func sampleWorld(k *kb.KB, partitions []string, rng *rand.Rand) sentence.World {
	w := make(sentence.World, len(partitions))
	for _, p := range partitions {
		part, _ := k.Partition(p)
		roll := rng.Float64()
		cum := 0.0
		chosen := part.Values[len(part.Values)-1]
		for _, v := range part.Values {
			cum += part.Prob[v]
			if roll < cum {
				chosen = v
				break
			}
		}
		w[p] = chosen
	}
	return w
}

// exactProbability computes the analytic probability that s holds, by
// summing the product-of-probabilities over every world consistent with
// mutual exclusion on the given partitions. Used only for the Monte-Carlo
// back-end's diagnostic sample-error report; the exact back-end itself
// never computes a number (spec.md §4.4).
func exactProbability(k *kb.KB, partitions []string, s sentence.Sentence) float64 {
	total := 0.0
	var walk func(i int, w sentence.World, prob float64)
	walk = func(i int, w sentence.World, prob float64) {
		if i == len(partitions) {
			if s.Evaluate(w) {
				total += prob
			}
			return
		}
		p := partitions[i]
		part, _ := k.Partition(p)
		for _, v := range part.Values {
			w2 := make(sentence.World, len(w)+1)
			for k, vv := range w {
				w2[k] = vv
			}
			w2[p] = v
			walk(i+1, w2, prob*part.Prob[v])
		}
	}
	walk(0, sentence.World{}, 1.0)
	return total
}
