package catalog_service

import (
	"fmt"
	"sort"
)

// candidatesForTopic returns problems of a topic whose difficulty lies
// within the tolerance band. The pre-exclusion list is cached since the
// catalog is immutable after load.
func (c *CatalogService) candidatesForTopic(topic string, difficulty, tolerance int32) []Problem {
	key := fmt.Sprintf("%s|%d|%d", topic, difficulty, tolerance)
	if cached, ok := c.candidates.Get(key); ok {
		return cached
	}

	var result []Problem
	for _, p := range c.byTopic[topic] {
		if abs32(p.Difficulty-difficulty) <= tolerance {
			result = append(result, p)
		}
	}
	c.candidates.Add(key, result)
	return result
}

// PickForTopic selects one random problem of the given topic near the
// given difficulty. When the band is empty it retries with a doubled
// tolerance before giving up.
func (c *CatalogService) PickForTopic(
	topic string,
	difficulty int32,
	tolerance int32,
	excluded map[string]bool,
) (Problem, bool) {
	candidates := filterExcluded(c.candidatesForTopic(topic, difficulty, tolerance), excluded)
	if len(candidates) == 0 {
		candidates = filterExcluded(c.candidatesForTopic(topic, difficulty, tolerance*2), excluded)
	}
	if len(candidates) == 0 {
		return Problem{}, false
	}
	return candidates[c.intn(len(candidates))], true
}

// Fallback selects up to count problems near the difficulty with no
// topic constraint and a widened band. Used when topic-distributed
// selection cannot fill a contest.
func (c *CatalogService) Fallback(
	difficulty int32,
	count int,
	excluded map[string]bool,
) []Problem {
	tolerance := c.Tolerance() * 3
	var candidates []Problem
	for _, p := range c.problems {
		if excluded[p.ID] {
			continue
		}
		if abs32(p.Difficulty-difficulty) <= tolerance {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) <= count {
		return candidates
	}
	// partial shuffle, take the first count
	for i := 0; i < count; i++ {
		j := i + c.intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:count]
}

// ProblemsForTopic lists problems of a topic within a difficulty range.
func (c *CatalogService) ProblemsForTopic(topic string, minDifficulty, maxDifficulty int32, limit int) []Problem {
	var result []Problem
	for _, p := range c.byTopic[topic] {
		if p.Difficulty >= minDifficulty && p.Difficulty <= maxDifficulty {
			result = append(result, p)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result
}

// ShuffledTopics returns every topic of the catalog in random order.
// Sorted before the shuffle so an injected rand source gives a stable
// sequence.
func (c *CatalogService) ShuffledTopics() []string {
	topics := c.Topics()
	sort.Strings(topics)
	for i := len(topics) - 1; i > 0; i-- {
		j := c.intn(i + 1)
		topics[i], topics[j] = topics[j], topics[i]
	}
	return topics
}

func filterExcluded(problems []Problem, excluded map[string]bool) []Problem {
	if len(excluded) == 0 {
		return problems
	}
	var result []Problem
	for _, p := range problems {
		if !excluded[p.ID] {
			result = append(result, p)
		}
	}
	return result
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
