package catalog_service

import (
	"math/rand"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// difficulty tolerance when matching problems to a target rating
	DefaultDifficultyTolerance int32 = 5

	// candidate lists per (topic, difficulty, tolerance) triple
	candidateCacheSize = 512

	TopicGeneral = "general"
)

// Problem is a single entry of the standardized problems file. The
// catalog is read-only once loaded.
type Problem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Url             string   `json:"url"`
	Source          string   `json:"source"`
	Difficulty      int32    `json:"internal_rating"`
	PrimarySkills   []string `json:"primary_skills"`
	SecondarySkills []string `json:"secondary_skills"`
	PatternID       string   `json:"pattern_id"`
	Tags            []string `json:"tags"`
}

type CatalogService struct {
	// DifficultyTolerance overrides the default band width when non-zero
	DifficultyTolerance int32

	// Rand is used for candidate picks. Tests inject a seeded source,
	// production leaves it nil and falls back to the global source.
	Rand *rand.Rand

	problems   []Problem
	byID       map[string]Problem
	byTopic    map[string][]Problem
	candidates *lru.Cache[string, []Problem]
}

// Tolerance is the configured difficulty band width.
func (c *CatalogService) Tolerance() int32 {
	if c.DifficultyTolerance > 0 {
		return c.DifficultyTolerance
	}
	return DefaultDifficultyTolerance
}

func (c *CatalogService) intn(n int) int {
	if c.Rand != nil {
		return c.Rand.Intn(n)
	}
	return rand.Intn(n)
}
