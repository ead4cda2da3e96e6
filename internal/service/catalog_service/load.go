package catalog_service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mastercp/arena/internal/arena_errors"
	log "github.com/sirupsen/logrus"
)

type problemsFile struct {
	Problems []Problem `json:"problems"`
}

// LoadFromFile reads the standardized problems file and builds the
// catalog indexes. Must be called once before the catalog is queried.
func (c *CatalogService) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("%w, cannot read problems file %s, %w", arena_errors.ErrInternal, path, err)
		log.Error(err)
		return err
	}
	return c.load(data)
}

func (c *CatalogService) load(data []byte) error {
	var file problemsFile
	if err := json.Unmarshal(data, &file); err != nil {
		err = fmt.Errorf("%w, cannot parse problems file, %w", arena_errors.ErrInternal, err)
		log.Error(err)
		return err
	}

	c.byID = make(map[string]Problem)
	c.byTopic = make(map[string][]Problem)
	c.problems = c.problems[:0]

	for _, p := range file.Problems {
		// entries without an id or url cannot be served to users
		if p.ID == "" || p.Url == "" {
			continue
		}
		c.problems = append(c.problems, p)
		c.byID[p.ID] = p
		topic := ProblemTopic(p)
		c.byTopic[topic] = append(c.byTopic[topic], p)
	}

	cache, err := lru.New[string, []Problem](candidateCacheSize)
	if err != nil {
		return errors.Join(arena_errors.ErrInternal, err)
	}
	c.candidates = cache

	log.WithFields(log.Fields{
		"problems": len(c.problems),
		"topics":   len(c.byTopic),
	}).Info("problem catalog loaded")

	return nil
}

// ProblemTopic derives the primary topic of a problem: its pattern id
// when tagged, otherwise its first primary skill.
func ProblemTopic(p Problem) string {
	if p.PatternID != "" {
		return p.PatternID
	}
	if len(p.PrimarySkills) > 0 {
		skill := strings.ReplaceAll(strings.ToLower(p.PrimarySkills[0]), " ", "_")
		return "skill_" + skill
	}
	return TopicGeneral
}

func (c *CatalogService) Get(problemID string) (Problem, bool) {
	p, ok := c.byID[problemID]
	return p, ok
}

func (c *CatalogService) Topics() []string {
	topics := make([]string, 0, len(c.byTopic))
	for topic := range c.byTopic {
		topics = append(topics, topic)
	}
	return topics
}

func (c *CatalogService) Count() int {
	return len(c.problems)
}
