package contest_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mastercp/arena/internal/arena_errors"
	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service"
	"github.com/mastercp/arena/internal/service/catalog_service"
	log "github.com/sirupsen/logrus"
)

type selectedProblem struct {
	problem     catalog_service.Problem
	topic       string
	isWeakTopic bool
}

// StartContest assembles a personalized problem set and opens a new
// contest for the user. A user can hold at most one active contest.
func (c *ContestService) StartContest(
	ctx context.Context,
	userID int32,
	request StartContestRequest,
) (detail ContestDetail, err error) {
	if request.NumProblems == 0 {
		request.NumProblems = service.DefaultNumProblems
	}
	if request.TimeLimitMinutes == 0 {
		request.TimeLimitMinutes = service.DefaultTimeLimitMinutes
	}
	includeWeakTopics := request.IncludeWeakTopics == nil || *request.IncludeWeakTopics

	if err = service.ValidateInput(request); err != nil {
		return
	}

	err = c.DB.ExecTx(ctx, func(q database.Store) error {
		user, txErr := q.GetUserByID(ctx, userID)
		if txErr != nil {
			if errors.Is(txErr, pgx.ErrNoRows) {
				return fmt.Errorf("%w, no user exist with id %d", arena_errors.ErrNotFound, userID)
			}
			return arena_errors.HandleDBErrors(txErr, nil, "failed to fetch user")
		}

		// a second active contest must never be created. the partial
		// unique index on contests backs this check up
		active, txErr := q.GetActiveContestByUser(ctx, userID)
		if txErr == nil {
			log.Warnf(
				"user %d tried to start a contest while contest %d is active",
				userID, active.ID,
			)
			return fmt.Errorf(
				"%w, user already has an active contest with id %d",
				arena_errors.ErrConflict, active.ID,
			)
		}
		if !errors.Is(txErr, pgx.ErrNoRows) {
			return arena_errors.HandleDBErrors(txErr, nil, "failed to check active contest")
		}

		targetDifficulty := c.RatingServiceConfig.TargetDifficultyFor(user.Rating)

		var weakTopics []database.WeakTopic
		if includeWeakTopics {
			weakTopics, txErr = q.ListActiveWeakTopicsByUser(ctx, userID)
			if txErr != nil {
				return arena_errors.HandleDBErrors(txErr, nil, "failed to list weak topics")
			}
		}

		now := c.now()
		recentIDs, txErr := q.ListRecentProblemIDs(ctx, database.ListRecentProblemIDsParams{
			UserID: userID,
			Since:  now.Add(-c.recentProblemWindow()),
		})
		if txErr != nil {
			return arena_errors.HandleDBErrors(txErr, nil, "failed to list recent problems")
		}
		excluded := make(map[string]bool, len(recentIDs))
		for _, id := range recentIDs {
			excluded[id] = true
		}

		selected := c.selectProblems(int(request.NumProblems), targetDifficulty, weakTopics, excluded)
		if len(selected) < int(request.NumProblems) {
			log.Warnf(
				"could not assemble contest for user %d: found %d of %d problems",
				userID, len(selected), request.NumProblems,
			)
			return fmt.Errorf(
				"%w, found %d problems, needed %d",
				arena_errors.ErrInsufficientCatalog, len(selected), request.NumProblems,
			)
		}

		contest, txErr := q.CreateContest(ctx, database.CreateContestParams{
			UserID:           userID,
			RatingAtStart:    user.Rating,
			NumProblems:      request.NumProblems,
			TargetDifficulty: targetDifficulty,
			StartedAt:        now,
			TimeLimitMinutes: request.TimeLimitMinutes,
		})
		if txErr != nil {
			return arena_errors.HandleDBErrors(
				txErr,
				map[string]map[string]string{
					arena_errors.CodeUniqueConstraint: {
						"uq_contests_one_active": "user already has an active contest",
					},
				},
				"failed to create contest",
			)
		}

		problems := make([]database.ContestProblem, 0, len(selected))
		for _, sel := range selected {
			var url *string
			if sel.problem.Url != "" {
				u := sel.problem.Url
				url = &u
			}
			cp, txErr := q.CreateContestProblem(ctx, database.CreateContestProblemParams{
				ContestID:          contest.ID,
				ProblemID:          sel.problem.ID,
				ProblemName:        sel.problem.Name,
				ProblemUrl:         url,
				Topic:              sel.topic,
				Difficulty:         sel.problem.Difficulty,
				Source:             sel.problem.Source,
				IsWeakTopicProblem: sel.isWeakTopic,
			})
			if txErr != nil {
				return arena_errors.HandleDBErrors(txErr, nil, "failed to create contest problem")
			}
			problems = append(problems, cp)
		}

		detail = ContestDetail{Contest: contest, Problems: problems}
		return nil
	})
	if err != nil {
		return
	}

	log.WithFields(log.Fields{
		"contest_id":        detail.ID,
		"user_id":           userID,
		"num_problems":      detail.NumProblems,
		"target_difficulty": detail.TargetDifficulty,
	}).Info("contest started")

	return
}

// selectProblems fills the contest slots. Active weak topics get up to
// half of the slots at their current practice level; the rest is spread
// across distinct catalog topics around the target difficulty, with
// topic repeats and a relaxed band only as a last resort.
func (c *ContestService) selectProblems(
	numProblems int,
	targetDifficulty int32,
	weakTopics []database.WeakTopic,
	excluded map[string]bool,
) []selectedProblem {
	catalog := c.CatalogServiceConfig
	tolerance := catalog.Tolerance()

	selected := make([]selectedProblem, 0, numProblems)
	usedTopics := make(map[string]bool)
	used := make(map[string]bool, len(excluded))
	for id := range excluded {
		used[id] = true
	}

	weakSlots := 0
	if len(weakTopics) > 0 {
		weakSlots = numProblems / maxWeakTopicShare
		if weakSlots < 1 {
			weakSlots = 1
		}
		if weakSlots > len(weakTopics) {
			weakSlots = len(weakTopics)
		}
	}

	for _, wt := range weakTopics[:weakSlots] {
		problem, ok := catalog.PickForTopic(
			wt.Topic,
			wt.CurrentLevel,
			tolerance+weakTopicExtraTolerance,
			used,
		)
		if !ok {
			continue
		}
		selected = append(selected, selectedProblem{
			problem:     problem,
			topic:       wt.Topic,
			isWeakTopic: true,
		})
		used[problem.ID] = true
		usedTopics[wt.Topic] = true
	}

	// first pass: one problem per unused topic
	topics := catalog.ShuffledTopics()
	for _, topic := range topics {
		if len(selected) >= numProblems {
			break
		}
		if usedTopics[topic] {
			continue
		}
		problem, ok := catalog.PickForTopic(topic, targetDifficulty, tolerance, used)
		if !ok {
			continue
		}
		selected = append(selected, selectedProblem{problem: problem, topic: topic})
		used[problem.ID] = true
		usedTopics[topic] = true
	}

	// second pass: allow topic repeats
	for _, topic := range topics {
		if len(selected) >= numProblems {
			break
		}
		problem, ok := catalog.PickForTopic(topic, targetDifficulty, tolerance, used)
		if !ok {
			continue
		}
		selected = append(selected, selectedProblem{problem: problem, topic: topic})
		used[problem.ID] = true
	}

	// last resort: relax the topic constraint entirely
	if len(selected) < numProblems {
		for _, problem := range catalog.Fallback(targetDifficulty, numProblems-len(selected), used) {
			selected = append(selected, selectedProblem{
				problem: problem,
				topic:   catalog_service.ProblemTopic(problem),
			})
			used[problem.ID] = true
		}
	}

	return selected
}
