package rating_service

import (
	"github.com/mastercp/arena/internal/service"
)

// Tunable constants of the adaptive model. Zero values fall back to the
// defaults below; the semantics are fixed, only the magnitudes are knobs.
const (
	DefaultSolveRatingStep      int32   = 5
	DefaultDetectionMinAttempts int32   = 2
	DefaultDetectionFailureRate float64 = 0.5
	DefaultDetectionLevelDrop   int32   = 20
	DefaultSolvesToAdvance      int32   = 2
	DefaultLevelStep            int32   = 5
	DefaultPerfectContestBonus  int32   = 10
	DefaultTargetLevelMargin    int32   = 10
)

type RatingService struct {
	Clock service.Clock

	// per-topic rating bump on a solve
	SolveRatingStep int32
	// weak topic detection fires at >= MinAttempts and >= FailureRate
	DetectionMinAttempts int32
	DetectionFailureRate float64
	// weak topic practice starts this far below the user's rating
	DetectionLevelDrop int32
	// consecutive solves needed to raise a weak topic level, and by how much
	SolvesToAdvance int32
	LevelStep       int32
	// overall rating gain for solving every problem of a contest
	PerfectContestBonus int32
	// weak topic resolves at user rating + margin
	TargetLevelMargin int32
}

// SubmissionEffect reports what a single submission changed in the
// adaptive model.
type SubmissionEffect struct {
	Topic             string
	WeakTopicDetected bool
	WeakTopicImproved bool
	WeakTopicResolved bool
}
