// Package dbtest provides an in-memory Store for service tests. It
// mirrors the semantics of the SQL queries closely enough for the
// business logic to run against it unmodified.
package dbtest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mastercp/arena/internal/database"
)

type FakeStore struct {
	Users          map[int32]database.User
	TopicRatings   map[int32]database.UserTopicRating
	WeakTopics     map[int32]database.WeakTopic
	Contests       map[int32]database.Contest
	Problems       map[int32]database.ContestProblem
	History        map[int32]database.ProblemHistory
	nextID         int32
	historyByOwner map[string]int32
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Users:          map[int32]database.User{},
		TopicRatings:   map[int32]database.UserTopicRating{},
		WeakTopics:     map[int32]database.WeakTopic{},
		Contests:       map[int32]database.Contest{},
		Problems:       map[int32]database.ContestProblem{},
		History:        map[int32]database.ProblemHistory{},
		historyByOwner: map[string]int32{},
	}
}

func (f *FakeStore) next() int32 {
	f.nextID++
	return f.nextID
}

// ExecTx runs fn directly, the fake has no transactions to manage.
func (f *FakeStore) ExecTx(ctx context.Context, fn func(database.Store) error) error {
	return fn(f)
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// users

func (f *FakeStore) CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
	for _, u := range f.Users {
		if u.Username == arg.Username {
			return database.User{}, uniqueViolation("uq_users_username")
		}
		if u.Email != nil && arg.Email != nil && *u.Email == *arg.Email {
			return database.User{}, uniqueViolation("uq_users_email")
		}
	}
	user := database.User{
		ID:        f.next(),
		Username:  arg.Username,
		Email:     arg.Email,
		Rating:    arg.Rating,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.Users[user.ID] = user
	return user, nil
}

func (f *FakeStore) GetUserByID(ctx context.Context, id int32) (database.User, error) {
	user, ok := f.Users[id]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (f *FakeStore) GetUserByUsername(ctx context.Context, username string) (database.User, error) {
	for _, u := range f.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return database.User{}, pgx.ErrNoRows
}

func (f *FakeStore) ListUsers(ctx context.Context, arg database.ListUsersParams) ([]database.User, error) {
	users := make([]database.User, 0, len(f.Users))
	for _, u := range f.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Rating != users[j].Rating {
			return users[i].Rating > users[j].Rating
		}
		return users[i].ID < users[j].ID
	})
	return paginate(users, arg.Limit, arg.Offset), nil
}

func (f *FakeStore) UpdateUserEmail(ctx context.Context, arg database.UpdateUserEmailParams) (database.User, error) {
	user, ok := f.Users[arg.ID]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	for _, u := range f.Users {
		if u.ID != arg.ID && u.Email != nil && arg.Email != nil && *u.Email == *arg.Email {
			return database.User{}, uniqueViolation("uq_users_email")
		}
	}
	user.Email = arg.Email
	user.UpdatedAt = time.Now()
	f.Users[user.ID] = user
	return user, nil
}

func (f *FakeStore) UpdateUserContestStats(ctx context.Context, arg database.UpdateUserContestStatsParams) (database.User, error) {
	user, ok := f.Users[arg.ID]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	user.Rating = arg.Rating
	user.TotalContests++
	user.TotalProblemsSolved += arg.ProblemsSolved
	user.TotalProblemsAttempted += arg.ProblemsAttempted
	user.UpdatedAt = time.Now()
	f.Users[user.ID] = user
	return user, nil
}

func (f *FakeStore) DeleteUser(ctx context.Context, id int32) error {
	delete(f.Users, id)
	for rid, r := range f.TopicRatings {
		if r.UserID == id {
			delete(f.TopicRatings, rid)
		}
	}
	for wid, w := range f.WeakTopics {
		if w.UserID == id {
			delete(f.WeakTopics, wid)
		}
	}
	for cid, c := range f.Contests {
		if c.UserID == id {
			for pid, p := range f.Problems {
				if p.ContestID == cid {
					delete(f.Problems, pid)
				}
			}
			delete(f.Contests, cid)
		}
	}
	return nil
}

func (f *FakeStore) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(f.Users)), nil
}

// contests

func (f *FakeStore) CreateContest(ctx context.Context, arg database.CreateContestParams) (database.Contest, error) {
	for _, c := range f.Contests {
		if c.UserID == arg.UserID && c.Status == database.ContestStatusActive {
			return database.Contest{}, uniqueViolation("uq_contests_one_active")
		}
	}
	contest := database.Contest{
		ID:               f.next(),
		UserID:           arg.UserID,
		Status:           database.ContestStatusActive,
		RatingAtStart:    arg.RatingAtStart,
		NumProblems:      arg.NumProblems,
		TargetDifficulty: arg.TargetDifficulty,
		StartedAt:        arg.StartedAt,
		TimeLimitMinutes: arg.TimeLimitMinutes,
	}
	f.Contests[contest.ID] = contest
	return contest, nil
}

func (f *FakeStore) GetContestByID(ctx context.Context, id int32) (database.Contest, error) {
	contest, ok := f.Contests[id]
	if !ok {
		return database.Contest{}, pgx.ErrNoRows
	}
	return contest, nil
}

func (f *FakeStore) GetContestForUpdate(ctx context.Context, id int32) (database.Contest, error) {
	return f.GetContestByID(ctx, id)
}

func (f *FakeStore) GetActiveContestByUser(ctx context.Context, userID int32) (database.Contest, error) {
	for _, c := range f.Contests {
		if c.UserID == userID && c.Status == database.ContestStatusActive {
			return c, nil
		}
	}
	return database.Contest{}, pgx.ErrNoRows
}

func (f *FakeStore) ListContestsByUser(ctx context.Context, arg database.ListContestsByUserParams) ([]database.Contest, error) {
	contests := f.contestsOf(arg.UserID, "")
	return paginate(contests, arg.Limit, arg.Offset), nil
}

func (f *FakeStore) ListCompletedContestsByUser(ctx context.Context, userID int32) ([]database.Contest, error) {
	contests := f.contestsOf(userID, database.ContestStatusCompleted)
	sort.Slice(contests, func(i, j int) bool {
		return contests[i].EndedAt.Before(*contests[j].EndedAt)
	})
	return contests, nil
}

func (f *FakeStore) contestsOf(userID int32, status database.ContestStatus) []database.Contest {
	contests := []database.Contest{}
	for _, c := range f.Contests {
		if c.UserID == userID && (status == "" || c.Status == status) {
			contests = append(contests, c)
		}
	}
	sort.Slice(contests, func(i, j int) bool {
		return contests[i].StartedAt.After(contests[j].StartedAt)
	})
	return contests
}

func (f *FakeStore) FinishContest(ctx context.Context, arg database.FinishContestParams) (database.Contest, error) {
	contest, ok := f.Contests[arg.ID]
	if !ok {
		return database.Contest{}, pgx.ErrNoRows
	}
	contest.Status = arg.Status
	endedAt := arg.EndedAt
	contest.EndedAt = &endedAt
	contest.RatingChange = arg.RatingChange
	contest.ProblemsSolved = arg.ProblemsSolved
	contest.TotalTimeSeconds = arg.TotalTimeSeconds
	f.Contests[contest.ID] = contest
	return contest, nil
}

func (f *FakeStore) CountContests(ctx context.Context) (int64, error) {
	return int64(len(f.Contests)), nil
}

func (f *FakeStore) CountContestsByStatus(ctx context.Context, status database.ContestStatus) (int64, error) {
	var count int64
	for _, c := range f.Contests {
		if c.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *FakeStore) CountCompletedContestsByUser(ctx context.Context, userID int32) (int64, error) {
	return int64(len(f.contestsOf(userID, database.ContestStatusCompleted))), nil
}

func (f *FakeStore) CountPerfectContestsByUser(ctx context.Context, userID int32) (int64, error) {
	var count int64
	for _, c := range f.contestsOf(userID, database.ContestStatusCompleted) {
		if c.ProblemsSolved == c.NumProblems {
			count++
		}
	}
	return count, nil
}

// contest problems

func (f *FakeStore) CreateContestProblem(ctx context.Context, arg database.CreateContestProblemParams) (database.ContestProblem, error) {
	problem := database.ContestProblem{
		ID:                 f.next(),
		ContestID:          arg.ContestID,
		ProblemID:          arg.ProblemID,
		ProblemName:        arg.ProblemName,
		ProblemUrl:         arg.ProblemUrl,
		Topic:              arg.Topic,
		Difficulty:         arg.Difficulty,
		Source:             arg.Source,
		IsWeakTopicProblem: arg.IsWeakTopicProblem,
		Status:             database.SubmissionStatusPending,
	}
	f.Problems[problem.ID] = problem
	return problem, nil
}

func (f *FakeStore) ListContestProblems(ctx context.Context, contestID int32) ([]database.ContestProblem, error) {
	problems := []database.ContestProblem{}
	for _, p := range f.Problems {
		if p.ContestID == contestID {
			problems = append(problems, p)
		}
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].ID < problems[j].ID })
	return problems, nil
}

func (f *FakeStore) GetContestProblem(ctx context.Context, arg database.GetContestProblemParams) (database.ContestProblem, error) {
	for _, p := range f.Problems {
		if p.ContestID == arg.ContestID && p.ProblemID == arg.ProblemID {
			return p, nil
		}
	}
	return database.ContestProblem{}, pgx.ErrNoRows
}

func (f *FakeStore) MarkContestProblemStarted(ctx context.Context, arg database.MarkContestProblemStartedParams) (database.ContestProblem, error) {
	problem, ok := f.Problems[arg.ID]
	if !ok || problem.StartedAt != nil {
		return database.ContestProblem{}, pgx.ErrNoRows
	}
	startedAt := arg.StartedAt
	problem.StartedAt = &startedAt
	f.Problems[problem.ID] = problem
	return problem, nil
}

func (f *FakeStore) RecordContestProblemSubmission(ctx context.Context, arg database.RecordContestProblemSubmissionParams) (database.ContestProblem, error) {
	problem, ok := f.Problems[arg.ID]
	if !ok {
		return database.ContestProblem{}, pgx.ErrNoRows
	}
	submittedAt := arg.SubmittedAt
	problem.Status = arg.Status
	problem.SubmittedAt = &submittedAt
	problem.TimeTakenSeconds = arg.TimeTakenSeconds
	problem.Attempts++
	f.Problems[problem.ID] = problem
	return problem, nil
}

func (f *FakeStore) AverageSolveTimeByUser(ctx context.Context, userID int32) (*float64, error) {
	var sum, count float64
	for _, p := range f.Problems {
		contest, ok := f.Contests[p.ContestID]
		if !ok || contest.UserID != userID {
			continue
		}
		if p.Status == database.SubmissionStatusSolved && p.TimeTakenSeconds != nil {
			sum += float64(*p.TimeTakenSeconds)
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	avg := sum / count
	return &avg, nil
}

// topic ratings

func (f *FakeStore) GetTopicRating(ctx context.Context, arg database.GetTopicRatingParams) (database.UserTopicRating, error) {
	for _, r := range f.TopicRatings {
		if r.UserID == arg.UserID && r.Topic == arg.Topic {
			return r, nil
		}
	}
	return database.UserTopicRating{}, pgx.ErrNoRows
}

func (f *FakeStore) CreateTopicRating(ctx context.Context, arg database.CreateTopicRatingParams) (database.UserTopicRating, error) {
	rating := database.UserTopicRating{
		ID:        f.next(),
		UserID:    arg.UserID,
		Topic:     arg.Topic,
		Rating:    arg.Rating,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.TopicRatings[rating.ID] = rating
	return rating, nil
}

func (f *FakeStore) UpdateTopicRating(ctx context.Context, arg database.UpdateTopicRatingParams) (database.UserTopicRating, error) {
	rating, ok := f.TopicRatings[arg.ID]
	if !ok {
		return database.UserTopicRating{}, pgx.ErrNoRows
	}
	rating.Rating = arg.Rating
	rating.ProblemsSolved = arg.ProblemsSolved
	rating.ProblemsAttempted = arg.ProblemsAttempted
	rating.UpdatedAt = time.Now()
	f.TopicRatings[rating.ID] = rating
	return rating, nil
}

func (f *FakeStore) ListTopicRatingsByUser(ctx context.Context, userID int32) ([]database.UserTopicRating, error) {
	ratings := []database.UserTopicRating{}
	for _, r := range f.TopicRatings {
		if r.UserID == userID {
			ratings = append(ratings, r)
		}
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].Topic < ratings[j].Topic })
	return ratings, nil
}

// weak topics

func (f *FakeStore) GetActiveWeakTopic(ctx context.Context, arg database.GetActiveWeakTopicParams) (database.WeakTopic, error) {
	for _, w := range f.WeakTopics {
		if w.UserID == arg.UserID && w.Topic == arg.Topic && w.IsActive {
			return w, nil
		}
	}
	return database.WeakTopic{}, pgx.ErrNoRows
}

func (f *FakeStore) CreateWeakTopic(ctx context.Context, arg database.CreateWeakTopicParams) (database.WeakTopic, error) {
	for _, w := range f.WeakTopics {
		if w.UserID == arg.UserID && w.Topic == arg.Topic && w.IsActive {
			return database.WeakTopic{}, uniqueViolation("uq_weak_topics_active")
		}
	}
	weakTopic := database.WeakTopic{
		ID:           f.next(),
		UserID:       arg.UserID,
		Topic:        arg.Topic,
		CurrentLevel: arg.CurrentLevel,
		TargetLevel:  arg.TargetLevel,
		DetectedAt:   arg.DetectedAt,
		IsActive:     true,
	}
	f.WeakTopics[weakTopic.ID] = weakTopic
	return weakTopic, nil
}

func (f *FakeStore) UpdateWeakTopicProgress(ctx context.Context, arg database.UpdateWeakTopicProgressParams) (database.WeakTopic, error) {
	weakTopic, ok := f.WeakTopics[arg.ID]
	if !ok {
		return database.WeakTopic{}, pgx.ErrNoRows
	}
	weakTopic.CurrentLevel = arg.CurrentLevel
	weakTopic.ConsecutiveSolves = arg.ConsecutiveSolves
	weakTopic.TotalAttempts = arg.TotalAttempts
	weakTopic.TotalFailures = arg.TotalFailures
	weakTopic.LastAttemptAt = arg.LastAttemptAt
	weakTopic.LastLevelUpAt = arg.LastLevelUpAt
	weakTopic.ResolvedAt = arg.ResolvedAt
	weakTopic.IsActive = arg.IsActive
	f.WeakTopics[weakTopic.ID] = weakTopic
	return weakTopic, nil
}

func (f *FakeStore) ListWeakTopicsByUser(ctx context.Context, userID int32) ([]database.WeakTopic, error) {
	return f.weakTopicsOf(userID, false), nil
}

func (f *FakeStore) ListActiveWeakTopicsByUser(ctx context.Context, userID int32) ([]database.WeakTopic, error) {
	return f.weakTopicsOf(userID, true), nil
}

func (f *FakeStore) weakTopicsOf(userID int32, activeOnly bool) []database.WeakTopic {
	weakTopics := []database.WeakTopic{}
	for _, w := range f.WeakTopics {
		if w.UserID == userID && (!activeOnly || w.IsActive) {
			weakTopics = append(weakTopics, w)
		}
	}
	sort.Slice(weakTopics, func(i, j int) bool { return weakTopics[i].ID < weakTopics[j].ID })
	return weakTopics
}

func (f *FakeStore) CountActiveWeakTopicsByUser(ctx context.Context, userID int32) (int64, error) {
	return int64(len(f.weakTopicsOf(userID, true))), nil
}

// problem history

func (f *FakeStore) ListRecentProblemIDs(ctx context.Context, arg database.ListRecentProblemIDsParams) ([]string, error) {
	ids := []string{}
	for _, h := range f.History {
		if h.UserID == arg.UserID && !h.LastAttemptedAt.Before(arg.Since) {
			ids = append(ids, h.ProblemID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *FakeStore) UpsertProblemHistory(ctx context.Context, arg database.UpsertProblemHistoryParams) (database.ProblemHistory, error) {
	key := historyKey(arg.UserID, arg.ProblemID)
	id, ok := f.historyByOwner[key]
	if !ok {
		history := database.ProblemHistory{
			ID:              f.next(),
			UserID:          arg.UserID,
			ProblemID:       arg.ProblemID,
			LastAttemptedAt: arg.AttemptedAt,
			TimesAttempted:  1,
		}
		if arg.Solved {
			history.TimesSolved = 1
			history.BestTimeSeconds = arg.TimeTakenSeconds
		}
		f.History[history.ID] = history
		f.historyByOwner[key] = history.ID
		return history, nil
	}

	history := f.History[id]
	history.LastAttemptedAt = arg.AttemptedAt
	history.TimesAttempted++
	if arg.Solved {
		history.TimesSolved++
		if arg.TimeTakenSeconds != nil &&
			(history.BestTimeSeconds == nil || *arg.TimeTakenSeconds < *history.BestTimeSeconds) {
			history.BestTimeSeconds = arg.TimeTakenSeconds
		}
	}
	f.History[id] = history
	return history, nil
}

func historyKey(userID int32, problemID string) string {
	return fmt.Sprintf("%d|%s", userID, problemID)
}

func paginate[T any](items []T, limit, offset int32) []T {
	if offset >= int32(len(items)) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < int32(len(items)) {
		items = items[:limit]
	}
	return items
}

var _ database.Store = (*FakeStore)(nil)
