package api

import (
	"net/http"

	"github.com/mastercp/arena/internal/database"
)

type platformStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalContests     int64 `json:"total_contests"`
	ActiveContests    int64 `json:"active_contests"`
	CompletedContests int64 `json:"completed_contests"`
	CatalogProblems   int   `json:"catalog_problems"`
	CatalogTopics     int   `json:"catalog_topics"`
}

func (a *Api) HandlerHealthz(w http.ResponseWriter, r *http.Request) {
	marshalAndRespond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *Api) HandlerStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalUsers, err := a.DB.CountUsers(ctx)
	if err != nil {
		handlerError(err, w)
		return
	}
	totalContests, err := a.DB.CountContests(ctx)
	if err != nil {
		handlerError(err, w)
		return
	}
	activeContests, err := a.DB.CountContestsByStatus(ctx, database.ContestStatusActive)
	if err != nil {
		handlerError(err, w)
		return
	}
	completedContests, err := a.DB.CountContestsByStatus(ctx, database.ContestStatusCompleted)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, platformStats{
		TotalUsers:        totalUsers,
		TotalContests:     totalContests,
		ActiveContests:    activeContests,
		CompletedContests: completedContests,
		CatalogProblems:   a.CatalogServiceConfig.Count(),
		CatalogTopics:     len(a.CatalogServiceConfig.Topics()),
	})
}
