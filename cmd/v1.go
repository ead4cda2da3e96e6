package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/mastercp/arena/middleware"
)

func NewV1Router() *chi.Mux {
	v1 := chi.NewRouter()

	v1.Use(middleware.RequestID)
	v1.Use(middleware.RequestLogger)

	// configure all endpoints
	v1.Get("/healthz", apiConfig.HandlerHealthz)
	v1.Get("/stats", apiConfig.HandlerStats)

	// users layer
	v1.Post("/users", apiConfig.HandlerRegisterUser)
	v1.Get("/users", apiConfig.HandlerListUsers)
	v1.Get("/users/by-username/{username}", apiConfig.HandlerGetUserByUsername)
	v1.Get("/users/{id}", apiConfig.HandlerGetUser)
	v1.Patch("/users/{id}", apiConfig.HandlerUpdateUser)
	v1.Delete("/users/{id}", apiConfig.HandlerDeleteUser)
	v1.Get("/users/{id}/topic-ratings", apiConfig.HandlerGetTopicRatings)
	v1.Get("/users/{id}/weak-topics", apiConfig.HandlerGetWeakTopics)
	v1.Get("/users/{id}/weak-topics/{topic}/practice", apiConfig.HandlerWeakTopicPractice)
	v1.Get("/users/{id}/statistics", apiConfig.HandlerGetUserStatistics)

	// leaderboard
	v1.Get("/leaderboard", apiConfig.HandlerLeaderboard)

	// contests layer
	v1.Post("/contests/start/{user_id}", apiConfig.HandlerStartContest)
	v1.Get("/contests/active/{user_id}", apiConfig.HandlerGetActiveContest)
	v1.Get("/contests/history/{user_id}", apiConfig.HandlerGetUserContests)
	v1.Get("/contests/history/{user_id}/{contest_id}", apiConfig.HandlerGetUserContestDetail)
	v1.Get("/contests/{contest_id}", apiConfig.HandlerGetContest)
	v1.Post("/contests/{contest_id}/start-problem/{problem_id}", apiConfig.HandlerStartProblem)
	v1.Post("/contests/{contest_id}/submit", apiConfig.HandlerSubmit)
	v1.Post("/contests/{contest_id}/submit-all", apiConfig.HandlerSubmitAll)
	v1.Post("/contests/{contest_id}/skip/{problem_id}", apiConfig.HandlerSkipProblem)
	v1.Post("/contests/{contest_id}/end", apiConfig.HandlerEndContest)
	v1.Post("/contests/{contest_id}/abandon", apiConfig.HandlerAbandonContest)

	return v1
}
