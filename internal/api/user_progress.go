package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *Api) HandlerGetTopicRatings(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ratings, err := a.UserServiceConfig.GetTopicRatings(r.Context(), userID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, ratings)
}

func (a *Api) HandlerGetWeakTopics(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	activeOnly := r.URL.Query().Get("active_only") == "true"

	weakTopics, err := a.UserServiceConfig.GetWeakTopics(r.Context(), userID, activeOnly)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, weakTopics)
}

func (a *Api) HandlerWeakTopicPractice(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	topic := chi.URLParam(r, "topic")
	limit := queryInt32(r, "limit", 10)

	problems, err := a.UserServiceConfig.PracticeProblems(r.Context(), userID, topic, int(limit))
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, problems)
}

func (a *Api) HandlerGetUserStatistics(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := a.UserServiceConfig.GetStatistics(r.Context(), userID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, stats)
}

func (a *Api) HandlerLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := queryInt32(r, "limit", 10)

	entries, err := a.LeaderboardServiceConfig.Top(r.Context(), limit)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, entries)
}
