package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mastercp/arena/internal/service/contest_service"
)

func (a *Api) HandlerStartProblem(w http.ResponseWriter, r *http.Request) {
	contestID, err := urlParamInt32(r, "contest_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	problemID := chi.URLParam(r, "problem_id")

	problem, err := a.ContestServiceConfig.StartProblem(r.Context(), contestID, problemID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, problem)
}

func (a *Api) HandlerSubmit(w http.ResponseWriter, r *http.Request) {
	contestID, err := urlParamInt32(r, "contest_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var request contest_service.SubmitRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := a.ContestServiceConfig.Submit(r.Context(), contestID, request)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, result)
}

func (a *Api) HandlerSubmitAll(w http.ResponseWriter, r *http.Request) {
	contestID, err := urlParamInt32(r, "contest_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var request contest_service.SubmitAllRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	results, err := a.ContestServiceConfig.SubmitAll(r.Context(), contestID, request)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, results)
}

func (a *Api) HandlerSkipProblem(w http.ResponseWriter, r *http.Request) {
	contestID, err := urlParamInt32(r, "contest_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	problemID := chi.URLParam(r, "problem_id")

	result, err := a.ContestServiceConfig.Skip(r.Context(), contestID, problemID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, result)
}
