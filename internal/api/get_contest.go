package api

import (
	"net/http"
)

func (a *Api) HandlerGetContest(w http.ResponseWriter, r *http.Request) {
	contestID, err := urlParamInt32(r, "contest_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := a.ContestServiceConfig.GetContest(r.Context(), contestID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, detail)
}

func (a *Api) HandlerGetActiveContest(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "user_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := a.ContestServiceConfig.GetActiveContest(r.Context(), userID)
	if err != nil {
		handlerError(err, w)
		return
	}
	if detail == nil {
		respondWithError(w, http.StatusNotFound, "no active contest")
		return
	}

	marshalAndRespond(w, http.StatusOK, detail)
}

func (a *Api) HandlerGetUserContests(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "user_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := queryInt32(r, "limit", 20)
	offset := queryInt32(r, "offset", 0)

	contests, err := a.ContestServiceConfig.GetUserContests(r.Context(), userID, limit, offset)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, contests)
}

func (a *Api) HandlerGetUserContestDetail(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "user_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	contestID, err := urlParamInt32(r, "contest_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := a.ContestServiceConfig.GetUserContestDetail(r.Context(), userID, contestID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, detail)
}
