package api

import (
	"net/http"
)

func (a *Api) HandlerEndContest(w http.ResponseWriter, r *http.Request) {
	contestID, err := urlParamInt32(r, "contest_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.ContestServiceConfig.End(r.Context(), contestID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, result)
}

func (a *Api) HandlerAbandonContest(w http.ResponseWriter, r *http.Request) {
	contestID, err := urlParamInt32(r, "contest_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	contest, err := a.ContestServiceConfig.Abandon(r.Context(), contestID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, contest)
}
