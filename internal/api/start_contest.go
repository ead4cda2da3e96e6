package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mastercp/arena/internal/service/contest_service"
)

func (a *Api) HandlerStartContest(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "user_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// the body is optional, defaults apply when it is empty
	var request contest_service.StartContestRequest
	if err := decodeJsonBody(r.Body, &request); err != nil && err != io.EOF {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	detail, err := a.ContestServiceConfig.StartContest(r.Context(), userID, request)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusCreated, detail)
}
