package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mastercp/arena/internal/service/user_service"
)

func (a *Api) HandlerRegisterUser(w http.ResponseWriter, r *http.Request) {
	var request user_service.RegisterRequest

	if err := decodeJsonBody(r.Body, &request); err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := a.UserServiceConfig.Register(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusCreated, user)
}

func (a *Api) HandlerGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.UserServiceConfig.GetUser(r.Context(), userID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, user)
}

func (a *Api) HandlerGetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := a.UserServiceConfig.GetUserByUsername(r.Context(), username)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, user)
}

func (a *Api) HandlerListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt32(r, "limit", 50)
	offset := queryInt32(r, "skip", 0)

	users, err := a.UserServiceConfig.ListUsers(r.Context(), limit, offset)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, users)
}

func (a *Api) HandlerUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var request user_service.UpdateEmailRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := a.UserServiceConfig.UpdateEmail(r.Context(), userID, request)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, user)
}

func (a *Api) HandlerDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt32(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.UserServiceConfig.DeleteUser(r.Context(), userID); err != nil {
		handlerError(err, w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
