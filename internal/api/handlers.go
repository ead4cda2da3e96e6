package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mastercp/arena/internal/arena_errors"
	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func decodeJsonBody(body io.ReadCloser, v any) error {
	defer body.Close()
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondWithJson(w http.ResponseWriter, statusCode int, response []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(response); err != nil {
		log.Errorf("unable to write response, %v", err)
	}
}

// marshalAndRespond is the common success path. Marshal failures are
// reported as internal errors.
func marshalAndRespond(w http.ResponseWriter, statusCode int, payload any) {
	responseBytes, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("unable to marshal response, %v", err)
		respondWithError(w, http.StatusInternalServerError, arena_errors.ErrInternal.Error())
		return
	}
	respondWithJson(w, statusCode, responseBytes)
}

func respondWithError(w http.ResponseWriter, statusCode int, detail string) {
	responseBytes, err := json.Marshal(errorResponse{Detail: detail})
	if err != nil {
		log.Errorf("unable to marshal error response, %v", err)
		http.Error(w, detail, statusCode)
		return
	}
	respondWithJson(w, statusCode, responseBytes)
}

// handlerError maps domain errors onto http status codes.
func handlerError(err error, w http.ResponseWriter) {
	var statusCode int
	switch {
	case errors.Is(err, arena_errors.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, arena_errors.ErrConflict):
		statusCode = http.StatusConflict
	case errors.Is(err, arena_errors.ErrInvalidState),
		errors.Is(err, arena_errors.ErrInvalidInput),
		errors.Is(err, arena_errors.ErrInsufficientCatalog):
		statusCode = http.StatusBadRequest
	default:
		statusCode = http.StatusInternalServerError
	}
	respondWithError(w, statusCode, err.Error())
}

func urlParamInt32(r *http.Request, key string) (int32, error) {
	raw := chi.URLParam(r, key)
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return int32(value), nil
}

// queryInt32 reads an optional integer query parameter, falling back to
// def when absent or malformed.
func queryInt32(r *http.Request, key string, def int32) int32 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return def
	}
	return int32(value)
}
