// Package handlers exposes the stores over JSON HTTP endpoints.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/recipe-api/internal/auth"
	"github.com/diewo77/recipe-api/internal/httpx"
	"github.com/diewo77/recipe-api/internal/repository"
	"github.com/diewo77/recipe-api/internal/serializers"
	"go.uber.org/zap"
)

// writeError maps store errors to status codes. Unknown errors are logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, verr.Fields)
	case errors.Is(err, repository.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, httpx.CodeNotFound, nil)
	case errors.Is(err, repository.ErrInvalidCredentials):
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidCredentials, nil)
	default:
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFromContext(r.Context())),
			zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternal, nil)
	}
}

// decode reads the JSON body into dst and writes a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		if v, ok := serializers.DecodeViolations(err); ok {
			httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
			return false
		}
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeInvalidJSON, nil)
		return false
	}
	return true
}

// pathID parses the {id} wildcard. Anything but a positive integer is a 404.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusNotFound, httpx.CodeNotFound, nil)
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the authenticated user id. Routes using it sit behind auth.RequireAuth.
func currentUser(r *http.Request) uint {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

// isPartial reports whether the request is a PATCH.
func isPartial(r *http.Request) bool {
	return r.Method == http.MethodPatch
}
