package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// responder writes JSON bodies and maps errors to status codes.
type responder struct {
	logger *zap.Logger
}

// jsonResponse writes a JSON response
func (rs responder) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (rs responder) errorResponse(w http.ResponseWriter, status int, message string) {
	rs.jsonResponse(w, status, map[string]string{"error": message})
}

// failure reports err with the status from HTTPStatus. Internal errors are
// logged and hidden behind a generic message.
func (rs responder) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		rs.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		rs.errorResponse(w, status, "internal server error")
		return
	}
	rs.errorResponse(w, status, err.Error())
}
