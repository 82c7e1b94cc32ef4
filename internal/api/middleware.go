package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
)

// repHeader carries the authenticated rep identity. The upstream proxy
// is expected to have verified it.
const repHeader = "X-Rep-ID"

func repID(r *http.Request) string {
	return r.Header.Get(repHeader)
}

// logging logs every request with method, path, status and duration.
func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// recovery converts panics into 500 responses.
func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain errors onto HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var storeErr *crm.StoreError
	switch {
	case errors.Is(err, crm.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &storeErr):
		s.logger.Error("store failure", zap.String("source", storeErr.Source), zap.Error(storeErr.Err))
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, crm.ErrVisitNotFound),
		errors.Is(err, crm.ErrTaskNotFound),
		errors.Is(err, crm.ErrProspectNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, crm.ErrInvalidStatus),
		errors.Is(err, crm.ErrInvalidPriority),
		errors.Is(err, crm.ErrEmptyName),
		errors.Is(err, crm.ErrEmptyProspect),
		errors.Is(err, crm.ErrEmptyOwner),
		errors.Is(err, crm.ErrEndBeforeStart),
		errors.Is(err, dateutil.ErrInvalidDateFormat),
		errors.Is(err, dateutil.ErrInvalidTimeFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("handler failure", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// queryDate parses the optional ?date= query parameter, defaulting to
// today.
func queryDate(r *http.Request) (dateVal time.Time, err error) {
	return dateutil.ParseDate(r.URL.Query().Get("date"))
}
