// Package api provides the HTTP surface over the daily report and the
// CRM stores.
package api

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"roteiro/internal/crm"
	"roteiro/internal/insight"
	"roteiro/internal/report"
)

// Server bundles the collaborators the handlers need.
type Server struct {
	visits    crm.VisitStore
	tasks     crm.TaskStore
	calendar  crm.CalendarStore
	insights  crm.InsightStore
	prospects crm.ProspectStore
	agg       *report.Aggregator
	generator *insight.Generator // nil when no LLM is configured
	logger    *zap.Logger
}

// NewServer creates a Server. generator may be nil; the insight
// endpoint then responds 503.
func NewServer(
	visits crm.VisitStore,
	tasks crm.TaskStore,
	calendar crm.CalendarStore,
	insights crm.InsightStore,
	prospects crm.ProspectStore,
	agg *report.Aggregator,
	generator *insight.Generator,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		visits:    visits,
		tasks:     tasks,
		calendar:  calendar,
		insights:  insights,
		prospects: prospects,
		agg:       agg,
		generator: generator,
		logger:    logger,
	}
}

// Router creates and configures the HTTP router with all API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(s.logging)
	r.Use(s.recovery)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.health).Methods("GET")

	api.HandleFunc("/report", s.getReport).Methods("GET")
	api.HandleFunc("/report/buckets", s.getReportBuckets).Methods("GET")

	api.HandleFunc("/route", s.getRoute).Methods("GET")
	api.HandleFunc("/route", s.putRoute).Methods("PUT")

	api.HandleFunc("/visits", s.createVisit).Methods("POST")
	api.HandleFunc("/visits", s.listVisits).Methods("GET")
	api.HandleFunc("/visits/{id}/status", s.updateVisitStatus).Methods("PATCH")

	api.HandleFunc("/tasks", s.createTask).Methods("POST")
	api.HandleFunc("/tasks", s.listTasks).Methods("GET")
	api.HandleFunc("/tasks/{id}/status", s.updateTaskStatus).Methods("PATCH")

	api.HandleFunc("/agenda", s.createEntry).Methods("POST")
	api.HandleFunc("/agenda", s.listEntries).Methods("GET")

	api.HandleFunc("/prospects", s.createProspect).Methods("POST")
	api.HandleFunc("/prospects/{id}/insight", s.generateInsight).Methods("POST")

	return r
}
