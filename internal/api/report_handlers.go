package api

import (
	"net/http"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
	"roteiro/internal/report"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// eventResponse represents a timeline event in API responses.
type eventResponse struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	Title      string            `json:"title"`
	StartTime  string            `json:"start_time,omitempty"`
	EndTime    string            `json:"end_time,omitempty"`
	Date       string            `json:"date"`
	Status     string            `json:"status,omitempty"`
	Prospect   *prospectResponse `json:"prospect,omitempty"`
	TaskDetail *taskDetail       `json:"task_detail,omitempty"`
	Insight    *insightResponse  `json:"insight,omitempty"`
}

type prospectResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Segment string `json:"segment,omitempty"`
	City    string `json:"city,omitempty"`
}

type taskDetail struct {
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Type        string `json:"type,omitempty"`
	ClientName  string `json:"client_name,omitempty"`
}

type insightResponse struct {
	Summary             string   `json:"summary"`
	RecommendedProducts []string `json:"recommended_products,omitempty"`
	ApproachTips        []string `json:"approach_tips,omitempty"`
}

func toEventResponse(e report.Event) eventResponse {
	resp := eventResponse{
		ID:        e.ID,
		Kind:      string(e.Kind),
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Date:      dateutil.DayKey(e.Date),
		Status:    e.Status,
	}
	if e.Prospect != nil {
		resp.Prospect = toProspectResponse(e.Prospect)
	}
	if e.TaskDetail != nil {
		resp.TaskDetail = &taskDetail{
			Description: e.TaskDetail.Description,
			Priority:    string(e.TaskDetail.Priority),
			Type:        e.TaskDetail.Type,
			ClientName:  e.TaskDetail.ClientName,
		}
	}
	if e.Insight != nil {
		resp.Insight = &insightResponse{
			Summary:             e.Insight.Summary,
			RecommendedProducts: e.Insight.RecommendedProducts,
			ApproachTips:        e.Insight.ApproachTips,
		}
	}
	return resp
}

func toProspectResponse(p *crm.Prospect) *prospectResponse {
	return &prospectResponse{
		ID:      p.ID,
		Name:    p.Name,
		Address: p.Address,
		Segment: p.Segment,
		City:    p.City,
	}
}

func toEventResponses(events []report.Event) []eventResponse {
	out := make([]eventResponse, len(events))
	for i, e := range events {
		out[i] = toEventResponse(e)
	}
	return out
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	events, err := s.agg.DailyReport(r.Context(), repID(r), date)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponses(events))
}

type bucketsResponse struct {
	Morning     []eventResponse `json:"morning"`
	Afternoon   []eventResponse `json:"afternoon"`
	Evening     []eventResponse `json:"evening"`
	Unscheduled []eventResponse `json:"unscheduled"`
}

func (s *Server) getReportBuckets(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	events, err := s.agg.DailyReport(r.Context(), repID(r), date)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	b := report.Bucket(events)
	writeJSON(w, http.StatusOK, bucketsResponse{
		Morning:     toEventResponses(b.Morning),
		Afternoon:   toEventResponses(b.Afternoon),
		Evening:     toEventResponses(b.Evening),
		Unscheduled: toEventResponses(b.Unscheduled),
	})
}
