package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
)

type createVisitRequest struct {
	ProspectID string `json:"prospect_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Notes      string `json:"notes"`
}

type idResponse struct {
	ID string `json:"id"`
}

func (s *Server) createVisit(w http.ResponseWriter, r *http.Request) {
	rep := repID(r)
	if rep == "" {
		s.writeDomainError(w, crm.ErrNotAuthenticated)
		return
	}

	var req createVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := crm.NewVisit(rep, req.ProspectID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	v.Notes = req.Notes

	if err := s.visits.CreateVisit(r.Context(), v); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.agg.Invalidate(rep, v.Date)
	writeJSON(w, http.StatusCreated, idResponse{ID: v.ID})
}

func (s *Server) listVisits(w http.ResponseWriter, r *http.Request) {
	rep := repID(r)
	if rep == "" {
		s.writeDomainError(w, crm.ErrNotAuthenticated)
		return
	}

	date, err := queryDate(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	visits, err := s.visits.ListVisits(r.Context(), rep, date)
	if err != nil {
		s.writeDomainError(w, &crm.StoreError{Source: "visits", Err: err})
		return
	}

	resp := make([]visitResponse, len(visits))
	for i, v := range visits {
		resp[i] = toVisitResponse(v)
	}
	writeJSON(w, http.StatusOK, resp)
}

// visitResponse represents a visit in API responses.
type visitResponse struct {
	ID            string            `json:"id"`
	Prospect      *prospectResponse `json:"prospect,omitempty"`
	Date          string            `json:"date"`
	StartTime     string            `json:"start_time,omitempty"`
	EndTime       string            `json:"end_time,omitempty"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	DistanceKM    *float64          `json:"distance_km,omitempty"`
	TravelMinutes *int              `json:"travel_minutes,omitempty"`
	RouteRank     *int              `json:"route_rank,omitempty"`
}

func toVisitResponse(v *crm.Visit) visitResponse {
	resp := visitResponse{
		ID:            v.ID,
		Date:          dateutil.DayKey(v.Date),
		StartTime:     v.StartTime,
		EndTime:       v.EndTime,
		Status:        string(v.Status),
		Notes:         v.Notes,
		DistanceKM:    v.DistanceKM,
		TravelMinutes: v.TravelMinutes,
		RouteRank:     v.RouteRank,
	}
	if v.Prospect != nil {
		resp.Prospect = toProspectResponse(v.Prospect)
	}
	return resp
}

type statusRequest struct {
	Status string `json:"status"`
	Date   string `json:"date"`
}

func (s *Server) updateVisitStatus(w http.ResponseWriter, r *http.Request) {
	rep := repID(r)
	if rep == "" {
		s.writeDomainError(w, crm.ErrNotAuthenticated)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.visits.UpdateVisitStatus(r.Context(), id, crm.VisitStatus(req.Status)); err != nil {
		s.writeDomainError(w, err)
		return
	}

	if date, err := dateutil.ParseDate(req.Date); err == nil {
		s.agg.Invalidate(rep, date)
	}
	w.WriteHeader(http.StatusNoContent)
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Priority    string `json:"priority"`
	Type        string `json:"type"`
	ClientName  string `json:"client_name"`
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	rep := repID(r)
	if rep == "" {
		s.writeDomainError(w, crm.ErrNotAuthenticated)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := crm.NewTask(rep, req.Title, req.Date, req.Time, req.Priority)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	t.Description = req.Description
	t.Type = req.Type
	t.ClientName = req.ClientName

	if err := s.tasks.CreateTask(r.Context(), t); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.agg.Invalidate(rep, t.DueDate)
	writeJSON(w, http.StatusCreated, idResponse{ID: t.ID})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	rep := repID(r)
	if rep == "" {
		s.writeDomainError(w, crm.ErrNotAuthenticated)
		return
	}

	date, err := queryDate(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	tasks, err := s.tasks.ListTasks(r.Context(), rep, date, nil)
	if err != nil {
		s.writeDomainError(w, &crm.StoreError{Source: "tasks", Err: err})
		return
	}

	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = taskResponse{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Date:        dateutil.DayKey(t.DueDate),
			Time:        t.Time,
			Priority:    string(t.Priority),
			Type:        t.Type,
			Status:      string(t.Status),
			ClientName:  t.ClientName,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// taskResponse represents a task in API responses.
type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Priority    string `json:"priority"`
	Type        string `json:"type,omitempty"`
	Status      string `json:"status"`
	ClientName  string `json:"client_name,omitempty"`
}

func (s *Server) updateTaskStatus(w http.ResponseWriter, r *http.Request) {
	rep := repID(r)
	if rep == "" {
		s.writeDomainError(w, crm.ErrNotAuthenticated)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.tasks.UpdateTaskStatus(r.Context(), id, crm.TaskStatus(req.Status)); err != nil {
		s.writeDomainError(w, err)
		return
	}

	if date, err := dateutil.ParseDate(req.Date); err == nil {
		s.agg.Invalidate(rep, date)
	}
	w.WriteHeader(http.StatusNoContent)
}

type createEntryRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Type  string `json:"type"`
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	rep := repID(r)
	if rep == "" {
		s.writeDomainError(w, crm.ErrNotAuthenticated)
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := crm.NewCalendarEntry(rep, req.Title, req.Date, req.Time, req.Type)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if err := s.calendar.CreateEntry(r.Context(), e); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.agg.Invalidate(rep, e.Date)
	writeJSON(w, http.StatusCreated, idResponse{ID: e.ID})
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	rep := repID(r)
	if rep == "" {
		s.writeDomainError(w, crm.ErrNotAuthenticated)
		return
	}

	date, err := queryDate(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	entries, err := s.calendar.ListEntries(r.Context(), rep, date)
	if err != nil {
		s.writeDomainError(w, &crm.StoreError{Source: "calendar", Err: err})
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			ID:    e.ID,
			Title: e.Title,
			Date:  dateutil.DayKey(e.Date),
			Time:  e.Time,
			Type:  e.Type,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// entryResponse represents a calendar entry in API responses.
type entryResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time,omitempty"`
	Type  string `json:"type,omitempty"`
}

type createProspectRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Segment string `json:"segment"`
	City    string `json:"city"`
}

func (s *Server) createProspect(w http.ResponseWriter, r *http.Request) {
	var req createProspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := &crm.Prospect{
		Name:    req.Name,
		Address: req.Address,
		Segment: req.Segment,
		City:    req.City,
	}
	if err := s.prospects.CreateProspect(r.Context(), p); err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: p.ID})
}

func (s *Server) generateInsight(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusServiceUnavailable, "insight generation is not configured")
		return
	}

	id := mux.Vars(r)["id"]
	p, err := s.prospects.GetProspect(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	in, err := s.generator.Generate(r.Context(), p)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if err := s.insights.UpsertInsight(r.Context(), in); err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, insightResponse{
		Summary:             in.Summary,
		RecommendedProducts: in.RecommendedProducts,
		ApproachTips:        in.ApproachTips,
	})
}
