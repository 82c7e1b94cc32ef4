package api

import (
	"encoding/json"
	"net/http"

	"roteiro/internal/crm"
	"roteiro/internal/route"
)

// stopResponse represents one visit on the ordered route.
type stopResponse struct {
	Position      int               `json:"position"`
	VisitID       string            `json:"visit_id"`
	Prospect      *prospectResponse `json:"prospect,omitempty"`
	StartTime     string            `json:"start_time,omitempty"`
	EndTime       string            `json:"end_time,omitempty"`
	Status        string            `json:"status"`
	DistanceKM    *float64          `json:"distance_km,omitempty"`
	TravelMinutes *int              `json:"travel_minutes,omitempty"`
	RouteRank     *int              `json:"route_rank,omitempty"`
}

type routeResponse struct {
	Stops         []stopResponse `json:"stops"`
	DistanceKM    float64        `json:"distance_km"`
	TravelMinutes int            `json:"travel_minutes"`
}

func (s *Server) getRoute(w http.ResponseWriter, r *http.Request) {
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

	stops := route.Order(visits)
	totals := route.Sum(visits)

	resp := routeResponse{
		Stops:         make([]stopResponse, len(stops)),
		DistanceKM:    totals.DistanceKM,
		TravelMinutes: totals.TravelMinutes,
	}
	for i, stop := range stops {
		v := stop.Visit
		resp.Stops[i] = stopResponse{
			Position:      stop.Position,
			VisitID:       v.ID,
			StartTime:     v.StartTime,
			EndTime:       v.EndTime,
			Status:        string(v.Status),
			DistanceKM:    v.DistanceKM,
			TravelMinutes: v.TravelMinutes,
			RouteRank:     v.RouteRank,
		}
		if v.Prospect != nil {
			resp.Stops[i].Prospect = toProspectResponse(v.Prospect)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type putRouteRequest struct {
	Ranks map[string]int `json:"ranks"` // visit id -> position
}

func (s *Server) putRoute(w http.ResponseWriter, r *http.Request) {
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

	var req putRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Ranks) == 0 {
		writeError(w, http.StatusBadRequest, "ranks cannot be empty")
		return
	}

	if err := s.visits.SaveRouteRanks(r.Context(), req.Ranks); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.agg.Invalidate(rep, date)
	w.WriteHeader(http.StatusNoContent)
}
