package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
)

// CreateVisit adds a new visit. A fresh id is assigned if the visit has
// none.
func (s *SQLite) CreateVisit(ctx context.Context, v *crm.Visit) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	query := `
		INSERT INTO visits (
			id, prospect_id, owner_id, visit_date, start_time, end_time,
			status, notes, distance_km, travel_minutes, route_rank, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		v.ID,
		v.ProspectID,
		v.OwnerID,
		dateutil.DayKey(v.Date),
		nullString(v.StartTime),
		nullString(v.EndTime),
		v.Status,
		v.Notes,
		v.DistanceKM,
		v.TravelMinutes,
		v.RouteRank,
		v.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting visit: %w", err)
	}

	return nil
}

const visitColumns = `
	v.id, v.prospect_id, v.owner_id, v.visit_date, v.start_time, v.end_time,
	v.status, v.notes, v.distance_km, v.travel_minutes, v.route_rank, v.created_at,
	p.name, p.address, p.segment, p.city
`

// GetVisit retrieves a visit by ID, with its prospect denormalized.
func (s *SQLite) GetVisit(ctx context.Context, id string) (*crm.Visit, error) {
	query := `
		SELECT ` + visitColumns + `
		FROM visits v
		JOIN prospects p ON p.id = v.prospect_id
		WHERE v.id = ?
	`

	v, err := scanVisit(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, crm.ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying visit: %w", err)
	}
	return v, nil
}

// ListVisits returns the owner's visits on exactly the given date, with
// prospects denormalized, ordered by start time.
func (s *SQLite) ListVisits(ctx context.Context, ownerID string, date time.Time) ([]*crm.Visit, error) {
	query := `
		SELECT ` + visitColumns + `
		FROM visits v
		JOIN prospects p ON p.id = v.prospect_id
		WHERE v.owner_id = ? AND v.visit_date = ?
		ORDER BY v.start_time IS NULL, v.start_time, v.created_at
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, dateutil.DayKey(date))
	if err != nil {
		return nil, fmt.Errorf("querying visits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var visits []*crm.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// UpdateVisitStatus transitions a visit to the given status.
func (s *SQLite) UpdateVisitStatus(ctx context.Context, id string, status crm.VisitStatus) error {
	if !status.Valid() {
		return crm.ErrInvalidStatus
	}

	result, err := s.db.ExecContext(ctx, `UPDATE visits SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating visit status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return crm.ErrVisitNotFound
	}
	return nil
}

// SaveRouteRanks persists explicit route positions for a set of visits
// in one transaction.
func (s *SQLite) SaveRouteRanks(ctx context.Context, ranks map[string]int) error {
	if len(ranks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for id, rank := range ranks {
		result, err := tx.ExecContext(ctx, `UPDATE visits SET route_rank = ? WHERE id = ?`, rank, id)
		if err != nil {
			return fmt.Errorf("updating route rank: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return crm.ErrVisitNotFound
		}
	}

	return tx.Commit()
}

// scanner abstracts sql.Row and sql.Rows for scanVisit.
type scanner interface {
	Scan(dest ...any) error
}

func scanVisit(row scanner) (*crm.Visit, error) {
	var (
		v             crm.Visit
		p             crm.Prospect
		visitDate     string
		startTime     sql.NullString
		endTime       sql.NullString
		notes         sql.NullString
		distanceKM    sql.NullFloat64
		travelMinutes sql.NullInt64
		routeRank     sql.NullInt64
		createdAt     string
		address       sql.NullString
		segment       sql.NullString
		city          sql.NullString
	)

	err := row.Scan(
		&v.ID, &v.ProspectID, &v.OwnerID, &visitDate, &startTime, &endTime,
		&v.Status, &notes, &distanceKM, &travelMinutes, &routeRank, &createdAt,
		&p.Name, &address, &segment, &city,
	)
	if err != nil {
		return nil, err
	}

	v.Date, err = parseDate(visitDate)
	if err != nil {
		return nil, fmt.Errorf("parsing visit date: %w", err)
	}
	v.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	v.StartTime = startTime.String
	v.EndTime = endTime.String
	v.Notes = notes.String

	if distanceKM.Valid {
		v.DistanceKM = &distanceKM.Float64
	}
	if travelMinutes.Valid {
		m := int(travelMinutes.Int64)
		v.TravelMinutes = &m
	}
	if routeRank.Valid {
		r := int(routeRank.Int64)
		v.RouteRank = &r
	}

	p.ID = v.ProspectID
	p.Address = address.String
	p.Segment = segment.String
	p.City = city.String
	v.Prospect = &p

	return &v, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
