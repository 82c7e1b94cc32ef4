package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"roteiro/internal/crm"
)

// CreateProspect adds a new prospect. A fresh id is assigned if the
// prospect has none.
func (s *SQLite) CreateProspect(ctx context.Context, p *crm.Prospect) error {
	if p.Name == "" {
		return crm.ErrEmptyName
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `INSERT INTO prospects (id, name, address, segment, city) VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, p.ID, p.Name, p.Address, p.Segment, p.City)
	if err != nil {
		return fmt.Errorf("inserting prospect: %w", err)
	}

	return nil
}

// GetProspect retrieves a prospect by ID.
func (s *SQLite) GetProspect(ctx context.Context, id string) (*crm.Prospect, error) {
	query := `SELECT id, name, address, segment, city FROM prospects WHERE id = ?`

	var (
		p       crm.Prospect
		address sql.NullString
		segment sql.NullString
		city    sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &address, &segment, &city)
	if err == sql.ErrNoRows {
		return nil, crm.ErrProspectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying prospect: %w", err)
	}

	p.Address = address.String
	p.Segment = segment.String
	p.City = city.String
	return &p, nil
}

// ListOwners returns the distinct rep ids that own any visit or task.
func (s *SQLite) ListOwners(ctx context.Context) ([]string, error) {
	query := `
		SELECT owner_id FROM visits
		UNION
		SELECT owner_id FROM tasks
		UNION
		SELECT owner_id FROM calendar_entries
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying owners: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var owners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}
