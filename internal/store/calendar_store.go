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

// CreateEntry adds a new calendar entry. A fresh id is assigned if the
// entry has none.
func (s *SQLite) CreateEntry(ctx context.Context, e *crm.CalendarEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := `
		INSERT INTO calendar_entries (id, owner_id, entry_date, entry_time, title, entry_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.OwnerID,
		dateutil.DayKey(e.Date),
		nullString(e.Time),
		e.Title,
		e.Type,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting calendar entry: %w", err)
	}

	return nil
}

// ListEntries returns the owner's entries on exactly the given date,
// ordered by time.
func (s *SQLite) ListEntries(ctx context.Context, ownerID string, date time.Time) ([]*crm.CalendarEntry, error) {
	query := `
		SELECT id, owner_id, entry_date, entry_time, title, entry_type, created_at
		FROM calendar_entries
		WHERE owner_id = ? AND entry_date = ?
		ORDER BY entry_time IS NULL, entry_time, created_at
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, dateutil.DayKey(date))
	if err != nil {
		return nil, fmt.Errorf("querying calendar entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*crm.CalendarEntry
	for rows.Next() {
		var (
			e         crm.CalendarEntry
			entryDate string
			entryTime sql.NullString
			entryType sql.NullString
			createdAt string
		)
		err := rows.Scan(&e.ID, &e.OwnerID, &entryDate, &entryTime, &e.Title, &entryType, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scanning calendar entry: %w", err)
		}

		e.Date, err = parseDate(entryDate)
		if err != nil {
			return nil, fmt.Errorf("parsing entry date: %w", err)
		}
		e.CreatedAt, err = parseTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}

		e.Time = entryTime.String
		e.Type = entryType.String

		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
