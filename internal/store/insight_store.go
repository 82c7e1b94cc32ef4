package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"roteiro/internal/crm"
)

// UpsertInsight stores or replaces the insight for a prospect.
func (s *SQLite) UpsertInsight(ctx context.Context, in *crm.Insight) error {
	products, err := json.Marshal(in.RecommendedProducts)
	if err != nil {
		return fmt.Errorf("encoding products: %w", err)
	}
	tips, err := json.Marshal(in.ApproachTips)
	if err != nil {
		return fmt.Errorf("encoding tips: %w", err)
	}

	query := `
		INSERT INTO insights (prospect_id, summary, recommended_products, approach_tips, generated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(prospect_id) DO UPDATE SET
			summary = excluded.summary,
			recommended_products = excluded.recommended_products,
			approach_tips = excluded.approach_tips,
			generated_at = excluded.generated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		in.ProspectID,
		in.Summary,
		string(products),
		string(tips),
		in.GeneratedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting insight: %w", err)
	}

	return nil
}

// ListInsights returns the stored insights for the given prospect ids in
// one batch.
func (s *SQLite) ListInsights(ctx context.Context, prospectIDs []string) ([]*crm.Insight, error) {
	if len(prospectIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT prospect_id, summary, recommended_products, approach_tips, generated_at
		FROM insights
		WHERE prospect_id IN (?` + strings.Repeat(", ?", len(prospectIDs)-1) + `)`

	args := make([]any, len(prospectIDs))
	for i, id := range prospectIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying insights: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var insights []*crm.Insight
	for rows.Next() {
		var (
			in          crm.Insight
			products    sql.NullString
			tips        sql.NullString
			generatedAt string
		)
		if err := rows.Scan(&in.ProspectID, &in.Summary, &products, &tips, &generatedAt); err != nil {
			return nil, fmt.Errorf("scanning insight: %w", err)
		}

		if products.Valid && products.String != "" {
			if err := json.Unmarshal([]byte(products.String), &in.RecommendedProducts); err != nil {
				return nil, fmt.Errorf("decoding products: %w", err)
			}
		}
		if tips.Valid && tips.String != "" {
			if err := json.Unmarshal([]byte(tips.String), &in.ApproachTips); err != nil {
				return nil, fmt.Errorf("decoding tips: %w", err)
			}
		}

		in.GeneratedAt, err = parseTimestamp(generatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing generated at: %w", err)
		}

		insights = append(insights, &in)
	}
	return insights, rows.Err()
}
