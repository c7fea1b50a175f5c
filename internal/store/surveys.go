package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// SurveyRecord is a stored survey's metadata row.
type SurveyRecord struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SaveSurvey stores or replaces a survey's answer set. Saving an existing
// id overwrites the responses and bumps updated_at.
func (s *Store) SaveSurvey(ctx context.Context, id string, responses []ir.SurveyResponse) error {
	payload, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("save survey %s: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO surveys (id, responses)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET
			responses  = excluded.responses,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, id, string(payload))
	if err != nil {
		return fmt.Errorf("save survey %s: %w", id, err)
	}
	return nil
}

// GetSurvey loads a survey's answer set. Returns sql.ErrNoRows when the
// id is unknown.
func (s *Store) GetSurvey(ctx context.Context, id string) ([]ir.SurveyResponse, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT responses FROM surveys WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("get survey %s: %w", id, err)
	}

	var responses []ir.SurveyResponse
	if err := json.Unmarshal([]byte(payload), &responses); err != nil {
		return nil, fmt.Errorf("get survey %s: decode responses: %w", id, err)
	}
	return responses, nil
}

// ListSurveys returns metadata for every stored survey, newest first.
func (s *Store) ListSurveys(ctx context.Context) ([]SurveyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, updated_at
		FROM surveys
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()

	var records []SurveyRecord
	for rows.Next() {
		var r SurveyRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list surveys: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	return records, nil
}

// IsNotFound reports whether an error means the requested row does not
// exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
