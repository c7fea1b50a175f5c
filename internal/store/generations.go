package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// Generation is one recorded transformation run: the variable map a
// survey produced, kept for audit and regeneration.
type Generation struct {
	ID         string `json:"id"`
	SurveyID   string `json:"survey_id"`
	TemplateID string `json:"template_id,omitempty"`
	Variables  string `json:"variables"` // JSON object
	CreatedAt  string `json:"created_at"`
}

// RecordGeneration stores the variable map produced for a survey. The
// survey must already be saved (foreign key). Returns the generation id;
// when id is empty a fresh one is assigned.
func (s *Store) RecordGeneration(ctx context.Context, id, surveyID, templateID string, vars *ir.VarMap) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	payload, err := json.Marshal(vars)
	if err != nil {
		return "", fmt.Errorf("record generation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO generations (id, survey_id, template_id, variables)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, surveyID, templateID, string(payload))
	if err != nil {
		return "", fmt.Errorf("record generation: %w", err)
	}
	return id, nil
}

// ListGenerations returns every generation recorded for a survey, newest
// first.
func (s *Store) ListGenerations(ctx context.Context, surveyID string) ([]Generation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, survey_id, template_id, variables, created_at
		FROM generations
		WHERE survey_id = ?
		ORDER BY created_at DESC, id
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.ID, &g.SurveyID, &g.TemplateID, &g.Variables, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("list generations: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	return out, nil
}
