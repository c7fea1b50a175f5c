package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// SaveTemplate stores or replaces a template configuration. The name and
// active flag are denormalized into columns for listing; everything else
// lives in the JSON payload.
func (s *Store) SaveTemplate(ctx context.Context, tpl ir.Template) error {
	if tpl.ID == "" {
		return fmt.Errorf("save template: id is required")
	}
	payload, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("save template %s: %w", tpl.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO templates (id, name, is_active, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name      = excluded.name,
			is_active = excluded.is_active,
			payload   = excluded.payload
	`, tpl.ID, tpl.Name, boolInt(tpl.IsActive), string(payload))
	if err != nil {
		return fmt.Errorf("save template %s: %w", tpl.ID, err)
	}
	return nil
}

// GetTemplate loads one template configuration. Returns sql.ErrNoRows
// when the id is unknown.
func (s *Store) GetTemplate(ctx context.Context, id string) (*ir.Template, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM templates WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("get template %s: %w", id, err)
	}

	var tpl ir.Template
	if err := json.Unmarshal([]byte(payload), &tpl); err != nil {
		return nil, fmt.Errorf("get template %s: decode payload: %w", id, err)
	}
	return &tpl, nil
}

// ListTemplates returns stored templates ordered by name. With activeOnly
// set, inactive templates are filtered out.
func (s *Store) ListTemplates(ctx context.Context, activeOnly bool) ([]ir.Template, error) {
	query := `SELECT payload FROM templates ORDER BY name, id`
	if activeOnly {
		query = `SELECT payload FROM templates WHERE is_active = 1 ORDER BY name, id`
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []ir.Template
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("list templates: %w", err)
		}
		var tpl ir.Template
		if err := json.Unmarshal([]byte(payload), &tpl); err != nil {
			return nil, fmt.Errorf("list templates: decode payload: %w", err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
