package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ListStages returns every lifecycle stage ordered by its position in the
// lifecycle.
func (s *Store) ListStages(ctx context.Context) ([]Stage, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, order_index FROM stages ORDER BY order_index`)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var stages []Stage
	for rows.Next() {
		var st Stage
		if err := rows.Scan(&st.ID, &st.Name, &st.Description, &st.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stages: %w", err)
	}
	return stages, nil
}

// GetStage fetches a stage by identifier. It returns nil when the id is
// unknown.
func (s *Store) GetStage(ctx context.Context, id int64) (*Stage, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, order_index FROM stages WHERE id = ?`, id)
	var st Stage
	err := row.Scan(&st.ID, &st.Name, &st.Description, &st.OrderIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return &st, nil
}

// FindStageByName fetches a stage by exact name. It returns nil when no such
// stage exists.
func (s *Store) FindStageByName(ctx context.Context, name string) (*Stage, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, order_index FROM stages WHERE name = ?`, name)
	var st Stage
	err := row.Scan(&st.ID, &st.Name, &st.Description, &st.OrderIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find stage by name: %w", err)
	}
	return &st, nil
}

// ListConnections returns every stage-to-stage connection.
func (s *Store) ListConnections(ctx context.Context) ([]Connection, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, from_stage_id, to_stage_id, connection_type FROM connections`)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	var conns []Connection
	for rows.Next() {
		var c Connection
		if err := rows.Scan(&c.ID, &c.FromStageID, &c.ToStageID, &c.Type); err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate connections: %w", err)
	}
	return conns, nil
}

// ListCategories returns tool categories. A stageID of 0 returns every
// category ordered by owning stage then name; otherwise only the given
// stage's categories, ordered by name. Unknown stage ids yield an empty
// result.
func (s *Store) ListCategories(ctx context.Context, stageID int64) ([]ToolCategory, error) {
	ctx = ensureContext(ctx)

	query := `SELECT id, stage_id, name, description FROM tool_categories ORDER BY stage_id, name`
	args := []any{}
	if stageID != 0 {
		query = `SELECT id, stage_id, name, description FROM tool_categories WHERE stage_id = ? ORDER BY name`
		args = append(args, stageID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []ToolCategory
	for rows.Next() {
		var c ToolCategory
		if err := rows.Scan(&c.ID, &c.StageID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// GetCategory fetches a category by identifier. It returns nil when the id is
// unknown.
func (s *Store) GetCategory(ctx context.Context, id int64) (*ToolCategory, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, stage_id, name, description FROM tool_categories WHERE id = ?`, id)
	var c ToolCategory
	err := row.Scan(&c.ID, &c.StageID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListTools returns tools. A categoryID of 0 returns every tool ordered by
// owning category then name; otherwise only the given category's tools,
// ordered by name. Unknown category ids yield an empty result.
func (s *Store) ListTools(ctx context.Context, categoryID int64) ([]Tool, error) {
	ctx = ensureContext(ctx)

	query := `SELECT id, category_id, name, description FROM tools ORDER BY category_id, name`
	args := []any{}
	if categoryID != 0 {
		query = `SELECT id, category_id, name, description FROM tools WHERE category_id = ? ORDER BY name`
		args = append(args, categoryID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	var tools []Tool
	for rows.Next() {
		var t Tool
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		tools = append(tools, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tools: %w", err)
	}
	return tools, nil
}

// CountsByTable reports row totals for every taxonomy table.
func (s *Store) CountsByTable(ctx context.Context) (Counts, error) {
	ctx = ensureContext(ctx)
	var counts Counts
	for _, probe := range []struct {
		table string
		dst   *int64
	}{
		{"stages", &counts.Stages},
		{"connections", &counts.Connections},
		{"tool_categories", &counts.Categories},
		{"tools", &counts.Tools},
	} {
		row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM `+probe.table)
		if err := row.Scan(probe.dst); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", probe.table, err)
		}
	}
	return counts, nil
}
