package lifecycle

import (
	"context"
	"fmt"
)

// UpsertCategory inserts a tool category unless one with the same name
// already exists for the stage, then returns the category id and whether a
// row was inserted. Descriptions of existing categories are left untouched so
// re-imports stay idempotent.
func (s *Store) UpsertCategory(ctx context.Context, stageID int64, name, description string) (int64, bool, error) {
	ctx = ensureContext(ctx)

	res, err := s.execWithRetry(ctx,
		`INSERT INTO tool_categories (stage_id, name, description) VALUES (?, ?, ?)
         ON CONFLICT (stage_id, name) DO NOTHING`,
		stageID, name, description)
	if err != nil {
		return 0, false, fmt.Errorf("insert category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("rows affected: %w", err)
	}

	var id int64
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM tool_categories WHERE stage_id = ? AND name = ?`, stageID, name)
	if err := row.Scan(&id); err != nil {
		return 0, false, fmt.Errorf("resolve category id: %w", err)
	}

	return id, affected > 0, nil
}

// UpsertTool inserts a tool unless the category already holds one with the
// same name. It reports whether a row was inserted.
func (s *Store) UpsertTool(ctx context.Context, categoryID int64, name, description string) (bool, error) {
	ctx = ensureContext(ctx)

	res, err := s.execWithRetry(ctx,
		`INSERT INTO tools (category_id, name, description) VALUES (?, ?, ?)
         ON CONFLICT (category_id, name) DO NOTHING`,
		categoryID, name, description)
	if err != nil {
		return false, fmt.Errorf("insert tool: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
