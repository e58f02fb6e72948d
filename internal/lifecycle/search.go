package lifecycle

import (
	"context"
	"fmt"
	"strings"
)

// SearchTools performs a case-insensitive substring match on tool name or
// description, joined with the owning category and stage. A blank query
// returns an empty result without touching the database; results are ordered
// by stage position, then category name, then tool name.
func (s *Store) SearchTools(ctx context.Context, query string) ([]SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}

	ctx = ensureContext(ctx)
	pattern := "%" + escapeLike(trimmed) + "%"

	rows, err := s.db.QueryContext(ctx, `
        SELECT t.id, t.category_id, t.name, t.description,
               c.name AS category_name,
               s.id AS stage_id, s.name AS stage_name, s.order_index
        FROM tools t
        JOIN tool_categories c ON t.category_id = c.id
        JOIN stages s ON c.stage_id = s.id
        WHERE t.name LIKE ? ESCAPE '\' OR t.description LIKE ? ESCAPE '\'
        ORDER BY s.order_index, c.name, t.name`,
		pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search tools: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(
			&r.Tool.ID, &r.Tool.CategoryID, &r.Tool.Name, &r.Tool.Description,
			&r.CategoryName,
			&r.StageID, &r.StageName, &r.StageOrder,
		); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search results: %w", err)
	}
	return results, nil
}

// escapeLike neutralizes LIKE metacharacters so the user query matches as a
// literal substring.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
