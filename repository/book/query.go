package bookrepo

import (
	"fmt"
	"strings"

	"github.com/StressDemon/book-manager/model"
)

// buildFilterWhere turns the optional listing criteria into a WHERE clause.
// Criteria combine with AND; an unset criterion adds no condition. Genre and
// author match the associated name case-insensitively and exactly, title is a
// case-insensitive substring. Matching runs against the join tables with
// EXISTS so multi-valued associations never duplicate result rows.
// Placeholders start at $1.
func buildFilterWhere(f model.BookFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Genre != "" {
		args = append(args, f.Genre)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM book_genres bg JOIN genres g ON g.id = bg.genre_id WHERE bg.book_id = b.id AND lower(g.name) = lower($%d))",
			len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM book_authors ba JOIN authors a ON a.id = ba.author_id WHERE ba.book_id = b.id AND lower(a.name) = lower($%d))",
			len(args)))
	}
	if f.Title != "" {
		args = append(args, f.Title)
		conds = append(conds, fmt.Sprintf("b.title ILIKE '%%' || $%d || '%%'", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
