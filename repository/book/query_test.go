package bookrepo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/StressDemon/book-manager/model"
)

func TestBuildFilterWhere_NoFilters(t *testing.T) {
	where, args := buildFilterWhere(model.BookFilter{})
	require.Empty(t, where)
	require.Empty(t, args)
}

func TestBuildFilterWhere_SingleFilters(t *testing.T) {
	where, args := buildFilterWhere(model.BookFilter{Genre: "Fantasy"})
	require.Contains(t, where, "book_genres")
	require.Contains(t, where, "lower(g.name) = lower($1)")
	require.Equal(t, []any{"Fantasy"}, args)

	where, args = buildFilterWhere(model.BookFilter{Author: "J. K. Rowling"})
	require.Contains(t, where, "book_authors")
	require.Contains(t, where, "lower(a.name) = lower($1)")
	require.Equal(t, []any{"J. K. Rowling"}, args)

	where, args = buildFilterWhere(model.BookFilter{Title: "Harry"})
	require.Contains(t, where, "b.title ILIKE '%' || $1 || '%'")
	require.Equal(t, []any{"Harry"}, args)
}

func TestBuildFilterWhere_CombinedWithAND(t *testing.T) {
	where, args := buildFilterWhere(model.BookFilter{
		Genre:  "Fantasy",
		Author: "J. K. Rowling",
		Title:  "Harry",
	})
	require.Equal(t, []any{"Fantasy", "J. K. Rowling", "Harry"}, args)

	// placeholders follow argument order
	require.Contains(t, where, "lower(g.name) = lower($1)")
	require.Contains(t, where, "lower(a.name) = lower($2)")
	require.Contains(t, where, "b.title ILIKE '%' || $3 || '%'")

	require.True(t, strings.HasPrefix(where, "WHERE "))
	require.Equal(t, 2, strings.Count(where, "EXISTS"))
}
