package bookrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/StressDemon/book-manager/model"
	"github.com/StressDemon/book-manager/util/database"
)

type Repo interface {
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Search(ctx context.Context, f model.BookFilter) ([]model.BookSummary, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts the book and its join rows in one transaction and
	// returns the new id.
	Create(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) (int64, error)

	// Update rewrites every book column from b. A nil authorIDs/genreIDs
	// keeps the existing associations; a non-nil slice replaces them.
	Update(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) error

	// Delete removes the book; join rows and reviews go with it via the
	// schema cascades. Reports whether a row existed.
	Delete(ctx context.Context, id int64) (bool, error)

	AuthorsByBook(ctx context.Context, bookID int64) ([]model.AuthorRef, error)
	GenresByBook(ctx context.Context, bookID int64) ([]model.Genre, error)
	ReviewsByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

// bookSelect aggregates the associated author and genre names per book so a
// listing is a single query, never a per-book fan-out.
const bookSelect = `
SELECT b.id, b.title, b.description, b.publication_date, b.price, b.isbn,
       b.language, b.page_count, b.publisher, b.format, b.rating_average,
       b.download_count, b.read_count, b.cover_image,
       COALESCE(array_remove(array_agg(DISTINCT a.name), NULL), '{}'::text[]) AS authors,
       COALESCE(array_remove(array_agg(DISTINCT g.name), NULL), '{}'::text[]) AS genres
FROM books b
LEFT JOIN book_authors ba ON ba.book_id = b.id
LEFT JOIN authors a ON a.id = ba.author_id
LEFT JOIN book_genres bg ON bg.book_id = b.id
LEFT JOIN genres g ON g.id = bg.genre_id
`

const bookGroup = ` GROUP BY b.id ORDER BY b.id`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	var pub time.Time
	err := row.Scan(
		&b.ID, &b.Title, &b.Description, &pub, &b.Price, &b.ISBN,
		&b.Language, &b.PageCount, &b.Publisher, &b.Format, &b.RatingAverage,
		&b.DownloadCount, &b.ReadCount, &b.CoverImage, &b.Authors, &b.Genres,
	)
	if err != nil {
		return nil, err
	}
	b.PublicationDate = model.NewDate(pub)
	return &b, nil
}

func (r *repo) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	where, args := buildFilterWhere(f)
	rows, err := r.db.Pool.Query(ctx, bookSelect+where+bookGroup, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repo) Search(ctx context.Context, f model.BookFilter) ([]model.BookSummary, error) {
	where, args := buildFilterWhere(f)
	q := `SELECT b.id, b.title, b.description, b.publication_date, b.price FROM books b ` +
		where + ` ORDER BY b.id`
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookSummary{}
	for rows.Next() {
		var s model.BookSummary
		var pub time.Time
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &pub, &s.Price); err != nil {
			return nil, err
		}
		s.PublicationDate = model.NewDate(pub)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	row := r.db.Pool.QueryRow(ctx, bookSelect+`WHERE b.id = $1`+bookGroup, id)
	b, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *repo) Create(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO books (title, description, publication_date, price, isbn,
		                   language, page_count, publisher, format,
		                   rating_average, download_count, read_count, cover_image)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id`,
		b.Title, b.Description, b.PublicationDate.Time, b.Price, b.ISBN,
		b.Language, b.PageCount, b.Publisher, b.Format,
		b.RatingAverage, b.DownloadCount, b.ReadCount, b.CoverImage,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := insertJoins(ctx, tx, id, authorIDs, genreIDs); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Update(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE books
		SET title = $2, description = $3, publication_date = $4, price = $5,
		    isbn = $6, language = $7, page_count = $8, publisher = $9,
		    format = $10, rating_average = $11, download_count = $12,
		    read_count = $13, cover_image = $14
		WHERE id = $1`,
		b.ID, b.Title, b.Description, b.PublicationDate.Time, b.Price,
		b.ISBN, b.Language, b.PageCount, b.Publisher,
		b.Format, b.RatingAverage, b.DownloadCount,
		b.ReadCount, b.CoverImage,
	)
	if err != nil {
		return err
	}

	if authorIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, b.ID); err != nil {
			return err
		}
	}
	if genreIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, b.ID); err != nil {
			return err
		}
	}
	if err := insertJoins(ctx, tx, b.ID, authorIDs, genreIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertJoins(ctx context.Context, tx pgx.Tx, bookID int64, authorIDs, genreIDs []int64) error {
	for _, aid := range authorIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO book_authors (book_id, author_id) VALUES ($1,$2)
			ON CONFLICT DO NOTHING`, bookID, aid); err != nil {
			return err
		}
	}
	for _, gid := range genreIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO book_genres (book_id, genre_id) VALUES ($1,$2)
			ON CONFLICT DO NOTHING`, bookID, gid); err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) AuthorsByBook(ctx context.Context, bookID int64) ([]model.AuthorRef, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT a.id, a.name, a.biography
		FROM authors a
		JOIN book_authors ba ON ba.author_id = a.id
		WHERE ba.book_id = $1
		ORDER BY a.id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AuthorRef{}
	for rows.Next() {
		var a model.AuthorRef
		if err := rows.Scan(&a.ID, &a.Name, &a.Biography); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) GenresByBook(ctx context.Context, bookID int64) ([]model.Genre, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT g.id, g.name
		FROM genres g
		JOIN book_genres bg ON bg.genre_id = g.id
		WHERE bg.book_id = $1
		ORDER BY g.id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Genre{}
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *repo) ReviewsByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, rating, comment, created_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		var created time.Time
		if err := rows.Scan(&rv.ID, &rv.Rating, &rv.Comment, &created); err != nil {
			return nil, err
		}
		rv.CreatedAt = model.DateTime{Time: created}
		out = append(out, rv)
	}
	return out, rows.Err()
}
