package genrerepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/StressDemon/book-manager/model"
	"github.com/StressDemon/book-manager/util/database"
)

type Repo interface {
	List(ctx context.Context) ([]model.Genre, error)
	ByID(ctx context.Context, id int64) (*model.Genre, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) error
	// Delete removes the genre and detaches it from every book via the
	// book_genres cascade.
	Delete(ctx context.Context, id int64) (bool, error)
	Books(ctx context.Context, genreID int64) ([]model.BookInfo, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) List(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
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

func (r *repo) ByID(ctx context.Context, id int64) (*model.Genre, error) {
	var g model.Genre
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, name FROM genres WHERE id = $1`, id,
	).Scan(&g.ID, &g.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repo) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO genres (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	return id, err
}

func (r *repo) Update(ctx context.Context, id int64, name string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE genres SET name = $2 WHERE id = $1`, id, name)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) Books(ctx context.Context, genreID int64) ([]model.BookInfo, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT b.id, b.title, b.description, b.publication_date, b.price,
		       b.isbn, b.language, b.page_count, b.publisher, b.format,
		       b.rating_average, b.download_count, b.read_count
		FROM books b
		JOIN book_genres bg ON bg.book_id = b.id
		WHERE bg.genre_id = $1
		ORDER BY b.id`, genreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookInfo{}
	for rows.Next() {
		var b model.BookInfo
		var pub time.Time
		err := rows.Scan(&b.ID, &b.Title, &b.Description, &pub, &b.Price,
			&b.ISBN, &b.Language, &b.PageCount, &b.Publisher, &b.Format,
			&b.RatingAverage, &b.DownloadCount, &b.ReadCount)
		if err != nil {
			return nil, err
		}
		b.PublicationDate = model.NewDate(pub)
		out = append(out, b)
	}
	return out, rows.Err()
}
