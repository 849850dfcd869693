package authorrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/StressDemon/book-manager/model"
	"github.com/StressDemon/book-manager/util/database"
)

type Repo interface {
	List(ctx context.Context) ([]model.AuthorSummary, error)
	ByID(ctx context.Context, id int64) (*model.Author, error)
	Create(ctx context.Context, a *model.Author) (int64, error)
	Update(ctx context.Context, a *model.Author) error
	// Delete removes the author; book_authors rows cascade away.
	Delete(ctx context.Context, id int64) (bool, error)
	Books(ctx context.Context, authorID int64) ([]model.BookRef, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) List(ctx context.Context) ([]model.AuthorSummary, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, nationality, website
		FROM authors
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AuthorSummary{}
	for rows.Next() {
		var a model.AuthorSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.Nationality, &a.Website); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Author, error) {
	var a model.Author
	var dob time.Time
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, biography, date_of_birth, nationality, website
		FROM authors
		WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Biography, &dob, &a.Nationality, &a.Website)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.DateOfBirth = model.NewDate(dob)
	return &a, nil
}

func (r *repo) Create(ctx context.Context, a *model.Author) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO authors (name, biography, date_of_birth, nationality, website)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		a.Name, a.Biography, a.DateOfBirth.Time, a.Nationality, a.Website,
	).Scan(&id)
	return id, err
}

func (r *repo) Update(ctx context.Context, a *model.Author) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE authors
		SET name = $2, biography = $3, date_of_birth = $4, nationality = $5, website = $6
		WHERE id = $1`,
		a.ID, a.Name, a.Biography, a.DateOfBirth.Time, a.Nationality, a.Website,
	)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) Books(ctx context.Context, authorID int64) ([]model.BookRef, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT b.id, b.title, b.publication_date, b.description
		FROM books b
		JOIN book_authors ba ON ba.book_id = b.id
		WHERE ba.author_id = $1
		ORDER BY b.id`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookRef{}
	for rows.Next() {
		var b model.BookRef
		var pub time.Time
		if err := rows.Scan(&b.ID, &b.Title, &pub, &b.Description); err != nil {
			return nil, err
		}
		b.PublicationDate = model.NewDate(pub)
		out = append(out, b)
	}
	return out, rows.Err()
}
