package booksvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/StressDemon/book-manager/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrBadInput  ErrCode = "BAD_INPUT"
	ErrISBNTaken ErrCode = "ISBN_TAKEN"
	// ErrBadRef means an authorIds/genreIds entry references a missing row.
	ErrBadRef ErrCode = "BAD_REF"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

func mapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if strings.Contains(strings.ToLower(pgErr.ConstraintName), "isbn") {
			return makeErr(ErrISBNTaken)
		}
		return makeErr(ErrBadInput)
	case pgerrcode.ForeignKeyViolation:
		return makeErr(ErrBadRef)
	}
	return nil
}

type Repo interface {
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Search(ctx context.Context, f model.BookFilter) ([]model.BookSummary, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) (int64, error)
	Update(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) error
	Delete(ctx context.Context, id int64) (bool, error)
	AuthorsByBook(ctx context.Context, bookID int64) ([]model.AuthorRef, error)
	GenresByBook(ctx context.Context, bookID int64) ([]model.Genre, error)
	ReviewsByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}

type Service interface {
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Search(ctx context.Context, f model.BookFilter) ([]model.BookSummary, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, req model.CreateBookReq) (int64, error)
	Update(ctx context.Context, id int64, req model.UpdateBookReq) error
	Delete(ctx context.Context, id int64) error
	Authors(ctx context.Context, bookID int64) ([]model.AuthorRef, error)
	Genres(ctx context.Context, bookID int64) ([]model.Genre, error)
	Reviews(ctx context.Context, bookID int64) ([]model.Review, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	return s.r.List(ctx, f)
}

func (s *service) Search(ctx context.Context, f model.BookFilter) ([]model.BookSummary, error) {
	return s.r.Search(ctx, f)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, req model.CreateBookReq) (int64, error) {
	b := model.Book{
		Title:         req.Title,
		Description:   req.Description,
		ISBN:          req.ISBN,
		Language:      req.Language,
		Publisher:     req.Publisher,
		Format:        req.Format,
		RatingAverage: req.RatingAverage,
		CoverImage:    req.CoverImage,
	}
	if req.PublicationDate != nil {
		b.PublicationDate = *req.PublicationDate
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.PageCount != nil {
		b.PageCount = *req.PageCount
	}
	if req.DownloadCount != nil {
		b.DownloadCount = *req.DownloadCount
	}
	if req.ReadCount != nil {
		b.ReadCount = *req.ReadCount
	}

	if err := checkBook(&b); err != nil {
		return 0, err
	}

	id, err := s.r.Create(ctx, &b, req.AuthorIDs, req.GenreIDs)
	if err != nil {
		if derr := mapPgErr(err); derr != nil {
			return 0, derr
		}
		return 0, err
	}
	return id, nil
}

func (s *service) Update(ctx context.Context, id int64, req model.UpdateBookReq) error {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return makeErr(ErrNotFound)
	}

	applyPatch(b, req)

	// Full validation before any write so a rejected update leaves the
	// stored row untouched.
	if err := checkBook(b); err != nil {
		return err
	}

	if err := s.r.Update(ctx, b, req.AuthorIDs, req.GenreIDs); err != nil {
		if derr := mapPgErr(err); derr != nil {
			return derr
		}
		return err
	}
	return nil
}

// applyPatch overwrites only the fields present in the payload; nil fields
// keep their stored values.
func applyPatch(b *model.Book, req model.UpdateBookReq) {
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.PublicationDate != nil {
		b.PublicationDate = *req.PublicationDate
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.ISBN != nil {
		b.ISBN = *req.ISBN
	}
	if req.Language != nil {
		b.Language = *req.Language
	}
	if req.PageCount != nil {
		b.PageCount = *req.PageCount
	}
	if req.Publisher != nil {
		b.Publisher = *req.Publisher
	}
	if req.Format != nil {
		b.Format = *req.Format
	}
	if req.RatingAverage != nil {
		b.RatingAverage = req.RatingAverage
	}
	if req.DownloadCount != nil {
		b.DownloadCount = *req.DownloadCount
	}
	if req.ReadCount != nil {
		b.ReadCount = *req.ReadCount
	}
	if req.CoverImage != nil {
		b.CoverImage = req.CoverImage
	}
}

func checkBook(b *model.Book) error {
	switch {
	case b.Title == "",
		b.ISBN == "",
		b.Price < 0,
		b.PageCount <= 0,
		b.DownloadCount < 0,
		b.ReadCount < 0,
		b.PublicationDate.IsZero():
		return makeErr(ErrBadInput)
	}
	if b.RatingAverage != nil && (*b.RatingAverage < 0 || *b.RatingAverage > 9.9) {
		return makeErr(ErrBadInput)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Authors(ctx context.Context, bookID int64) ([]model.AuthorRef, error) {
	if err := s.mustExist(ctx, bookID); err != nil {
		return nil, err
	}
	return s.r.AuthorsByBook(ctx, bookID)
}

func (s *service) Genres(ctx context.Context, bookID int64) ([]model.Genre, error) {
	if err := s.mustExist(ctx, bookID); err != nil {
		return nil, err
	}
	return s.r.GenresByBook(ctx, bookID)
}

func (s *service) Reviews(ctx context.Context, bookID int64) ([]model.Review, error) {
	if err := s.mustExist(ctx, bookID); err != nil {
		return nil, err
	}
	return s.r.ReviewsByBook(ctx, bookID)
}

func (s *service) mustExist(ctx context.Context, id int64) error {
	ok, err := s.r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}
