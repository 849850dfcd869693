package genresvc

import (
	"context"
	"errors"
	"strings"

	"github.com/StressDemon/book-manager/model"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
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

type Repo interface {
	List(ctx context.Context) ([]model.Genre, error)
	ByID(ctx context.Context, id int64) (*model.Genre, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) (bool, error)
	Books(ctx context.Context, genreID int64) ([]model.BookInfo, error)
}

type Service interface {
	List(ctx context.Context) ([]model.Genre, error)
	Get(ctx context.Context, id int64) (*model.Genre, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	Books(ctx context.Context, genreID int64) ([]model.BookInfo, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.Genre, error) { return s.r.List(ctx) }

func (s *service) Get(ctx context.Context, id int64) (*model.Genre, error) {
	g, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, makeErr(ErrNotFound)
	}
	return g, nil
}

func (s *service) Create(ctx context.Context, name string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, makeErr(ErrBadInput)
	}
	return s.r.Create(ctx, name)
}

func (s *service) Update(ctx context.Context, id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return makeErr(ErrBadInput)
	}
	g, err := s.r.ByID(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return makeErr(ErrNotFound)
	}
	return s.r.Update(ctx, id, name)
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

func (s *service) Books(ctx context.Context, genreID int64) ([]model.BookInfo, error) {
	g, err := s.r.ByID(ctx, genreID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, makeErr(ErrNotFound)
	}
	return s.r.Books(ctx, genreID)
}
