package authorsvc

import (
	"context"
	"errors"

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
	List(ctx context.Context) ([]model.AuthorSummary, error)
	ByID(ctx context.Context, id int64) (*model.Author, error)
	Create(ctx context.Context, a *model.Author) (int64, error)
	Update(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, id int64) (bool, error)
	Books(ctx context.Context, authorID int64) ([]model.BookRef, error)
}

type Service interface {
	List(ctx context.Context) ([]model.AuthorSummary, error)
	Get(ctx context.Context, id int64) (*model.Author, error)
	Create(ctx context.Context, req model.CreateAuthorReq) (int64, error)
	Update(ctx context.Context, id int64, req model.UpdateAuthorReq) error
	Delete(ctx context.Context, id int64) error
	Books(ctx context.Context, authorID int64) ([]model.BookRef, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.AuthorSummary, error) {
	return s.r.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Author, error) {
	a, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, makeErr(ErrNotFound)
	}
	return a, nil
}

func (s *service) Create(ctx context.Context, req model.CreateAuthorReq) (int64, error) {
	if req.Name == "" || req.Biography == "" || req.Nationality == "" || req.DateOfBirth == nil {
		return 0, makeErr(ErrBadInput)
	}
	a := model.Author{
		Name:        req.Name,
		Biography:   req.Biography,
		DateOfBirth: *req.DateOfBirth,
		Nationality: req.Nationality,
		Website:     req.Website,
	}
	return s.r.Create(ctx, &a)
}

func (s *service) Update(ctx context.Context, id int64, req model.UpdateAuthorReq) error {
	a, err := s.r.ByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return makeErr(ErrNotFound)
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Biography != nil {
		a.Biography = *req.Biography
	}
	if req.DateOfBirth != nil {
		a.DateOfBirth = *req.DateOfBirth
	}
	if req.Nationality != nil {
		a.Nationality = *req.Nationality
	}
	if req.Website != nil {
		a.Website = req.Website
	}

	if a.Name == "" || a.DateOfBirth.IsZero() {
		return makeErr(ErrBadInput)
	}
	return s.r.Update(ctx, a)
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

func (s *service) Books(ctx context.Context, authorID int64) ([]model.BookRef, error) {
	a, err := s.r.ByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, makeErr(ErrNotFound)
	}
	return s.r.Books(ctx, authorID)
}
