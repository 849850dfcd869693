package book

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/StressDemon/book-manager/model"
	booksvc "github.com/StressDemon/book-manager/service/book"
)

type svcMock struct {
	listFn    func(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	searchFn  func(ctx context.Context, f model.BookFilter) ([]model.BookSummary, error)
	getFn     func(ctx context.Context, id int64) (*model.Book, error)
	createFn  func(ctx context.Context, req model.CreateBookReq) (int64, error)
	updateFn  func(ctx context.Context, id int64, req model.UpdateBookReq) error
	deleteFn  func(ctx context.Context, id int64) error
	authorsFn func(ctx context.Context, bookID int64) ([]model.AuthorRef, error)
	genresFn  func(ctx context.Context, bookID int64) ([]model.Genre, error)
	reviewsFn func(ctx context.Context, bookID int64) ([]model.Review, error)
}

var _ booksvc.Service = (*svcMock)(nil)

func (m *svcMock) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	return m.listFn(ctx, f)
}
func (m *svcMock) Search(ctx context.Context, f model.BookFilter) ([]model.BookSummary, error) {
	return m.searchFn(ctx, f)
}
func (m *svcMock) Get(ctx context.Context, id int64) (*model.Book, error) { return m.getFn(ctx, id) }
func (m *svcMock) Create(ctx context.Context, req model.CreateBookReq) (int64, error) {
	return m.createFn(ctx, req)
}
func (m *svcMock) Update(ctx context.Context, id int64, req model.UpdateBookReq) error {
	return m.updateFn(ctx, id, req)
}
func (m *svcMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }
func (m *svcMock) Authors(ctx context.Context, bookID int64) ([]model.AuthorRef, error) {
	return m.authorsFn(ctx, bookID)
}
func (m *svcMock) Genres(ctx context.Context, bookID int64) ([]model.Genre, error) {
	return m.genresFn(ctx, bookID)
}
func (m *svcMock) Reviews(ctx context.Context, bookID int64) ([]model.Review, error) {
	return m.reviewsFn(ctx, bookID)
}

func newController(svc booksvc.Service) *Controller {
	return &Controller{
		Svc: svc,
		V:   validator.New(),
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func notFound() error {
	// service shape for a missing book
	s := booksvc.New(&missingRepo{})
	_, err := s.Get(context.Background(), 1)
	return err
}

type missingRepo struct{ booksvc.Repo }

func (missingRepo) ByID(ctx context.Context, id int64) (*model.Book, error) { return nil, nil }

func TestDetail_NotFoundBody(t *testing.T) {
	h := newController(&svcMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, notFound() },
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/books/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/books/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.Detail(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error": "Book not found"}`, rec.Body.String())
}

func TestList_PassesQueryFilters(t *testing.T) {
	var got model.BookFilter
	h := newController(&svcMock{
		listFn: func(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
			got = f
			return []model.Book{}, nil
		},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/books?genre=Fantasy&author=Rowling&title=Harry", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, model.BookFilter{Genre: "Fantasy", Author: "Rowling", Title: "Harry"}, got)
}

func TestCreate_InvalidJSON(t *testing.T) {
	called := false
	h := newController(&svcMock{
		createFn: func(ctx context.Context, req model.CreateBookReq) (int64, error) {
			called = true
			return 0, nil
		},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(`{not json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, called)
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	called := false
	h := newController(&svcMock{
		createFn: func(ctx context.Context, req model.CreateBookReq) (int64, error) {
			called = true
			return 0, nil
		},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(`{"title": "only a title"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, called, "validation must reject before the service is invoked")
}

func TestCreate_MalformedDate(t *testing.T) {
	h := newController(&svcMock{})

	body := `{"title":"t","description":"d","publicationDate":"26-06-1997","price":1,` +
		`"isbn":"x","language":"en","pageCount":10,"publisher":"p","format":"f"}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_Success(t *testing.T) {
	h := newController(&svcMock{
		createFn: func(ctx context.Context, req model.CreateBookReq) (int64, error) {
			require.Equal(t, "Harry Potter and the Philosopher's Stone", req.Title)
			require.Equal(t, []int64{1, 2}, req.AuthorIDs)
			return 42, nil
		},
	})

	body := `{"title":"Harry Potter and the Philosopher's Stone","description":"d",` +
		`"publicationDate":"1997-06-26","price":12.99,"isbn":"9780747532699",` +
		`"language":"en","pageCount":223,"publisher":"Bloomsbury","format":"hardcover",` +
		`"authorIds":[1,2],"genreIds":[3]}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"id": 42}`, rec.Body.String())
}

func TestUpdate_SparsePayloadDecoding(t *testing.T) {
	h := newController(&svcMock{
		updateFn: func(ctx context.Context, id int64, req model.UpdateBookReq) error {
			require.Equal(t, int64(7), id)
			require.NotNil(t, req.Price)
			require.Equal(t, 9.99, *req.Price)
			require.Nil(t, req.Title)
			require.Nil(t, req.AuthorIDs)
			return nil
		},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/books/7", strings.NewReader(`{"price": 9.99}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/books/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message": "Book updated successfully"}`, rec.Body.String())
}
