// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/StressDemon/book-manager/model"
	booksvc "github.com/StressDemon/book-manager/service/book"
)

type repoMock struct {
	listFn    func(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	searchFn  func(ctx context.Context, f model.BookFilter) ([]model.BookSummary, error)
	byIDFn    func(ctx context.Context, id int64) (*model.Book, error)
	existsFn  func(ctx context.Context, id int64) (bool, error)
	createFn  func(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) (int64, error)
	updateFn  func(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) error
	deleteFn  func(ctx context.Context, id int64) (bool, error)
	authorsFn func(ctx context.Context, bookID int64) ([]model.AuthorRef, error)
	genresFn  func(ctx context.Context, bookID int64) ([]model.Genre, error)
	reviewsFn func(ctx context.Context, bookID int64) ([]model.Review, error)
}

var _ booksvc.Repo = (*repoMock)(nil)

func (m *repoMock) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	return m.listFn(ctx, f)
}
func (m *repoMock) Search(ctx context.Context, f model.BookFilter) ([]model.BookSummary, error) {
	return m.searchFn(ctx, f)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}
func (m *repoMock) Create(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) (int64, error) {
	return m.createFn(ctx, b, authorIDs, genreIDs)
}
func (m *repoMock) Update(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) error {
	return m.updateFn(ctx, b, authorIDs, genreIDs)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}
func (m *repoMock) AuthorsByBook(ctx context.Context, bookID int64) ([]model.AuthorRef, error) {
	return m.authorsFn(ctx, bookID)
}
func (m *repoMock) GenresByBook(ctx context.Context, bookID int64) ([]model.Genre, error) {
	return m.genresFn(ctx, bookID)
}
func (m *repoMock) ReviewsByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	return m.reviewsFn(ctx, bookID)
}

func ptr[T any](v T) *T { return &v }

func validCreateReq() model.CreateBookReq {
	d, _ := model.ParseDate("1997-06-26")
	return model.CreateBookReq{
		Title:           "Harry Potter and the Philosopher's Stone",
		Description:     "A boy discovers he is a wizard.",
		PublicationDate: &d,
		Price:           ptr(12.99),
		ISBN:            "9780747532699",
		Language:        "en",
		PageCount:       ptr(int64(223)),
		Publisher:       "Bloomsbury",
		Format:          "hardcover",
		AuthorIDs:       []int64{1},
		GenreIDs:        []int64{2},
	}
}

func TestCreate_PassesFieldsAndDefaults(t *testing.T) {
	var got *model.Book
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) (int64, error) {
			got = b
			require.Equal(t, []int64{1}, authorIDs)
			require.Equal(t, []int64{2}, genreIDs)
			return 42, nil
		},
	}
	s := booksvc.New(m)

	id, err := s.Create(context.Background(), validCreateReq())
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.Equal(t, "Harry Potter and the Philosopher's Stone", got.Title)
	require.Equal(t, "9780747532699", got.ISBN)
	require.Equal(t, "1997-06-26", got.PublicationDate.String())
	require.Equal(t, int64(223), got.PageCount)
	// counters default to zero when not supplied
	require.Equal(t, int64(0), got.DownloadCount)
	require.Equal(t, int64(0), got.ReadCount)
	require.Nil(t, got.RatingAverage)
}

func TestCreate_RejectsBeforePersistence(t *testing.T) {
	called := false
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) (int64, error) {
			called = true
			return 0, nil
		},
	}
	s := booksvc.New(m)

	for _, mutate := range []func(*model.CreateBookReq){
		func(r *model.CreateBookReq) { r.Title = "" },
		func(r *model.CreateBookReq) { r.ISBN = "" },
		func(r *model.CreateBookReq) { r.Price = ptr(-1.0) },
		func(r *model.CreateBookReq) { r.PageCount = ptr(int64(0)) },
		func(r *model.CreateBookReq) { r.RatingAverage = ptr(10.5) },
	} {
		req := validCreateReq()
		mutate(&req)
		_, err := s.Create(context.Background(), req)
		require.Error(t, err)
		require.Equal(t, booksvc.ErrBadInput, booksvc.Code(err))
	}
	require.False(t, called, "invalid create must never reach the repository")
}

func TestCreate_ISBNConflict(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) (int64, error) {
			return 0, &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "books_isbn_key"}
		},
	}
	s := booksvc.New(m)

	_, err := s.Create(context.Background(), validCreateReq())
	require.Error(t, err)
	require.Equal(t, booksvc.ErrISBNTaken, booksvc.Code(err))
}

func storedBook() *model.Book {
	d, _ := model.ParseDate("1997-06-26")
	return &model.Book{
		ID:              7,
		Title:           "Harry Potter and the Philosopher's Stone",
		Description:     "A boy discovers he is a wizard.",
		PublicationDate: d,
		Price:           12.99,
		ISBN:            "9780747532699",
		Language:        "en",
		PageCount:       223,
		Publisher:       "Bloomsbury",
		Format:          "hardcover",
	}
}

func TestUpdate_PartialOnlyTouchesSuppliedFields(t *testing.T) {
	var written *model.Book
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) { return storedBook(), nil },
		updateFn: func(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) error {
			written = b
			require.Nil(t, authorIDs, "absent authorIds must keep associations")
			require.Nil(t, genreIDs)
			return nil
		},
	}
	s := booksvc.New(m)

	err := s.Update(context.Background(), 7, model.UpdateBookReq{Price: ptr(9.99)})
	require.NoError(t, err)
	require.Equal(t, 9.99, written.Price)
	// everything else keeps its stored value
	require.Equal(t, "Harry Potter and the Philosopher's Stone", written.Title)
	require.Equal(t, "9780747532699", written.ISBN)
	require.Equal(t, int64(223), written.PageCount)
	require.Equal(t, "1997-06-26", written.PublicationDate.String())
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, nil },
	}
	s := booksvc.New(m)

	err := s.Update(context.Background(), 99, model.UpdateBookReq{Price: ptr(9.99)})
	require.Equal(t, booksvc.ErrNotFound, booksvc.Code(err))
}

func TestUpdate_InvalidFieldLeavesStoreUntouched(t *testing.T) {
	called := false
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) { return storedBook(), nil },
		updateFn: func(ctx context.Context, b *model.Book, authorIDs, genreIDs []int64) error {
			called = true
			return nil
		},
	}
	s := booksvc.New(m)

	err := s.Update(context.Background(), 7, model.UpdateBookReq{PageCount: ptr(int64(-5))})
	require.Equal(t, booksvc.ErrBadInput, booksvc.Code(err))
	require.False(t, called, "failed validation must not reach the repository")
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	s := booksvc.New(m)

	err := s.Delete(context.Background(), 99)
	require.Equal(t, booksvc.ErrNotFound, booksvc.Code(err))
}

func TestSubListings_AnchorMissing(t *testing.T) {
	m := &repoMock{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	s := booksvc.New(m)

	_, err := s.Authors(context.Background(), 99)
	require.Equal(t, booksvc.ErrNotFound, booksvc.Code(err))
	_, err = s.Genres(context.Background(), 99)
	require.Equal(t, booksvc.ErrNotFound, booksvc.Code(err))
	_, err = s.Reviews(context.Background(), 99)
	require.Equal(t, booksvc.ErrNotFound, booksvc.Code(err))
}

func TestList_PassesFilterThrough(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
			require.Equal(t, model.BookFilter{Genre: "Fantasy", Author: "J. K. Rowling", Title: "Harry"}, f)
			return []model.Book{*storedBook()}, nil
		},
	}
	s := booksvc.New(m)

	rows, err := s.List(context.Background(), model.BookFilter{
		Genre: "Fantasy", Author: "J. K. Rowling", Title: "Harry",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
