package model

// Book maps a row of the "books" table plus the names of its associated
// authors and genres.
type Book struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	PublicationDate Date     `json:"publicationDate"`
	Price           float64  `json:"price"`
	ISBN            string   `json:"isbn"`
	Language        string   `json:"language"`
	PageCount       int64    `json:"pageCount"`
	Publisher       string   `json:"publisher"`
	Format          string   `json:"format"`
	RatingAverage   *float64 `json:"ratingAverage"`
	DownloadCount   int64    `json:"downloadCount"`
	ReadCount       int64    `json:"readCount"`
	CoverImage      *string  `json:"coverImage,omitempty"`
	Authors         []string `json:"authors"`
	Genres          []string `json:"genres"`
}

// BookSummary is the reduced projection returned by the search endpoint.
type BookSummary struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	PublicationDate Date    `json:"publicationDate"`
	Price           float64 `json:"price"`
}

// BookRef is the projection used by the books-by-author sub-listing.
type BookRef struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	PublicationDate Date   `json:"publicationDate"`
	Description     string `json:"description"`
}

// BookInfo is the scalar projection used by the books-by-genre sub-listing:
// every book column, no association arrays.
type BookInfo struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	PublicationDate Date     `json:"publicationDate"`
	Price           float64  `json:"price"`
	ISBN            string   `json:"isbn"`
	Language        string   `json:"language"`
	PageCount       int64    `json:"pageCount"`
	Publisher       string   `json:"publisher"`
	Format          string   `json:"format"`
	RatingAverage   *float64 `json:"ratingAverage"`
	DownloadCount   int64    `json:"downloadCount"`
	ReadCount       int64    `json:"readCount"`
}

// CreateBookReq is the admin create payload. AuthorIDs/GenreIDs manage the
// join tables.
// swagger:model CreateBookReq
type CreateBookReq struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	PublicationDate *Date    `json:"publicationDate" validate:"required"`
	Price           *float64 `json:"price" validate:"required,gte=0"`
	ISBN            string   `json:"isbn" validate:"required"`
	Language        string   `json:"language" validate:"required"`
	PageCount       *int64   `json:"pageCount" validate:"required,gt=0"`
	Publisher       string   `json:"publisher" validate:"required"`
	Format          string   `json:"format" validate:"required"`
	RatingAverage   *float64 `json:"ratingAverage" validate:"omitempty,gte=0,lte=9.9"`
	DownloadCount   *int64   `json:"downloadCount" validate:"omitempty,gte=0"`
	ReadCount       *int64   `json:"readCount" validate:"omitempty,gte=0"`
	CoverImage      *string  `json:"coverImage"`
	AuthorIDs       []int64  `json:"authorIds" validate:"omitempty,dive,gt=0"`
	GenreIDs        []int64  `json:"genreIds" validate:"omitempty,dive,gt=0"`
}

// UpdateBookReq is the sparse update payload: every field is a pointer so a
// nil field means "leave untouched", never "set to zero". A nil AuthorIDs or
// GenreIDs keeps the existing associations; a present slice replaces them.
// swagger:model UpdateBookReq
type UpdateBookReq struct {
	Title           *string  `json:"title" validate:"omitempty,min=1"`
	Description     *string  `json:"description"`
	PublicationDate *Date    `json:"publicationDate"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	ISBN            *string  `json:"isbn" validate:"omitempty,min=1"`
	Language        *string  `json:"language"`
	PageCount       *int64   `json:"pageCount" validate:"omitempty,gt=0"`
	Publisher       *string  `json:"publisher"`
	Format          *string  `json:"format"`
	RatingAverage   *float64 `json:"ratingAverage" validate:"omitempty,gte=0,lte=9.9"`
	DownloadCount   *int64   `json:"downloadCount" validate:"omitempty,gte=0"`
	ReadCount       *int64   `json:"readCount" validate:"omitempty,gte=0"`
	CoverImage      *string  `json:"coverImage"`
	AuthorIDs       []int64  `json:"authorIds" validate:"omitempty,dive,gt=0"`
	GenreIDs        []int64  `json:"genreIds" validate:"omitempty,dive,gt=0"`
}

// BookFilter carries the optional list/search criteria; zero values mean "no
// constraint". Criteria combine with AND.
type BookFilter struct {
	Genre  string
	Author string
	Title  string
}
