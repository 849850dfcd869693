package model

type Author struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Biography   string  `json:"biography"`
	DateOfBirth Date    `json:"dateOfBirth"`
	Nationality string  `json:"nationality"`
	Website     *string `json:"website"`
}

// AuthorSummary is the projection used by the author list and the
// authors-by-book sub-listing.
type AuthorSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Nationality string  `json:"nationality"`
	Website     *string `json:"website"`
}

// AuthorRef is the projection used by the authors-by-book sub-listing.
type AuthorRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Biography string `json:"biography"`
}

// swagger:model CreateAuthorReq
type CreateAuthorReq struct {
	Name        string  `json:"name" validate:"required"`
	Biography   string  `json:"biography" validate:"required"`
	DateOfBirth *Date   `json:"dateOfBirth" validate:"required"`
	Nationality string  `json:"nationality" validate:"required"`
	Website     *string `json:"website" validate:"omitempty,url"`
}

// UpdateAuthorReq is the sparse update payload; nil fields stay untouched.
// swagger:model UpdateAuthorReq
type UpdateAuthorReq struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Biography   *string `json:"biography"`
	DateOfBirth *Date   `json:"dateOfBirth"`
	Nationality *string `json:"nationality"`
	Website     *string `json:"website" validate:"omitempty,url"`
}
