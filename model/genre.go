package model

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// swagger:model GenreReq
type GenreReq struct {
	Name string `json:"name" validate:"required,min=1"`
}
