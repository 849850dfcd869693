package model

// Review belongs to exactly one book and is exposed read-only through the
// book's review listing.
type Review struct {
	ID        int64    `json:"id"`
	Rating    int64    `json:"rating"`
	Comment   string   `json:"comment"`
	CreatedAt DateTime `json:"createdAt"`
}
