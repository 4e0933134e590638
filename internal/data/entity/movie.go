package entity

// Movie's AverageRating is derived from reviews after every review
// mutation, but clients may also seed it on create/update.
type Movie struct {
	Base
	Title         string  `db:"title"`
	ImageURL      string  `db:"image_url"`
	Description   string  `db:"description"`
	AverageRating float64 `db:"average_rating"`
}
