package request

type MovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	ImageURL    string `json:"image_url" validate:"required,max=500"`
	Description string `json:"description" validate:"required,max=2000"`
	// Derived field, but clients may seed it (kept from the source design)
	AverageRating float64 `json:"average_rating,omitempty" validate:"omitempty,min=0,max=5"`
}
