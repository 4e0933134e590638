package request

type ReviewRequest struct {
	MovieID      string  `json:"movie_id" validate:"required,uuid4"`
	UserID       string  `json:"user_id" validate:"required,uuid4"`
	ReviewerName string  `json:"reviewer_name,omitempty" validate:"omitempty,max=100"`
	Rating       *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Body         *string `json:"body,omitempty" validate:"omitempty,max=2000"`
}
