package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	MovieID uuid.UUID `db:"movie_id"`
	UserID  uuid.UUID `db:"user_id"`
	// Reviewer name is a snapshot taken at creation, not a join.
	ReviewerName string  `db:"reviewer_name"`
	Rating       *int    `db:"rating"` // 1-5, nullable
	Body         *string `db:"body"`
}
