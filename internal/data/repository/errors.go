package repository

import (
	"fmt"

	"github.com/google/uuid"
)

func errMovieNotFound(id uuid.UUID) error {
	return fmt.Errorf("movie %s not found", id.String())
}

func errReviewNotFound(id uuid.UUID) error {
	return fmt.Errorf("review %s not found", id.String())
}

func errUserNotFound(id uuid.UUID) error {
	return fmt.Errorf("user %s not found", id.String())
}
