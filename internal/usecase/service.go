package usecase

import (
	"flickcritic/internal/data/repository"
	"flickcritic/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	User   UserService
	Movie  MovieService
	Review ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		User:   NewUserService(repo.User, log),
		Movie:  NewMovieService(repo, log),
		Review: NewReviewService(repo, config, log),
	}
}
