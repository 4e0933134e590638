package usecase

import (
	"context"
	"fmt"
	"time"

	"flickcritic/internal/data/entity"
	"flickcritic/internal/data/repository"
	"flickcritic/internal/dto/request"
	"flickcritic/internal/dto/response"
	"flickcritic/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	GetReviews(ctx context.Context) ([]response.ReviewResponse, error)
	GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID string) ([]response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error)
	GetMovieUserReviews(ctx context.Context, movieID, userID string) ([]response.ReviewResponse, error)
	CreateReview(ctx context.Context, req *request.ReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID string, req *request.ReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

type reviewService struct {
	repo       *repository.Repository
	strictRefs bool
	log        *zap.Logger
}

func NewReviewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:       repo,
		strictRefs: config.Rating.StrictRefs,
		log:        log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetReviews(ctx context.Context) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get reviews", zap.Error(err))
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review id: %w", err)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get review by ID",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("get review by id: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review not found")
	}

	reviewResp := response.ReviewToResponse(review)
	return &reviewResp, nil
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID string) ([]response.ReviewResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie reviews",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	reviews, err := s.repo.Review.FindByUserID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get user reviews",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetMovieUserReviews(ctx context.Context, movieID, userID string) ([]response.ReviewResponse, error) {
	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	reviews, err := s.repo.Review.FindByMovieAndUser(ctx, movieUUID, userUUID)
	if err != nil {
		s.log.Error("Failed to get reviews by movie and user",
			zap.Error(err),
			zap.String("movie_id", movieID),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get reviews by movie and user: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) CreateReview(ctx context.Context, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	// Snapshot the reviewer name when the client omitted it
	reviewerName := req.ReviewerName
	if reviewerName == "" {
		user, err := s.repo.User.FindByID(ctx, userID)
		if err != nil {
			s.log.Warn("Failed to look up reviewer",
				zap.Error(err),
				zap.String("user_id", req.UserID),
			)
		}
		if user != nil {
			reviewerName = user.Name
		}
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MovieID:      movieID,
		UserID:       userID,
		ReviewerName: reviewerName,
		Rating:       req.Rating,
		Body:         req.Body,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("movie_id", req.MovieID),
			zap.String("user_id", req.UserID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Refresh the movie's derived rating from the post-mutation set
	if err := s.refreshMovieRating(ctx, movieID); err != nil {
		return nil, err
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("user_id", req.UserID),
	)

	reviewResp := response.ReviewToResponse(review)
	return &reviewResp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review id: %w", err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review not found")
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	// Full record replacement; the id from the path wins
	review.MovieID = movieID
	review.UserID = userID
	if req.ReviewerName != "" {
		review.ReviewerName = req.ReviewerName
	}
	review.Rating = req.Rating
	review.Body = req.Body

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("update review: %w", err)
	}

	if err := s.refreshMovieRating(ctx, review.MovieID); err != nil {
		return nil, err
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("movie_id", req.MovieID),
	)

	reviewResp := response.ReviewToResponse(review)
	return &reviewResp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return fmt.Errorf("invalid review id: %w", err)
	}

	// Fetch first to capture the movie reference before the row is gone
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		// Deliberately a no-op, unlike movie/user delete
		s.log.Debug("Delete of missing review ignored", zap.String("review_id", reviewID))
		return nil
	}

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return fmt.Errorf("delete review: %w", err)
	}

	if err := s.refreshMovieRating(ctx, review.MovieID); err != nil {
		return err
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("movie_id", review.MovieID.String()),
	)

	return nil
}

// ==================== HELPER METHODS ====================

// refreshMovieRating recomputes and persists the movie's average rating
// from its current review set. An unresolvable movie reference is
// skipped with a warning unless strict refs are enabled.
func (s *reviewService) refreshMovieRating(ctx context.Context, movieID uuid.UUID) error {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return fmt.Errorf("find movie for rating refresh: %w", err)
	}
	if movie == nil {
		if s.strictRefs {
			return fmt.Errorf("movie %s not found for rating refresh", movieID.String())
		}
		s.log.Warn("Skipping rating refresh, movie reference unresolved",
			zap.String("movie_id", movieID.String()),
		)
		return nil
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID)
	if err != nil {
		return fmt.Errorf("get reviews for rating refresh: %w", err)
	}

	avgRating := AverageRating(reviews)

	if err := s.repo.Movie.UpdateRating(ctx, movieID, avgRating); err != nil {
		return fmt.Errorf("update movie rating: %w", err)
	}

	s.log.Debug("Movie rating refreshed",
		zap.String("movie_id", movieID.String()),
		zap.Float64("new_rating", avgRating),
		zap.Int("review_count", len(reviews)),
	)

	return nil
}
