package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"flickcritic/internal/data/entity"
	"flickcritic/internal/data/repository"
	"flickcritic/internal/dto/request"
	"flickcritic/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newReviewTestEnv(t *testing.T, strictRefs bool) (*repository.Repository, ReviewService) {
	t.Helper()

	repo := repository.NewMemoryRepository()
	config := &utils.Config{Rating: utils.RatingConfig{StrictRefs: strictRefs}}
	return repo, NewReviewService(repo, config, zap.NewNop())
}

func seedMovie(t *testing.T, repo *repository.Repository, title string, rating float64) *entity.Movie {
	t.Helper()

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:         title,
		ImageURL:      "https://img.example/" + title + ".jpg",
		Description:   "test movie",
		AverageRating: rating,
	}
	if err := repo.Movie.Create(context.Background(), movie); err != nil {
		t.Fatalf("seed movie: %v", err)
	}
	return movie
}

func seedUser(t *testing.T, repo *repository.Repository, name, email string) *entity.User {
	t.Helper()

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$irrelevantforthistest",
		Role:         entity.RoleUser,
	}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func movieRating(t *testing.T, repo *repository.Repository, id uuid.UUID) float64 {
	t.Helper()

	movie, err := repo.Movie.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find movie: %v", err)
	}
	if movie == nil {
		t.Fatalf("movie %s vanished", id)
	}
	return movie.AverageRating
}

func assertRating(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("average rating = %v, want %v", got, want)
	}
}

func TestReviewLifecycleRefreshesMovieRating(t *testing.T) {
	repo, svc := newReviewTestEnv(t, false)
	ctx := context.Background()

	// Seeded rating is stale on purpose; the first mutation replaces it
	movie := seedMovie(t, repo, "Avatar", 4.5)
	user := seedUser(t, repo, "Jake", "jake@example.com")

	first, err := svc.CreateReview(ctx, &request.ReviewRequest{
		MovieID: movie.ID.String(),
		UserID:  user.ID.String(),
		Rating:  intPtr(5),
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	assertRating(t, movieRating(t, repo, movie.ID), 5.0)

	if first.ReviewerName != "Jake" {
		t.Errorf("reviewer name = %q, want snapshot of user name", first.ReviewerName)
	}

	second, err := svc.CreateReview(ctx, &request.ReviewRequest{
		MovieID: movie.ID.String(),
		UserID:  user.ID.String(),
		Rating:  intPtr(3),
	})
	if err != nil {
		t.Fatalf("create second review: %v", err)
	}
	assertRating(t, movieRating(t, repo, movie.ID), 4.0)

	if err := svc.DeleteReview(ctx, first.ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}
	assertRating(t, movieRating(t, repo, movie.ID), 3.0)

	if err := svc.DeleteReview(ctx, second.ID); err != nil {
		t.Fatalf("delete last review: %v", err)
	}
	assertRating(t, movieRating(t, repo, movie.ID), 0.0)
}

func TestCreateReviewNilRatingDoesNotCount(t *testing.T) {
	repo, svc := newReviewTestEnv(t, false)
	ctx := context.Background()

	movie := seedMovie(t, repo, "Dune", 0)
	user := seedUser(t, repo, "Paul", "paul@example.com")

	body := "text only, no score"
	if _, err := svc.CreateReview(ctx, &request.ReviewRequest{
		MovieID: movie.ID.String(),
		UserID:  user.ID.String(),
		Body:    &body,
	}); err != nil {
		t.Fatalf("create unrated review: %v", err)
	}
	assertRating(t, movieRating(t, repo, movie.ID), 0.0)

	if _, err := svc.CreateReview(ctx, &request.ReviewRequest{
		MovieID: movie.ID.String(),
		UserID:  user.ID.String(),
		Rating:  intPtr(4),
	}); err != nil {
		t.Fatalf("create rated review: %v", err)
	}
	// The unrated review is excluded from the mean entirely
	assertRating(t, movieRating(t, repo, movie.ID), 4.0)
}

func TestUpdateReviewRecomputesRating(t *testing.T) {
	repo, svc := newReviewTestEnv(t, false)
	ctx := context.Background()

	movie := seedMovie(t, repo, "Heat", 0)
	user := seedUser(t, repo, "Neil", "neil@example.com")

	created, err := svc.CreateReview(ctx, &request.ReviewRequest{
		MovieID: movie.ID.String(),
		UserID:  user.ID.String(),
		Rating:  intPtr(2),
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	assertRating(t, movieRating(t, repo, movie.ID), 2.0)

	if _, err := svc.UpdateReview(ctx, created.ID, &request.ReviewRequest{
		MovieID: movie.ID.String(),
		UserID:  user.ID.String(),
		Rating:  intPtr(5),
	}); err != nil {
		t.Fatalf("update review: %v", err)
	}
	assertRating(t, movieRating(t, repo, movie.ID), 5.0)
}

func TestCreateReviewUnresolvedMovieRef(t *testing.T) {
	t.Run("lenient mode skips the refresh", func(t *testing.T) {
		repo, svc := newReviewTestEnv(t, false)
		user := seedUser(t, repo, "Ghost", "ghost@example.com")

		created, err := svc.CreateReview(context.Background(), &request.ReviewRequest{
			MovieID: uuid.New().String(),
			UserID:  user.ID.String(),
			Rating:  intPtr(5),
		})
		if err != nil {
			t.Fatalf("create review with dangling movie ref: %v", err)
		}
		if created == nil {
			t.Fatal("expected the review to be stored")
		}
	})

	t.Run("strict mode fails the mutation", func(t *testing.T) {
		repo, svc := newReviewTestEnv(t, true)
		user := seedUser(t, repo, "Ghost", "ghost@example.com")

		_, err := svc.CreateReview(context.Background(), &request.ReviewRequest{
			MovieID: uuid.New().String(),
			UserID:  user.ID.String(),
			Rating:  intPtr(5),
		})
		if err == nil {
			t.Fatal("expected an error for dangling movie ref in strict mode")
		}
	})
}

func TestDeleteMissingReviewIsNoOp(t *testing.T) {
	_, svc := newReviewTestEnv(t, false)

	if err := svc.DeleteReview(context.Background(), uuid.New().String()); err != nil {
		t.Fatalf("delete of missing review should be a no-op, got: %v", err)
	}
}

func TestDeleteReviewInvalidID(t *testing.T) {
	_, svc := newReviewTestEnv(t, false)

	if err := svc.DeleteReview(context.Background(), "not-a-uuid"); err == nil {
		t.Fatal("expected an error for malformed review id")
	}
}

func TestGetMovieUserReviews(t *testing.T) {
	repo, svc := newReviewTestEnv(t, false)
	ctx := context.Background()

	movie := seedMovie(t, repo, "Alien", 0)
	other := seedMovie(t, repo, "Aliens", 0)
	user := seedUser(t, repo, "Ripley", "ripley@example.com")
	rival := seedUser(t, repo, "Ash", "ash@example.com")

	for _, req := range []*request.ReviewRequest{
		{MovieID: movie.ID.String(), UserID: user.ID.String(), Rating: intPtr(5)},
		{MovieID: movie.ID.String(), UserID: rival.ID.String(), Rating: intPtr(2)},
		{MovieID: other.ID.String(), UserID: user.ID.String(), Rating: intPtr(4)},
	} {
		if _, err := svc.CreateReview(ctx, req); err != nil {
			t.Fatalf("create review: %v", err)
		}
	}

	got, err := svc.GetMovieUserReviews(ctx, movie.ID.String(), user.ID.String())
	if err != nil {
		t.Fatalf("get reviews by movie and user: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d reviews, want 1", len(got))
	}
	if got[0].MovieID != movie.ID.String() || got[0].UserID != user.ID.String() {
		t.Errorf("review %+v does not match the movie/user pair", got[0])
	}
}
