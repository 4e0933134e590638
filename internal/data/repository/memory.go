package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"flickcritic/internal/data/entity"

	"github.com/google/uuid"
)

// In-memory implementations of the repository interfaces. They back the
// services in tests and when running without a database; semantics match
// the postgres implementations (nil result for absent rows, newest-first
// review ordering, soft-delete visibility for movies and users).

func NewMemoryRepository() *Repository {
	return &Repository{
		User:   NewMemoryUserRepository(),
		Movie:  NewMemoryMovieRepository(),
		Review: NewMemoryReviewRepository(),
	}
}

// ==================== MOVIES ====================

type memoryMovieRepository struct {
	mu     sync.RWMutex
	movies map[uuid.UUID]*entity.Movie
}

func NewMemoryMovieRepository() MovieRepository {
	return &memoryMovieRepository{movies: make(map[uuid.UUID]*entity.Movie)}
}

func (r *memoryMovieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *movie
	r.movies[movie.ID] = &clone
	return nil
}

func (r *memoryMovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movie, ok := r.movies[id]
	if !ok || movie.DeletedAt != nil {
		return nil, nil
	}
	clone := *movie
	return &clone, nil
}

func (r *memoryMovieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var movies []*entity.Movie
	for _, movie := range r.movies {
		if movie.DeletedAt != nil {
			continue
		}
		clone := *movie
		movies = append(movies, &clone)
	}
	sortMoviesByCreated(movies)
	return movies, nil
}

func (r *memoryMovieRepository) SearchByTitle(ctx context.Context, keyword string) ([]*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(keyword)
	var movies []*entity.Movie
	for _, movie := range r.movies {
		if movie.DeletedAt != nil {
			continue
		}
		if strings.Contains(strings.ToLower(movie.Title), needle) {
			clone := *movie
			movies = append(movies, &clone)
		}
	}
	sortMoviesByCreated(movies)
	return movies, nil
}

func (r *memoryMovieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.movies[movie.ID]
	if !ok || existing.DeletedAt != nil {
		return errMovieNotFound(movie.ID)
	}
	clone := *movie
	r.movies[movie.ID] = &clone
	return nil
}

func (r *memoryMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie, ok := r.movies[id]
	if !ok || movie.DeletedAt != nil {
		return errMovieNotFound(id)
	}
	now := time.Now()
	movie.DeletedAt = &now
	return nil
}

func (r *memoryMovieRepository) UpdateRating(ctx context.Context, movieID uuid.UUID, newRating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie, ok := r.movies[movieID]
	if !ok || movie.DeletedAt != nil {
		return errMovieNotFound(movieID)
	}
	movie.AverageRating = newRating
	movie.UpdatedAt = time.Now()
	return nil
}

func sortMoviesByCreated(movies []*entity.Movie) {
	sort.Slice(movies, func(i, j int) bool {
		if movies[i].CreatedAt.Equal(movies[j].CreatedAt) {
			return movies[i].ID.String() < movies[j].ID.String()
		}
		return movies[i].CreatedAt.Before(movies[j].CreatedAt)
	})
}

// ==================== REVIEWS ====================

type memoryReviewRepository struct {
	mu      sync.RWMutex
	reviews map[uuid.UUID]*entity.Review
}

func NewMemoryReviewRepository() ReviewRepository {
	return &memoryReviewRepository{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (r *memoryReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *memoryReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, nil
	}
	clone := *review
	return &clone, nil
}

func (r *memoryReviewRepository) FindAll(ctx context.Context) ([]*entity.Review, error) {
	return r.filter(func(*entity.Review) bool { return true })
}

func (r *memoryReviewRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Review, error) {
	return r.filter(func(review *entity.Review) bool { return review.MovieID == movieID })
}

func (r *memoryReviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return r.filter(func(review *entity.Review) bool { return review.UserID == userID })
}

func (r *memoryReviewRepository) FindByMovieAndUser(ctx context.Context, movieID, userID uuid.UUID) ([]*entity.Review, error) {
	return r.filter(func(review *entity.Review) bool {
		return review.MovieID == movieID && review.UserID == userID
	})
}

func (r *memoryReviewRepository) filter(keep func(*entity.Review) bool) ([]*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []*entity.Review
	for _, review := range r.reviews {
		if keep(review) {
			clone := *review
			reviews = append(reviews, &clone)
		}
	}
	// Newest first, matching the SQL ordering
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].ID.String() < reviews[j].ID.String()
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (r *memoryReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[review.ID]; !ok {
		return errReviewNotFound(review.ID)
	}
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *memoryReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return errReviewNotFound(id)
	}
	delete(r.reviews, id)
	return nil
}

func (r *memoryReviewRepository) DeleteByMovieID(ctx context.Context, movieID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, review := range r.reviews {
		if review.MovieID == movieID {
			delete(r.reviews, id)
		}
	}
	return nil
}

// ==================== USERS ====================

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.DeletedAt == nil && user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*entity.User
	for _, user := range r.users {
		if user.DeletedAt != nil {
			continue
		}
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID.String() < users[j].ID.String()
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *memoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok || existing.DeletedAt != nil {
		return errUserNotFound(user.ID)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	user.DeletedAt = &now
	return true, nil
}
