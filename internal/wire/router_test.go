package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flickcritic/internal/data/repository"
	"flickcritic/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	return Wiring(repository.NewMemoryRepository(), &utils.Config{}, zap.NewNop())
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func doJSON(t *testing.T, app *App, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data %q: %v", string(env.Data), err)
	}
}

type movieJSON struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	AverageRating float64 `json:"average_rating"`
	Reviews       []struct {
		ID     string `json:"id"`
		Rating *int   `json:"rating"`
	} `json:"reviews"`
}

type reviewJSON struct {
	ID           string `json:"id"`
	MovieID      string `json:"movie_id"`
	UserID       string `json:"user_id"`
	ReviewerName string `json:"reviewer_name"`
	Rating       *int   `json:"rating"`
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func createMovie(t *testing.T, app *App, title string) movieJSON {
	t.Helper()

	rec, env := doJSON(t, app, http.MethodPost, "/movies", map[string]any{
		"title":       title,
		"image_url":   "https://img.example/" + title + ".jpg",
		"description": "test",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create movie: status %d, body %s", rec.Code, rec.Body.String())
	}
	var movie movieJSON
	decodeData(t, env, &movie)
	return movie
}

func createUser(t *testing.T, app *App, name, email string) userJSON {
	t.Helper()

	rec, env := doJSON(t, app, http.MethodPost, "/users", map[string]any{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     "user",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: status %d, body %s", rec.Code, rec.Body.String())
	}
	var user userJSON
	decodeData(t, env, &user)
	return user
}

func createReview(t *testing.T, app *App, movieID, userID string, rating int) reviewJSON {
	t.Helper()

	rec, env := doJSON(t, app, http.MethodPost, "/reviews", map[string]any{
		"movie_id": movieID,
		"user_id":  userID,
		"rating":   rating,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create review: status %d, body %s", rec.Code, rec.Body.String())
	}
	var review reviewJSON
	decodeData(t, env, &review)
	return review
}

func getMovie(t *testing.T, app *App, id string) movieJSON {
	t.Helper()

	rec, env := doJSON(t, app, http.MethodGet, "/movies/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get movie: status %d, body %s", rec.Code, rec.Body.String())
	}
	var movie movieJSON
	decodeData(t, env, &movie)
	return movie
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec, env := doJSON(t, app, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !env.Status {
		t.Error("health reported failure")
	}
}

func TestMovieCRUDOverHTTP(t *testing.T) {
	app := newTestApp(t)

	movie := createMovie(t, app, "Arrival")

	got := getMovie(t, app, movie.ID)
	if got.Title != "Arrival" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Reviews == nil {
		t.Error("detail view should carry an empty reviews array")
	}

	rec, env := doJSON(t, app, http.MethodPut, "/movies/"+movie.ID, map[string]any{
		"title":       "Arrival (Director's Cut)",
		"image_url":   "https://img.example/arrival.jpg",
		"description": "recut",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update movie: status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated movieJSON
	decodeData(t, env, &updated)
	if updated.ID != movie.ID {
		t.Errorf("update changed the id: %s -> %s", movie.ID, updated.ID)
	}

	rec, _ = doJSON(t, app, http.MethodDelete, "/movies/"+movie.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete movie: status %d", rec.Code)
	}

	rec, _ = doJSON(t, app, http.MethodGet, "/movies/"+movie.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted movie: status %d, want 404", rec.Code)
	}
}

func TestMovieNotFoundAndBadID(t *testing.T) {
	app := newTestApp(t)

	rec, _ := doJSON(t, app, http.MethodGet, "/movies/"+uuid.New().String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown movie: status %d, want 404", rec.Code)
	}

	rec, _ = doJSON(t, app, http.MethodGet, "/movies/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status %d, want 400", rec.Code)
	}

	rec, _ = doJSON(t, app, http.MethodDelete, "/movies/"+uuid.New().String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete unknown movie: status %d, want 404", rec.Code)
	}
}

func TestCreateMovieValidation(t *testing.T) {
	app := newTestApp(t)

	rec, env := doJSON(t, app, http.MethodPost, "/movies", map[string]any{
		"image_url": "https://img.example/x.jpg",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(env.Errors) == 0 {
		t.Error("expected field errors in the response")
	}
}

func TestReviewMutationsKeepMovieRatingCurrent(t *testing.T) {
	app := newTestApp(t)

	movie := createMovie(t, app, "Avatar")
	user := createUser(t, app, "Jake", "jake@example.com")

	first := createReview(t, app, movie.ID, user.ID, 5)
	if got := getMovie(t, app, movie.ID).AverageRating; got != 5.0 {
		t.Errorf("after one review: rating = %v, want 5", got)
	}
	if first.ReviewerName != "Jake" {
		t.Errorf("reviewer name = %q, want snapshot of user name", first.ReviewerName)
	}

	createReview(t, app, movie.ID, user.ID, 3)
	if got := getMovie(t, app, movie.ID).AverageRating; got != 4.0 {
		t.Errorf("after two reviews: rating = %v, want 4", got)
	}

	rec, _ := doJSON(t, app, http.MethodDelete, "/reviews/"+first.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete review: status %d", rec.Code)
	}
	if got := getMovie(t, app, movie.ID).AverageRating; got != 3.0 {
		t.Errorf("after delete: rating = %v, want 3", got)
	}
}

func TestReviewNotFound(t *testing.T) {
	app := newTestApp(t)

	rec, _ := doJSON(t, app, http.MethodGet, "/reviews/"+uuid.New().String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get unknown review: status %d, want 404", rec.Code)
	}

	// Update of a missing review is a 404, unlike delete
	rec, _ = doJSON(t, app, http.MethodPut, "/reviews/"+uuid.New().String(), map[string]any{
		"movie_id": uuid.New().String(),
		"user_id":  uuid.New().String(),
		"rating":   3,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("update unknown review: status %d, want 404", rec.Code)
	}
}

func TestDeleteMissingReviewAnswersNoContent(t *testing.T) {
	app := newTestApp(t)

	rec, _ := doJSON(t, app, http.MethodDelete, "/reviews/"+uuid.New().String(), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204 for missing review", rec.Code)
	}
}

func TestReviewListingRoutes(t *testing.T) {
	app := newTestApp(t)

	movie := createMovie(t, app, "Alien")
	other := createMovie(t, app, "Aliens")
	ripley := createUser(t, app, "Ripley", "ripley@example.com")
	ash := createUser(t, app, "Ash", "ash@example.com")

	createReview(t, app, movie.ID, ripley.ID, 5)
	createReview(t, app, movie.ID, ash.ID, 2)
	createReview(t, app, other.ID, ripley.ID, 4)

	assertCount := func(path string, want int) {
		t.Helper()
		rec, env := doJSON(t, app, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d, body %s", path, rec.Code, rec.Body.String())
		}
		var reviews []reviewJSON
		decodeData(t, env, &reviews)
		if len(reviews) != want {
			t.Errorf("GET %s: %d reviews, want %d", path, len(reviews), want)
		}
	}

	assertCount("/reviews", 3)
	assertCount("/reviews/movie/"+movie.ID, 2)
	assertCount("/reviews/user/"+ripley.ID, 2)
	assertCount("/reviews/movie/"+movie.ID+"/user/"+ripley.ID, 1)
	assertCount("/reviews/movie/"+movie.ID+"/user/"+uuid.New().String(), 0)
}

func TestDuplicateEmailConflicts(t *testing.T) {
	app := newTestApp(t)

	createUser(t, app, "First", "shared@example.com")

	rec, _ := doJSON(t, app, http.MethodPost, "/users", map[string]any{
		"name":     "Second",
		"email":    "shared@example.com",
		"password": "secret123",
		"role":     "user",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate create: status %d, want 409", rec.Code)
	}

	other := createUser(t, app, "Other", "other@example.com")

	// Taking another account's email collides
	rec, _ = doJSON(t, app, http.MethodPut, "/users/"+other.ID, map[string]any{
		"name":  "Other",
		"email": "shared@example.com",
		"role":  "user",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("update onto taken email: status %d, want 409", rec.Code)
	}

	// Keeping your own email does not
	rec, _ = doJSON(t, app, http.MethodPut, "/users/"+other.ID, map[string]any{
		"name":  "Renamed",
		"email": "other@example.com",
		"role":  "user",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("update keeping own email: status %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestLoginOverHTTP(t *testing.T) {
	app := newTestApp(t)

	createUser(t, app, "Dave", "dave@example.com")

	t.Run("success", func(t *testing.T) {
		rec, env := doJSON(t, app, http.MethodPost, "/users/login", map[string]any{
			"email":    "dave@example.com",
			"password": "secret123",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var user userJSON
		decodeData(t, env, &user)
		if user.Email != "dave@example.com" {
			t.Errorf("email = %q", user.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec, _ := doJSON(t, app, http.MethodPost, "/users/login", map[string]any{
			"email":    "dave@example.com",
			"password": "nope",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("missing field", func(t *testing.T) {
		rec, _ := doJSON(t, app, http.MethodPost, "/users/login", map[string]any{
			"email": "dave@example.com",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestUserDeleteOverHTTP(t *testing.T) {
	app := newTestApp(t)

	user := createUser(t, app, "Gone", "gone@example.com")

	rec, _ := doJSON(t, app, http.MethodDelete, "/users/"+user.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete user: status %d", rec.Code)
	}

	rec, _ = doJSON(t, app, http.MethodDelete, "/users/"+user.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete: status %d, want 404", rec.Code)
	}
}

func TestMovieSearchOverHTTP(t *testing.T) {
	app := newTestApp(t)

	createMovie(t, app, "The Matrix")
	createMovie(t, app, "Matrix Reloaded")
	createMovie(t, app, "Inception")

	rec, env := doJSON(t, app, http.MethodGet, "/movies?search=matrix", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var movies []movieJSON
	decodeData(t, env, &movies)
	if len(movies) != 2 {
		t.Errorf("got %d movies, want 2", len(movies))
	}
}
