package wire

import (
	"net/http"

	"flickcritic/internal/adaptor"
	"flickcritic/internal/data/repository"
	"flickcritic/internal/usecase"
	"flickcritic/pkg/middleware"
	"flickcritic/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the fully wired application
type App struct {
	Router  *chi.Mux
	Handler *adaptor.Handler
	Service *usecase.Service
}

// Wiring builds the dependency graph: repositories -> services ->
// handlers -> router.
func Wiring(repo *repository.Repository, config *utils.Config, log *zap.Logger) *App {
	service := usecase.NewService(repo, config, log)
	handler := adaptor.NewHandler(service, log)
	router := setupRouter(handler, log)

	return &App{
		Router:  router,
		Handler: handler,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.ResponseSuccess(w, "ok", nil)
	})

	MovieRoutes(r, handler.Movie)
	ReviewRoutes(r, handler.Review)
	UserRoutes(r, handler.User)

	return r
}
