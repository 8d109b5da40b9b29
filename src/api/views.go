package api

import (
	"net/http"
	"time"

	"carteira/src/api/controllers"
	handlers "carteira/src/api/handlers"
	"carteira/src/config"
	"carteira/src/database"
	"carteira/src/repositories"
	"carteira/src/services"
	redis_utils "carteira/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	TokenAuth *jwtauth.JWTAuth
	DB        *pgxpool.Pool
	Cache     *redis_utils.RedisHandler
}

func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	// The dashboard cache is optional; without redis every read hits
	// the database, which a single user won't notice.
	var cache *redis_utils.RedisHandler
	if cfg.Databases.Redis.Host != "" {
		cache, err = redis_utils.NewRedisHandler(cfg)
		if err != nil {
			return nil, err
		}
	}

	tokenAuth := jwtauth.New("HS256", []byte(cfg.Auth.Secret), nil)
	tokenTTL := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute

	stockRepo := repositories.NewStockRepository(db)
	movementRepo := repositories.NewMovementRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)
	userRepo := repositories.NewUserRepository(db)

	portfolio := services.NewPortfolioService(holdingRepo)

	cacheTTL := time.Duration(cfg.Databases.Redis.TTLSeconds) * time.Second
	handler := handlers.NewHandler(
		controllers.NewStocksController(stockRepo),
		controllers.NewMovementsController(db, movementRepo, holdingRepo, stockRepo, portfolio, cache),
		controllers.NewDashboardController(holdingRepo, movementRepo, cache, cacheTTL),
		controllers.NewUsersController(userRepo, tokenAuth, tokenTTL),
	)

	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   handler,
		TokenAuth: tokenAuth,
		DB:        db,
		Cache:     cache,
	}
	server.InitRoutes()
	return server, nil
}

// Close releases the database pool and the cache connection.
func (s *Server) Close() error {
	s.DB.Close()
	if s.Cache != nil {
		return s.Cache.Close()
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Post("/api/users", s.Handler.RegisterUser)
	s.Router.Post("/api/token", s.Handler.PostToken)

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.TokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Route("/api/stocks", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllStocks)
			r.Get("/{id}", s.Handler.GetStockByID)
			r.Post("/", s.Handler.CreateStock)
			r.Put("/{id}", s.Handler.UpdateStock)
		})

		r.Route("/api/movements", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllMovements)
			r.Get("/export", s.Handler.ExportMovements)
			r.Post("/", s.Handler.CreateMovement)
			r.Put("/{id}", s.Handler.UpdateMovement)
			r.Delete("/{id}", s.Handler.DeleteMovement)
		})

		r.Route("/api/dashboard", func(r chi.Router) {
			r.Get("/", s.Handler.GetDashboard)
			r.Get("/monthly-results", s.Handler.GetMonthlyResults)
			r.Get("/chart", s.Handler.GetMonthlyResultsChart)
			r.Get("/report", s.Handler.GetMonthlyResultsReport)
		})
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
