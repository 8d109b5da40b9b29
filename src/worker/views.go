package worker

import (
	"context"
	"net/http"
	"time"

	"carteira/src/clients/fundamentus"
	"carteira/src/config"
	"carteira/src/database"
	"carteira/src/repositories"
	"carteira/src/scheduler"
	"carteira/src/services"
	"carteira/src/utils"
	"carteira/src/worker/controllers"
	handlers "carteira/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Task    *scheduler.ScheduledTask
	DB      *pgxpool.Pool
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	stockRepo := repositories.NewStockRepository(db)
	client := fundamentus.NewClient(cfg)
	priceService := services.NewPriceService(stockRepo, client)
	controller := controllers.NewPricesController(priceService)

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(controller),
		DB:      db,
	}
	server.InitRoutes()

	if cronSpec := cfg.ExternalClients.Fundamentus.CronSpec; cronSpec != "" {
		ctx := utils.WithLogger(context.Background(), logger)
		task, err := scheduler.NewScheduledTask(cronSpec, logger, func() error {
			feedback, err := priceService.RefreshAll(ctx)
			if err != nil {
				return err
			}
			logger.WithField("feedback", feedback).Info("scheduled price refresh done")
			return nil
		})
		if err != nil {
			return nil, err
		}
		server.Task = task
	}

	return server, nil
}

// Close stops the cron schedule and releases the database pool.
func (s *Server) Close() error {
	if s.Task != nil {
		s.Task.Cancel()
	}
	s.DB.Close()
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api/prices", func(r chi.Router) {
		r.Post("/refresh", s.Handler.RefreshAllPrices)
		r.Post("/refresh/{ticker}", s.Handler.RefreshTickerPrice)
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
