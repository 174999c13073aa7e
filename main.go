package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/0End-Of-Light0/test-work-public/config"
	"github.com/0End-Of-Light0/test-work-public/database"
	"github.com/0End-Of-Light0/test-work-public/enrichment"
	"github.com/0End-Of-Light0/test-work-public/handlers"
	"github.com/0End-Of-Light0/test-work-public/logger"
	"github.com/0End-Of-Light0/test-work-public/repository"
	"github.com/0End-Of-Light0/test-work-public/services"
	"github.com/0End-Of-Light0/test-work-public/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg.LogLevel)

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := database.AutoMigrateModels(db); err != nil {
		logg.Fatal().Err(err).Msg("failed to run migrations")
	}

	personRepo := repository.NewPersonRepository(db)
	gateway := enrichment.NewGateway(cfg)

	seeder := &database.Seeder{
		Repo:      personRepo,
		Gateway:   gateway,
		Names:     cfg.SeedNames,
		MailPools: cfg.SeedMailPools,
		Logger:    logg,
	}
	if err := seeder.Run(context.Background()); err != nil {
		logg.Fatal().Err(err).Msg("failed to seed database")
	}

	personService := services.NewPersonService(personRepo, gateway, cfg.ListLimit, logg)
	personHandler := &handlers.PersonHandler{Service: personService, Logger: logg}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RealIP)
	r.Use(handlers.RequestLogger(logg))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Get("/people", personHandler.ListPeople)
	r.Route("/person", func(r chi.Router) {
		r.Post("/", personHandler.CreatePerson)
		r.Get("/{name}", personHandler.GetPerson)
		r.Patch("/{id}", personHandler.UpdatePerson)
		r.Delete("/{id}", personHandler.DeletePerson)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.PrintBanner(cfg.Port)
	logg.Info().Str("port", cfg.Port).Str("database", cfg.DatabasePath).Msg("starting server")
	if err := server.ListenAndServe(); err != nil {
		logg.Fatal().Err(err).Msg("server stopped")
	}
}
