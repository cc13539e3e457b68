package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/radiushq/radius/config"
	"github.com/radiushq/radius/internal/handlers"
	"github.com/radiushq/radius/internal/middleware"
	"github.com/radiushq/radius/internal/notify"
	"github.com/radiushq/radius/internal/registration"
	"github.com/radiushq/radius/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Start wires the whole service together and blocks until shutdown: database,
// store, notification dispatcher, registration workflow, HTTP router. All
// dependencies are constructed here and passed down; nothing is global.
func Start() error {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database handle: %v", err)
	}
	defer sqlDB.Close()
	log.Info().Msg("database connected")

	mailCfg, err := config.LoadMailConfig()
	if err != nil {
		return fmt.Errorf("failed to load mail config: %v", err)
	}
	mailer := notify.NewResendMailer(mailCfg.APIKey, mailCfg.FromEmail, mailCfg.AppURL, log)
	dispatcher := notify.NewDispatcher(mailer, mailCfg.QueueSize, log)
	defer dispatcher.Close()

	eventStore := store.NewEventStore(db)
	workflow := registration.NewWorkflow(eventStore, dispatcher, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Default())

	setupRoutes(r, eventStore, workflow, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErrChan:
		return fmt.Errorf("server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error shutting down server")
	}

	log.Info().Msg("shutdown complete")
	return nil
}

func setupRoutes(r *gin.Engine, eventStore *store.EventStore, workflow *registration.Workflow, log zerolog.Logger) {
	eventHandler := handlers.NewEventHandler(eventStore, log)
	registrationHandler := handlers.NewRegistrationHandler(workflow, log)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	events := r.Group("/events")
	{
		events.GET("/list", eventHandler.ListEvents)
		events.POST("/create", eventHandler.CreateEvent)
		events.POST("/register", registrationHandler.Register)
		events.GET("/:slug", eventHandler.GetEvent)
		events.GET("/:slug/registrations", eventHandler.ListEventRegistrations)
	}
}
