package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/todonaut/todonaut/internal/httpapi/handlers"
	"github.com/todonaut/todonaut/internal/httpapi/middleware"
	"github.com/todonaut/todonaut/pkg/clients"
	"github.com/todonaut/todonaut/pkg/config"
	"github.com/todonaut/todonaut/pkg/store"
)

type APIServer struct {
	config   *config.AppConfig
	router   *gin.Engine
	server   *http.Server
	handlers *handlers.Handlers
	store    *store.Store
}

func NewAPIServer(cfg *config.AppConfig, dataStore *store.Store, upstream clients.Service) *APIServer {
	if cfg.App.Environment == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(&cfg.APIServer))

	s := &APIServer{
		config:   cfg,
		router:   router,
		handlers: handlers.NewHandlers(cfg, dataStore, upstream),
		store:    dataStore,
	}

	s.setupRoutes()
	return s
}

func (s *APIServer) setupRoutes() {
	s.router.GET("/status", s.handlers.Status)

	auth := s.router.Group("/auth")
	auth.POST("/login", s.handlers.Login)
	auth.POST("/logout", s.handlers.Logout)
	auth.GET("/me", s.handlers.Me)

	todos := s.router.Group("/todos")
	todos.Use(middleware.SessionAuth(s.store.Todos))
	todos.GET("", s.handlers.ListTodos)
	todos.POST("", s.handlers.CreateTodo)
	todos.GET("/:id", s.handlers.GetTodo)
	todos.PUT("/:id", s.handlers.UpdateTodo)
	todos.DELETE("/:id", s.handlers.DeleteTodo)
}

// Router exposes the gin engine, mainly for tests.
func (s *APIServer) Router() *gin.Engine {
	return s.router
}

func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.APIServer.Host, s.config.APIServer.Port),
		Handler: s.router,
	}

	go s.StopServer()
	logrus.WithField("address", s.server.Addr).Info("starting http API server")
	if err := s.server.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			logrus.Info("http API server stopped")
			return nil
		}
		return fmt.Errorf("failed to start http API server : %w", err)
	}
	return nil
}

func (s *APIServer) StopServer() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("turning down http API server")

	if err := s.server.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Error("Error during HTTP API server shutdown")
	}
}
