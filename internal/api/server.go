package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alligatorO15/fin-reports/internal/api/handlers"
	"github.com/alligatorO15/fin-reports/internal/api/middleware"
	"github.com/alligatorO15/fin-reports/internal/config"
	"github.com/alligatorO15/fin-reports/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	router   *gin.Engine
	config   *config.Config
	services *service.Services
	log      *logrus.Logger
	http     *http.Server
}

func NewServer(cfg *config.Config, services *service.Services, log *logrus.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handlers.RegisterValidation()

	server := &Server{
		router:   router,
		config:   cfg,
		services: services,
		log:      log,
	}

	server.setupRoutes()

	return server
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run блокируется до остановки сервера; после Shutdown возвращает nil
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	//middleware
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogger(s.log))

	// health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")
	api.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst, s.log))
	api.Use(middleware.Auth(s.services.Auth))

	// подготавливаем хэндлеры
	reportHandler := handlers.NewReportHandler(s.services.Reports, s.log)
	rangeHandler := handlers.NewRangeHandler(s.services.Import, s.services.Refresher, s.log)

	reports := api.Group("/reports")
	{
		reports.GET("/profit-loss", reportHandler.GetProfitLoss)
		reports.GET("/profit-loss/annual", reportHandler.GetAnnualProfitLoss)
		reports.GET("/cash-flow", reportHandler.GetCashFlow)
		reports.GET("/cash-flow/details", reportHandler.GetCashFlowDetails)
		reports.GET("/payment-schedule", reportHandler.GetPaymentSchedule)
		reports.GET("/prediction", reportHandler.GetPrediction)
	}

	api.POST("/cache/refresh", rangeHandler.RefreshCache)

	// импорт только когда строки хранятся в postgres
	if s.services.Import != nil {
		ranges := api.Group("/ranges")
		{
			ranges.PUT("/:range", rangeHandler.Import)
			ranges.GET("/:range/last-import", rangeHandler.GetLastImport)
		}
	}
}
