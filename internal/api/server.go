package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/supply-chain-api/docs"
	v1 "github.com/vietanh2810/supply-chain-api/internal/api/handler/v1"
	"github.com/vietanh2810/supply-chain-api/internal/api/middleware"
	"github.com/vietanh2810/supply-chain-api/internal/config"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/pkg/advisor"
	"github.com/vietanh2810/supply-chain-api/internal/repository"
	"github.com/vietanh2810/supply-chain-api/internal/repository/dao"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	sessions *middleware.SessionLoader
	chat     *v1.ChatHandler
}

type handlers struct {
	auth      *v1.AuthHandler
	user      *v1.UserHandler
	inventory *v1.InventoryHandler
	advisory  *v1.AdvisoryHandler
	chat      *v1.ChatHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, analyticsDB *sqlx.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	completer := advisor.NewClient(advisor.Config{
		BaseURL: conf.Advisor.BaseURL,
		APIKey:  conf.Advisor.APIKey,
		Model:   conf.Advisor.Model,
		Timeout: conf.Advisor.Timeout,
	})

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	inventoryRepo := repository.NewInventoryRepository(dao.NewInventoryDAO(db), dao.NewAnalyticsDAO(analyticsDB))

	authSvc := service.NewAuthService(userRepo, sessionRepo, conf.API.SessionTTL)
	userSvc := service.NewUserService(userRepo, sessionRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo)
	analysisSvc := service.NewAnalysisService(inventoryRepo, completer)
	advisorySvc := service.NewAdvisoryService(completer)

	s.sessions = middleware.NewSessionLoader(conf.API.JWTSigningKey, authSvc)
	s.chat = v1.NewChatHandler(advisorySvc, authSvc, conf.API.AllowedCORSDomains)

	s.MountMiddlewares()
	s.MountHandlers(handlers{
		auth:      v1.NewAuthHandler(conf.API, authSvc),
		user:      v1.NewUserHandler(userSvc, inventorySvc),
		inventory: v1.NewInventoryHandler(inventorySvc, analysisSvc),
		advisory:  v1.NewAdvisoryHandler(advisorySvc),
		chat:      s.chat,
	})

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(s.sessions.Load())
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	api := s.Router.Group(basePath)
	{
		api.POST("/auth/login", h.auth.HandleLogin)
		api.POST("/auth/logout", h.auth.HandleLogout)

		api.GET("/profile", h.user.HandleProfile)
		api.GET("/dashboard/admin", h.user.HandleDashboard(domain.RoleAdmin))
		api.GET("/dashboard/manager", h.user.HandleDashboard(domain.RoleManager))
		api.GET("/dashboard/customer", h.user.HandleDashboard(domain.RoleCustomer))
		api.GET("/admin/sessions", h.user.HandleAdminSessions)

		api.POST("/stocks", h.inventory.HandleAddStock)
		api.GET("/stocks", h.inventory.HandleListStocks)
		api.POST("/sales", h.inventory.HandleRecordSale)
		api.GET("/inventory/analysis", h.inventory.HandleInventoryAnalysis)
		api.GET("/inventory/data", h.inventory.HandleInventoryData)

		api.POST("/transport/route", h.advisory.HandleTransportRoute)
		api.POST("/chatbot", h.advisory.HandleChat)
		api.GET("/chatbot/ws", h.chat.HandleWebSocket)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Supply Chain API"
	docs.SwaggerInfo.Description = "Inventory, sales and AI-assisted supply chain advice."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("srv.ListenAndServe -> %w", err)
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	s.chat.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown -> %w", err)
	}

	return nil
}
