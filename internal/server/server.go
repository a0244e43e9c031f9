package server

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"memberpay/internal/auth"
	"memberpay/internal/banner"
	"memberpay/internal/catalog"
	"memberpay/internal/config"
	"memberpay/internal/email"
	"memberpay/internal/membership"
	"memberpay/internal/transaction"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	membershipSvc := membership.NewService(membership.NewRepository(db), cfg.JWTSecret)
	membershipHandler := membership.NewHandler(membershipSvc, cfg.UploadDir, cfg.BaseURL)

	catalogRepo := catalog.NewRepository(db)
	catalogHandler := catalog.NewHandler(catalogRepo)
	bannerHandler := banner.NewHandler(banner.NewRepository(db))

	transactionSvc := transaction.NewService(transaction.NewRepository(db), catalogRepo)
	transactionHandler := transaction.NewHandler(transactionSvc, emailService)

	public := router.Group("/")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/registration", membershipHandler.Register)
		public.POST("/login", membershipHandler.Login)
	}
	router.Static("/images", cfg.UploadDir)

	protected := router.Group("/")
	protected.Use(auth.Middleware(cfg.JWTSecret))
	{
		protected.GET("/registration", membershipHandler.List)
		protected.GET("/profile", membershipHandler.GetProfile)
		protected.PUT("/profile/update", membershipHandler.UpdateProfile)
		protected.PUT("/profile/image", membershipHandler.UploadProfileImage)

		protected.GET("/services", catalogHandler.List)
		protected.GET("/banner", bannerHandler.List)

		protected.GET("/balance", transactionHandler.Balance)
		protected.POST("/topup", transactionHandler.TopUp)
		protected.POST("/transaction", transactionHandler.Purchase)
		protected.GET("/transaction/history", transactionHandler.History)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for handler tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// useJSONFieldNames makes validator report json tag names in field errors so
// envelope messages match the request body, not Go struct fields.
func useJSONFieldNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}
