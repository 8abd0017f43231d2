package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"courtslot/internal/admin"
	"courtslot/internal/auth"
	"courtslot/internal/booking"
	"courtslot/internal/config"
	"courtslot/internal/court"
	"courtslot/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, cache redis.Cmdable) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	courtRepo := court.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	verifier := auth.NewGoogleVerifier(cfg.GoogleClientID)

	userService := user.NewService(userRepo, verifier, cfg.JWTSecret)
	courtService := court.NewService(courtRepo)
	bookingService := booking.NewService(bookingRepo, courtRepo)
	adminService := admin.NewService(bookingRepo, courtRepo, cache)

	userHandler := user.NewHandler(userService)
	courtHandler := court.NewHandler(courtService)
	bookingHandler := booking.NewHandler(bookingService)
	adminHandler := admin.NewHandler(adminService, bookingService)

	public := router.Group("/auth")
	{
		public.POST("/signup", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/google/callback", userHandler.GoogleCallback)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.Middleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/courts", courtHandler.ListCourts)
		protected.GET("/courts/:courtID/availability", bookingHandler.GetAvailability)
		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)
	}

	adminGroup := router.Group("/admin")
	adminGroup.Use(authMiddleware, auth.RequireRole(user.RoleAdmin))
	{
		adminGroup.POST("/courts", courtHandler.CreateCourt)
		adminGroup.PUT("/courts/:courtID", courtHandler.UpdateCourt)
		adminGroup.POST("/courts/:courtID/status", courtHandler.SetStatus)
		adminGroup.GET("/bookings", bookingHandler.ListAllBookings)
		adminGroup.GET("/bookings/export", adminHandler.ExportBookings)
		adminGroup.GET("/stats", adminHandler.GetStats)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
