package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/freight-booking-backend/internal/auth"
	"github.com/nekogravitycat/freight-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/freight-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/freight-booking-backend/internal/location"
	locHttp "github.com/nekogravitycat/freight-booking-backend/internal/location/http"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
	"github.com/nekogravitycat/freight-booking-backend/internal/vessel"
	vesselHttp "github.com/nekogravitycat/freight-booking-backend/internal/vessel/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Logger         *zap.Logger
	Paging         pagination.Options
	BookingService booking.Service
	VesselService  vessel.Service
	LocService     location.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()

	// Global Middleware:
	// - RequestID: Tags every request and response with X-Request-ID.
	// - RequestLogger: Logs request information through zap.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestID(), RequestLogger(log), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{
		"http://localhost:8081", // Swagger
	}
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		config.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", HeaderRequestID}
	config.ExposeHeaders = []string{"Current-Page", "Next-Page", "Last-Page", HeaderRequestID}
	r.Use(cors.New(config))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// writeMiddleware: Further checks that the token may change bookings.
	writeMiddleware := auth.RequireScope(auth.ScopeBookingWrite)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler()
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.Paging)
	vesselHandler := vesselHttp.NewHandler(cfg.VesselService, cfg.Paging)
	locHandler := locHttp.NewHandler(cfg.LocService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.GET("/auth/me", authMiddleware, authHandler.Me)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, writeMiddleware)
		vesselHttp.RegisterRoutes(v1, vesselHandler, authMiddleware)
		locHttp.RegisterRoutes(v1, locHandler, authMiddleware)
	}

	return r
}
