package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/freight-booking-backend/internal/api"
	"github.com/nekogravitycat/freight-booking-backend/internal/auth"
	"github.com/nekogravitycat/freight-booking-backend/internal/booking"
	"github.com/nekogravitycat/freight-booking-backend/internal/confirmation"
	"github.com/nekogravitycat/freight-booking-backend/internal/db"
	"github.com/nekogravitycat/freight-booking-backend/internal/event"
	"github.com/nekogravitycat/freight-booking-backend/internal/location"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
	"github.com/nekogravitycat/freight-booking-backend/internal/vessel"
	"github.com/nekogravitycat/freight-booking-backend/internal/voyage"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	Paging       pagination.Options
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	TxManager      db.TxManager
	EventRepo      event.Repository
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	txManager := db.NewTxManager(cfg.DBPool)

	// Location Module
	locRepo := location.NewPgxRepository(cfg.DBPool)
	locService := location.NewService(locRepo)

	// Vessel Module
	vesselRepo := vessel.NewPgxRepository(cfg.DBPool)
	vesselService := vessel.NewService(vesselRepo)

	// Voyage Module
	voyageRepo := voyage.NewPgxRepository(cfg.DBPool)
	voyageService := voyage.NewService(voyageRepo)

	// Event Module (outbox)
	eventRepo := event.NewPgxRepository(cfg.DBPool)
	eventSink := event.NewSink(eventRepo)

	// Confirmation Module
	confRepo := confirmation.NewPgxRepository(cfg.DBPool)
	confService := confirmation.NewService(confRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	assembler := booking.NewAssembler(booking.NewPgxGateways(cfg.DBPool), locService)
	bookingService := booking.NewService(booking.Deps{
		Repo:          bookingRepo,
		Assembler:     assembler,
		Tx:            txManager,
		Vessels:       vesselService,
		Voyages:       voyageService,
		Locations:     locService,
		Events:        eventSink,
		Confirmations: confService,
		Logger:        log.Named("booking"),
	})

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         log.Named("http"),
		Paging:         cfg.Paging,
		BookingService: bookingService,
		VesselService:  vesselService,
		LocService:     locService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		TxManager:      txManager,
		EventRepo:      eventRepo,
		BookingService: bookingService,
	}
}
