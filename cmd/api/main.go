package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"coworking/internal/config"
	"coworking/internal/database"
	"coworking/internal/middleware"
	"coworking/internal/modules/admin"
	"coworking/internal/modules/auth"
	"coworking/internal/modules/booking"
	"coworking/internal/modules/catalog"
	"coworking/internal/modules/discount"
	"coworking/internal/modules/events"
	jwtsvc "coworking/internal/pkg/jwt"
	"coworking/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewManagerProfileRepository(db)
	centerRepo := repository.NewCenterRepository(db)
	floorRepo := repository.NewFloorRepository(db)
	workstationRepo := repository.NewWorkstationRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := events.NewHub()
	notifier := events.NewNotifier(hub)
	eventsHandler := events.NewHandler(hub, j)

	authService := auth.NewService(userRepo, profileRepo, j, cfg.RefreshTokenPepper, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(centerRepo, floorRepo, workstationRepo, inventoryRepo, userRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	discountService := discount.NewService(discountRepo)
	discountHandler := discount.NewHandler(discountService)

	engine := booking.NewEngine(workstationRepo, bookingRepo, discountRepo, cfg.Booking)
	bookingService := booking.NewService(engine, bookingRepo, workstationRepo, centerRepo, notifier)
	bookingHandler := booking.NewHandler(bookingService)

	adminService := admin.NewService(userRepo, profileRepo, bookingRepo)
	adminHandler := admin.NewHandler(adminService)

	ownership := middleware.NewOwnershipChecker(centerRepo, workstationRepo)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	eventsHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		discountHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)

			manager := protected.Group("/")
			manager.Use(middleware.ManagerOrAdmin())
			{
				catalogHandler.RegisterManagerRoutes(manager)
				manager.GET("/centers/:id/bookings",
					ownership.CheckCenterOwnership(), bookingHandler.CenterBookings)
			}

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
				discountHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
