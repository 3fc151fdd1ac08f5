package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"renthub/internal/database"
	"renthub/internal/domain"
	"renthub/internal/middleware"
	"renthub/internal/modules/admin"
	"renthub/internal/modules/booking"
	"renthub/internal/modules/listing"
	"renthub/internal/modules/payment"
	"renthub/internal/modules/profile"
	"renthub/internal/modules/upload"
	"renthub/internal/notification"
	jwtsvc "renthub/internal/pkg/jwt"
	"renthub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&upload.Upload{}); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	uploadRepo := upload.NewRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	notifs := notification.NewLogSender()

	listingService := listing.NewService(listingRepo, userRepo)
	listingHandler := listing.NewHandler(listingService)

	bookingService := booking.NewService(reservationRepo, listingRepo, userRepo, notifs)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(paymentRepo, reservationRepo)
	paymentHandler := payment.NewHandler(paymentService)

	profileService := profile.NewService(userRepo)
	profileHandler := profile.NewHandler(profileService)

	uploadService := upload.NewService(uploadRepo, os.Getenv("UPLOADS_DIR"), "")
	uploadHandler := upload.NewHandler(uploadService)

	adminService := admin.NewService(listingRepo, notifs)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static(upload.StaticURLBase, uploadService.BaseDir())

	v1 := r.Group("/api/v1")
	{
		// public
		listingHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			listingHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			profileHandler.RegisterRoutes(protected)
			uploadHandler.RegisterRoutes(protected)
		}

		// admin
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.Auth(j), middleware.RequireRole(string(domain.RoleAdmin)))
		{
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
