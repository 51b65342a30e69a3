package commands

import (
	"fmt"

	"lodge-backend/config"
	"lodge-backend/controllers"
	"lodge-backend/routes"
	"lodge-backend/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type app struct {
	Bookings *services.BookingService
	Receipts *services.ReceiptService
	Rooms    *services.RoomService
	Handlers routes.Handlers
}

func buildApp(cfg config.Config, db *gorm.DB, rdb *redis.Client) (*app, error) {
	cache := services.NewCache(rdb)

	images, err := services.NewImageStore(cfg.CloudinaryURL, cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	renderer, err := services.NewReceiptRenderer()
	if err != nil {
		return nil, fmt.Errorf("receipt templates: %w", err)
	}

	availability := services.NewAvailabilityService(db)
	lodge := services.NewLodgeService(db, cfg.LodgeSkin)
	rooms := services.NewRoomService(db, availability, images, cache)
	gateway := services.NewPaymentGateway(cfg.PaystackSecretKey, cfg.PaystackBaseURL)
	bookings := services.NewBookingService(db, gateway, rooms, lodge, cfg.FrontendURL+"/booking-success")
	guests := services.NewGuestService(db, rooms)
	receipts := services.NewReceiptService(db, lodge, renderer, services.NewChromePrinter(cfg.ChromePath))
	gallery := services.NewGalleryService(db, images)
	admins := services.NewAdminService(db)
	sessions := services.NewSessionStore(cache, admins, []byte(cfg.SessionSecret))
	analytics := services.NewAnalyticsService(db, availability)
	currency := services.NewCurrencyResolver(cache, services.NewIPAPIClient(cfg.GeoIPBaseURL))

	return &app{
		Bookings: bookings,
		Receipts: receipts,
		Rooms:    rooms,
		Handlers: routes.Handlers{
			Rooms:     controllers.NewRoomController(rooms, currency),
			Bookings:  controllers.NewBookingController(bookings),
			Guests:    controllers.NewGuestController(guests, receipts),
			Gallery:   controllers.NewGalleryController(gallery),
			Users:     controllers.NewUserController(admins, sessions),
			Auth:      controllers.NewAuthController(admins, sessions),
			Analytics: controllers.NewAnalyticsController(analytics),
			Currency:  controllers.NewCurrencyController(currency),
			Settings:  controllers.NewSettingsController(lodge),
			Sessions:  sessions,
		},
	}, nil
}
