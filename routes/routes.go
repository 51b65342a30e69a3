package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"lodge-backend/controllers"
	"lodge-backend/middleware"
	"lodge-backend/services"
)

// Handlers bundles every controller the router mounts.
type Handlers struct {
	Rooms     *controllers.RoomController
	Bookings  *controllers.BookingController
	Guests    *controllers.GuestController
	Gallery   *controllers.GalleryController
	Users     *controllers.UserController
	Auth      *controllers.AuthController
	Analytics *controllers.AnalyticsController
	Currency  *controllers.CurrencyController
	Settings  *controllers.SettingsController
	Sessions  *services.SessionStore
}

// stayDate accepts the date formats the pricing layer parses.
func stayDate(fl validator.FieldLevel) bool {
	_, err := services.ParseStayDate(fl.Field().String())
	return err == nil
}

func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("stay_date", stayDate); err != nil {
			log.Printf("warning: failed to register stay_date validator: %v", err)
		}
	}
}

func SetupRouter(h Handlers, origins []string, uploadDir string) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Static("/uploads", uploadDir)

	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "username", "password", "X-Client-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Search-Suggestion"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/rooms", h.Rooms.List)
		api.GET("/rooms/:id", h.Rooms.Get)
		api.GET("/rooms/:id/quote", h.Rooms.Quote)
		api.POST("/bookings", h.Bookings.Create)
		api.GET("/payments/verify/:reference", h.Bookings.VerifyPayment)
		api.GET("/gallery", h.Gallery.List)
		api.GET("/currency", h.Currency.Current)
		api.PUT("/currency", h.Currency.SetPreference)
		api.GET("/currencies", h.Currency.List)
		api.GET("/settings/lodge", h.Settings.GetLodge)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login", h.Auth.Login)
		// the public gallery page reads this path without credentials
		admin.GET("/gallery", h.Gallery.List)
	}

	secured := admin.Group("", middleware.AdminAuth(h.Sessions))
	{
		secured.GET("/me", h.Auth.Me)

		perm := middleware.RequirePermission
		secured.GET("/rooms", perm(services.PermRoomsView), h.Rooms.AdminList)
		secured.POST("/rooms", perm(services.PermRoomsManage), h.Rooms.Create)
		secured.PUT("/rooms/:id", perm(services.PermRoomsManage), h.Rooms.Update)
		secured.DELETE("/rooms/:id", perm(services.PermRoomsManage), h.Rooms.Delete)

		secured.GET("/bookings", perm(services.PermBookingsView), h.Bookings.List)
		secured.PUT("/bookings/:id", perm(services.PermBookingsEdit), h.Bookings.UpdateStatus)

		secured.GET("/guests", perm(services.PermGuestsView), h.Guests.List)
		secured.POST("/guests", perm(services.PermGuestsManage), h.Guests.Create)
		secured.PUT("/guests/:id/checkout", perm(services.PermGuestsManage), h.Guests.Checkout)
		secured.GET("/guests/:id/receipt", perm(services.PermGuestsView), h.Guests.Receipt)
		secured.DELETE("/guests/:id", perm(services.PermGuestsManage), h.Guests.Remove)
		secured.DELETE("/guests/:id/permanent", perm(services.PermGuestsDelete), h.Guests.DeletePermanent)
		secured.GET("/removal-reasons", perm(services.PermRemovalsView), h.Guests.RemovalReasons)

		secured.POST("/gallery", perm(services.PermGalleryManage), h.Gallery.Create)
		secured.DELETE("/gallery/:id", perm(services.PermGalleryManage), h.Gallery.Delete)

		secured.GET("/analytics", perm(services.PermAnalyticsView), h.Analytics.Summary)

		secured.GET("/users", perm(services.PermUsersManage), h.Users.List)
		secured.POST("/users", perm(services.PermUsersManage), h.Users.Create)
		secured.PUT("/users/:id", perm(services.PermUsersManage), h.Users.Update)
		secured.DELETE("/users/:id", perm(services.PermUsersManage), h.Users.Delete)

		secured.PUT("/settings/lodge", perm(services.PermSettingsManage), h.Settings.UpdateLodge)
	}

	return r
}
