package httpx

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dj-idk/gym-backend/internal/http/handlers"
	"github.com/dj-idk/gym-backend/internal/http/middleware"
)

// Handlers bundles every endpoint group the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandlers
	User      *handlers.UserHandlers
	Profile   *handlers.ProfileHandlers
	Coach     *handlers.CoachHandlers
	Catalog   *handlers.CatalogHandlers
	Purchase  *handlers.PurchaseHandlers
	Ticket    *handlers.TicketHandlers
	Message   *handlers.MessageHandlers
	Analytics *handlers.AnalyticsHandlers
}

func BuildRouter(h Handlers, authMW gin.HandlerFunc, cb *middleware.CasbinMW, logger *logrus.Logger, apiPrefix string, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group(apiPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/verify-phone", h.Auth.VerifyPhone)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/password-reset/request", h.Auth.RequestPasswordReset)
	auth.POST("/password-reset/confirm", h.Auth.ConfirmPasswordReset)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Email confirmation arrives from a mailed link, no token required
	api.GET("/users/me/email/confirm", h.User.ConfirmEmailChange)

	// Catalog browsing is public
	api.GET("/catalog/categories", h.Catalog.ListCategories)
	api.GET("/catalog/services", h.Catalog.ListServices)
	api.GET("/catalog/services/:id", h.Catalog.GetService)
	api.GET("/coaches", h.Coach.List)
	api.GET("/coaches/:id", h.Coach.Get)

	v := api.Group("")
	v.Use(authMW)

	v.GET("/auth/me", h.Auth.Me)

	me := v.Group("/users/me")
	me.PUT("/username", h.User.SetUsername)
	me.POST("/email", h.User.RequestEmailChange)
	me.PUT("/password", h.User.ChangePassword)

	profile := v.Group("/profile")
	profile.GET("", h.Profile.Get)
	profile.PATCH("", h.Profile.Update)
	profile.POST("/photo", h.Profile.UploadPhoto)
	profile.DELETE("/photo/:id", h.Profile.DeletePhoto)

	v.GET("/me/coaches", h.Coach.MyCoaches)
	v.GET("/me/programs", h.Coach.AssignedPrograms)
	v.POST("/relations/:id/extend", h.Coach.Extend)
	v.POST("/relations/:id/terminate", h.Coach.Terminate)

	purchases := v.Group("/purchases")
	purchases.POST("", h.Purchase.Create)
	purchases.GET("", h.Purchase.ListMine)
	purchases.GET("/:id", h.Purchase.Get)
	purchases.POST("/:id/pay", h.Purchase.Pay)
	purchases.POST("/:id/cancel", h.Purchase.Cancel)

	tickets := v.Group("/tickets")
	tickets.POST("", h.Ticket.Open)
	tickets.GET("", h.Ticket.ListMine)
	tickets.GET("/:id", h.Ticket.Get)
	tickets.PATCH("/:id", h.Ticket.Update)
	tickets.POST("/:id/responses", h.Ticket.Respond)
	tickets.POST("/:id/close", h.Ticket.Close)
	tickets.POST("/:id/reopen", h.Ticket.Reopen)

	messages := v.Group("/messages")
	messages.POST("", h.Message.Send)
	messages.GET("/inbox", h.Message.Inbox)
	messages.GET("/sent", h.Message.Sent)
	messages.GET("/unread-count", h.Message.UnreadCount)
	messages.GET("/:id/thread", h.Message.Thread)
	messages.POST("/:id/read", h.Message.MarkRead)

	// Coach-facing routes sit behind the role policy
	coach := api.Group("/coach")
	coach.Use(authMW, cb.Enforce())
	coach.PUT("/profile", h.Coach.UpdateProfile)
	coach.POST("/relations", h.Coach.Engage)
	coach.GET("/clients", h.Coach.Clients)
	coach.POST("/programs", h.Coach.CreateProgram)
	coach.GET("/programs", h.Coach.MyPrograms)
	coach.PUT("/programs/:id", h.Coach.UpdateProgram)
	coach.POST("/programs/:id/archive", h.Coach.ArchiveProgram)

	// Support staff routes
	support := api.Group("/support")
	support.Use(authMW, cb.Enforce())
	support.GET("/tickets", h.Ticket.ListAll)
	support.POST("/tickets/:id/assign", h.Ticket.Assign)
	support.POST("/tickets/:id/escalate", h.Ticket.Escalate)

	// Administration
	adm := api.Group("/admin")
	adm.Use(authMW, cb.Enforce())
	adm.GET("/users", h.User.List)
	adm.GET("/users/:id", h.User.Get)
	adm.POST("/users/:id/activate", h.User.Activate)
	adm.POST("/users/:id/deactivate", h.User.Deactivate)
	adm.POST("/users/:id/roles", h.User.AssignRole)
	adm.DELETE("/users/:id", h.User.Delete)
	adm.POST("/coaches", h.Coach.Promote)
	adm.POST("/catalog/categories", h.Catalog.CreateCategory)
	adm.PUT("/catalog/categories/:id", h.Catalog.UpdateCategory)
	adm.DELETE("/catalog/categories/:id", h.Catalog.DeleteCategory)
	adm.POST("/catalog/services", h.Catalog.CreateService)
	adm.PUT("/catalog/services/:id", h.Catalog.UpdateService)
	adm.DELETE("/catalog/services/:id", h.Catalog.DeleteService)
	adm.GET("/purchases", h.Purchase.ListAll)
	adm.POST("/purchases/:id/refund", h.Purchase.Refund)
	adm.GET("/analytics/dashboard", h.Analytics.Dashboard)
	adm.GET("/analytics/revenue", h.Analytics.Revenue)

	return r
}
