package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/config"
	"github.com/example/giftola/internal/handlers"
	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	settingsService := services.NewSettingsService(db)
	mailService := services.NewMailService(settingsService, "")
	gptService := services.NewGPTService(settingsService, "")
	rainforestService := services.NewRainforestService(settingsService, "")
	otpService := services.NewOTPService(db, mailService, cfg.OTPExpires)
	recommendationService := services.NewRecommendationService(db, gptService, rainforestService, settingsService)

	authHandler := handlers.NewAuthHandler(db, cfg, otpService)
	adminHandler := handlers.NewAdminHandler(db, cfg, settingsService)
	contactsHandler := handlers.NewContactsHandler(db)
	eventsHandler := handlers.NewEventsHandler(db)
	groupsHandler := handlers.NewGroupsHandler(db, mailService)
	groupListsHandler := handlers.NewGroupListsHandler(db)
	groupProductsHandler := handlers.NewGroupProductsHandler(db)
	categoriesHandler := handlers.NewCategoriesHandler(db)
	questionsHandler := handlers.NewQuestionsHandler(db)
	savedGiftsHandler := handlers.NewSavedGiftsHandler(db)
	notificationsHandler := handlers.NewNotificationsHandler(db)
	productsHandler := handlers.NewProductsHandler(db, recommendationService)
	generalHandler := handlers.NewGeneralHandler(db, mailService)
	interestsHandler := handlers.NewInterestsHandler(db)
	savedGiftIdeasHandler := handlers.NewSavedGiftIdeasHandler(db)
	booksHandler := handlers.NewBooksHandler(db)

	api := app.Group("/api/v1")

	// User auth
	auth := api.Group("/users/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify", authHandler.VerifyOtp)
	auth.Post("/resend", authHandler.ResendOtp)
	auth.Post("/forgot", authHandler.ForgotPassword)
	auth.Post("/reset", authHandler.ResetPassword)
	auth.Post("/edit", middleware.AuthMiddleware(cfg), authHandler.EditProfile)

	// Invite acceptance is reachable from the mail link, so it sits outside
	// the protected group.
	api.Get("/groups/accept-invite", groupsHandler.AcceptInvite)

	protected := api.Group("", middleware.AuthMiddleware(cfg))

	contacts := protected.Group("/contacts")
	contacts.Post("/", contactsHandler.Create)
	contacts.Get("/", contactsHandler.List)
	contacts.Get("/:id", contactsHandler.Get)
	contacts.Patch("/:id", contactsHandler.Update)
	contacts.Delete("/:id", contactsHandler.Delete)

	events := protected.Group("/events")
	events.Post("/", eventsHandler.Create)
	events.Get("/", eventsHandler.List)
	events.Get("/:id", eventsHandler.Get)
	events.Patch("/:id", eventsHandler.Update)
	events.Delete("/:id", eventsHandler.Delete)

	groups := protected.Group("/groups")
	groups.Post("/", groupsHandler.Create)
	groups.Get("/", groupsHandler.List)
	groups.Get("/:id", groupsHandler.Get)
	groups.Patch("/:id", groupsHandler.Update)
	groups.Delete("/:id", groupsHandler.Delete)
	groups.Post("/:id/invite", groupsHandler.Invite)
	groups.Get("/:id/members", groupsHandler.Members)

	groups.Post("/:id/lists", groupListsHandler.Create)
	groups.Get("/:id/lists", groupListsHandler.List)
	groups.Get("/:id/lists/:listId", groupListsHandler.Get)
	groups.Patch("/:id/lists/:listId", groupListsHandler.Update)
	groups.Delete("/:id/lists/:listId", groupListsHandler.Delete)

	groups.Post("/:id/lists/:listId/products", groupProductsHandler.Create)
	groups.Get("/:id/lists/:listId/products", groupProductsHandler.List)
	groups.Get("/:id/lists/:listId/products/:productId", groupProductsHandler.Get)
	groups.Patch("/:id/lists/:listId/products/:productId", groupProductsHandler.Update)
	groups.Delete("/:id/lists/:listId/products/:productId", groupProductsHandler.Delete)

	categories := protected.Group("/categories")
	categories.Post("/", categoriesHandler.Create)
	categories.Get("/", categoriesHandler.List)
	categories.Get("/:id", categoriesHandler.Get)
	categories.Patch("/:id", categoriesHandler.Update)
	categories.Delete("/:id", categoriesHandler.Delete)

	questions := protected.Group("/questions")
	questions.Post("/", questionsHandler.Create)
	questions.Get("/", questionsHandler.List)
	questions.Get("/:id", questionsHandler.Get)
	questions.Patch("/:id", questionsHandler.Update)
	questions.Delete("/:id", questionsHandler.Delete)

	interests := protected.Group("/interests")
	interests.Get("/", interestsHandler.List)
	interests.Get("/:id", interestsHandler.Get)

	savedProducts := protected.Group("/saved-products")
	savedProducts.Post("/", savedGiftsHandler.Save)
	savedProducts.Get("/", savedGiftsHandler.List)

	savedGiftIdeas := protected.Group("/saved-gift-ideas")
	savedGiftIdeas.Post("/", savedGiftIdeasHandler.Save)
	savedGiftIdeas.Get("/", savedGiftIdeasHandler.List)
	savedGiftIdeas.Patch("/:id", savedGiftIdeasHandler.Update)
	savedGiftIdeas.Delete("/:id", savedGiftIdeasHandler.Delete)

	books := protected.Group("/books")
	books.Get("/categories", booksHandler.ListCategories)
	books.Post("/categories", booksHandler.CreateCategory)
	books.Get("/", booksHandler.List)
	books.Post("/", booksHandler.Create)

	notifications := protected.Group("/notifications")
	notifications.Post("/", notificationsHandler.Create)
	notifications.Get("/", notificationsHandler.List)
	notifications.Post("/read-all", notificationsHandler.ReadAll)

	protected.Get("/products", productsHandler.Get)
	protected.Post("/general/invite", generalHandler.AppInvite)

	// Admin
	admin := api.Group("/admin")
	admin.Post("/auth/register", adminHandler.Register)
	admin.Post("/auth/login", adminHandler.Login)

	adminProtected := admin.Group("", middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
	adminProtected.Get("/settings", adminHandler.GetSettings)
	adminProtected.Patch("/settings", adminHandler.UpdateSettings)
	adminProtected.Post("/settings/reset", adminHandler.ResetSettings)
}
