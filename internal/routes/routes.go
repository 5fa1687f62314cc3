package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leesummerdesigns/swissconnection/internal/config"
	"github.com/leesummerdesigns/swissconnection/internal/geocode"
	"github.com/leesummerdesigns/swissconnection/internal/handlers"
	"github.com/leesummerdesigns/swissconnection/internal/middleware"
	"github.com/leesummerdesigns/swissconnection/internal/repository"
	"github.com/leesummerdesigns/swissconnection/internal/services"
	msgws "github.com/leesummerdesigns/swissconnection/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	threadRepo := repository.NewThreadRepository(db)

	geocoder := geocode.NewClient(cfg.NominatimURL, cfg.GeocodeUserAgent)

	catalogService := services.NewCatalogService(serviceRepo)
	discoveryService := services.NewDiscoveryService(providerRepo, geocoder)
	providerService := services.NewProviderService(db, userRepo, providerRepo, serviceRepo, reviewRepo)
	reviewService := services.NewReviewService(reviewRepo, threadRepo, userRepo)
	messagingService := services.NewMessagingService(db, threadRepo, userRepo)

	messageHub := msgws.NewHub()
	go messageHub.Run()

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	searchHandler := handlers.NewSearchHandler(discoveryService)
	serviceHandler := handlers.NewServiceHandler(catalogService)
	providerHandler := handlers.NewProviderHandler(providerService, userRepo)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	messagingHandler := handlers.NewMessagingHandler(messagingService, messageHub, cfg.JWTSecret)

	api := app.Group("/api", middleware.RateLimit())

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	api.Get("/search", searchHandler.SearchProviders)
	api.Get("/services", serviceHandler.ListServices)
	api.Get("/providers/:id", providerHandler.GetProvider)
	api.Get("/providers/:id/reviews", reviewHandler.ListReviews)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	users := authProtected.Group("/users")
	users.Put("/profile", providerHandler.UpdateProfile)

	providers := authProtected.Group("/providers")
	providers.Post("", providerHandler.CreateProfile)
	providers.Post("/:id/reviews", reviewHandler.CreateReview)
	providers.Get("/:id/reviews/eligibility", reviewHandler.CanReview)

	threads := authProtected.Group("/threads")
	threads.Get("", messagingHandler.ListThreads)
	threads.Post("", messagingHandler.StartThread)
	threads.Get("/:id/messages", messagingHandler.GetMessages)
	threads.Post("/:id/messages", messagingHandler.SendMessage)

	api.Use("/v1/ws", messagingHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(messagingHandler.HandleWebSocket))
}
