package handlers

import (
	"context"
	"net/http"

	"github.com/developia-II/tacticalgear-backend/internal/adapters/repository"
	"github.com/developia-II/tacticalgear-backend/internal/cache"
	"github.com/developia-II/tacticalgear-backend/internal/middleware"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/developia-II/tacticalgear-backend/internal/notify"
	"github.com/developia-II/tacticalgear-backend/internal/payments"
	"github.com/developia-II/tacticalgear-backend/internal/services/cart"
	"github.com/developia-II/tacticalgear-backend/internal/services/catalog"
	"github.com/developia-II/tacticalgear-backend/internal/services/chat"
	"github.com/developia-II/tacticalgear-backend/internal/services/identity"
	"github.com/developia-II/tacticalgear-backend/internal/services/order"
	"github.com/developia-II/tacticalgear-backend/internal/services/quote"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies is everything the route table needs. Tests build it from
// in-memory repositories; Wire builds it from a live database.
type Dependencies struct {
	Catalog  catalog.Service
	Identity identity.Service
	Carts    cart.Service
	Orders   order.Service
	Quotes   quote.Service
	Chat     chat.Service
	Hub      *chat.Hub
	Status   repository.StatusRepository
	Tokens   middleware.TokenVerifier

	// Health is called by GET /api/health; nil means always healthy.
	Health    func(ctx context.Context) error
	AllowSeed bool
}

// Externals are the optional integrations chosen from configuration.
type Externals struct {
	Tokens    *utils.TokenManager
	Cache     cache.ProductCache
	Uploader  utils.ImageUploader
	Payments  payments.Gateway
	Mailer    notify.Mailer
	AllowSeed bool
}

func Wire(db *mongo.Database, ext Externals) Dependencies {
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	dealerRepo := repository.NewDealerRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	chatRepo := repository.NewChatRepository(db)

	directory := identity.NewDirectory(userRepo, dealerRepo)
	hub := chat.NewHub()
	carts := cart.NewService(cartRepo, productRepo)

	return Dependencies{
		Catalog:  catalog.NewService(productRepo, categoryRepo, ext.Cache, ext.Uploader),
		Identity: identity.NewService(userRepo, dealerRepo, adminRepo, ext.Tokens),
		Carts:    carts,
		Orders:   order.NewService(orderRepo, carts, ext.Payments),
		Quotes:   quote.NewService(quoteRepo, carts, directory, ext.Mailer),
		Chat:     chat.NewService(chatRepo, adminRepo, directory, hub),
		Hub:      hub,
		Status:   repository.NewStatusRepository(db),
		Tokens:   ext.Tokens,
		Health: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
		AllowSeed: ext.AllowSeed,
	}
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	logrus.Info("Setting up routes...")

	productHandler := NewProductHandler(deps.Catalog)
	categoryHandler := NewCategoryHandler(deps.Catalog)
	uploadHandler := NewUploadHandler(deps.Catalog)
	authHandler := NewAuthHandler(deps.Identity)
	cartHandler := NewCartHandler(deps.Carts)
	orderHandler := NewOrderHandler(deps.Orders)
	paymentHandler := NewPaymentHandler(deps.Orders)
	quoteHandler := NewQuoteHandler(deps.Quotes)
	chatHandler := NewChatHandler(deps.Chat, deps.Hub, deps.Tokens)
	statusHandler := NewStatusHandler(deps.Status)

	auth := middleware.AuthMiddleware(deps.Tokens)
	customerOnly := middleware.RequireKinds(models.PrincipalUser, models.PrincipalDealer)
	adminOnly := middleware.RequireKinds(models.PrincipalAdmin)

	api := router.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "TacticalGear API v1.0"})
	})

	api.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			ctx, cancel := requestContext(c)
			defer cancel()
			if err := deps.Health(ctx); err != nil {
				logrus.WithError(err).Error("Health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "service": "tacticalgear-backend"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "tacticalgear-backend"})
	})

	api.POST("/status", statusHandler.CreateStatusCheck)
	api.GET("/status", statusHandler.GetStatusChecks)

	api.POST("/initialize-data", func(c *gin.Context) {
		if !deps.AllowSeed {
			c.JSON(http.StatusForbidden, utils.ErrorResponse("Sample data initialization is disabled"))
			return
		}
		productHandler.InitializeData(c)
	})

	// Public catalog routes. Fixed paths are registered before /:id.
	products := api.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/featured", productHandler.Featured)
		products.GET("/trending", productHandler.Trending)
		products.GET("/deals", productHandler.Deals)
		products.GET("/new-arrivals", productHandler.NewArrivals)
		products.GET("/price-range", productHandler.PriceRange)
		products.GET("/:id", productHandler.GetProduct)
	}
	api.GET("/categories", categoryHandler.GetCategories)
	api.GET("/categories/with-counts", categoryHandler.GetCategoriesWithCounts)
	api.GET("/brands", categoryHandler.GetBrands)
	api.GET("/brands/with-counts", categoryHandler.GetBrandsWithCounts)

	// Identity
	users := api.Group("/users")
	{
		users.POST("/register", authHandler.RegisterUser)
		users.POST("/login", authHandler.LoginUser)
		users.GET("/profile", auth, middleware.RequireKinds(models.PrincipalUser), authHandler.Profile)
	}
	dealers := api.Group("/dealers")
	{
		dealers.POST("/register", authHandler.RegisterDealer)
		dealers.POST("/login", authHandler.LoginDealer)
		dealers.GET("/profile", auth, middleware.RequireKinds(models.PrincipalDealer), authHandler.Profile)
	}
	api.POST("/admin/login", authHandler.LoginAdmin)

	// Stripe calls this without a bearer token; the signature authenticates it.
	api.POST("/payments/webhook", paymentHandler.HandleWebhook)

	// The websocket authenticates from its query string.
	api.GET("/chat/ws", chatHandler.Stream)

	customer := api.Group("")
	customer.Use(auth, customerOnly)
	{
		carts := customer.Group("/cart")
		{
			carts.POST("/add", cartHandler.AddToCart)
			carts.GET("", cartHandler.GetCart)
			carts.PUT("/item/:product_id", cartHandler.UpdateQuantity)
			carts.DELETE("/item/:product_id", cartHandler.RemoveFromCart)
			carts.DELETE("", cartHandler.ClearCart)
		}

		orders := customer.Group("/orders")
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.GetUserOrders)
			orders.GET("/:id", orderHandler.GetOrderById)
			orders.POST("/:id/payment-intent", paymentHandler.CreatePaymentIntent)
		}

		quotes := customer.Group("/quotes")
		{
			quotes.POST("", quoteHandler.CreateQuote)
			quotes.GET("", quoteHandler.GetMyQuotes)
		}
	}

	// Chat is shared: customers see their own thread, admins any.
	chatGroup := api.Group("/chat")
	chatGroup.Use(auth)
	{
		chatGroup.POST("/send", chatHandler.SendMessage)
		chatGroup.GET("/:user_id", chatHandler.GetThread)
	}

	admin := api.Group("/admin")
	admin.Use(auth, adminOnly)
	{
		admin.GET("/profile", authHandler.Profile)
		admin.GET("/users", authHandler.ListUsers)
		admin.GET("/dealers", authHandler.ListDealers)
		admin.PUT("/dealers/:id/approve", authHandler.ApproveDealer)

		admin.GET("/orders", orderHandler.GetAllOrders)
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)

		admin.POST("/products", productHandler.CreateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.POST("/products/:id/image", uploadHandler.UploadProductImage)

		admin.GET("/quotes", quoteHandler.GetAllQuotes)
		admin.GET("/quotes/export", quoteHandler.ExportQuotes)
		admin.GET("/quotes/:id", quoteHandler.GetQuote)
		admin.PUT("/quotes/:id", quoteHandler.UpdateQuoteStatus)
		admin.PUT("/quotes/:id/pricing", quoteHandler.UpdateQuotePricing)
		admin.POST("/quotes/:id/send-email", quoteHandler.SendQuoteEmail)

		admin.GET("/chat/conversations", chatHandler.GetConversations)
		admin.GET("/chat/:user_id", chatHandler.GetThread)
		admin.POST("/chat/:user_id/reply", chatHandler.AdminReply)
	}
}
