package router

import (
	"github.com/fitshop/fitshop-backend/config"
	"github.com/fitshop/fitshop-backend/internal/app/controller"
	"github.com/fitshop/fitshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	productController  *controller.ProductController
	categoryController *controller.CategoryController
	orderController    *controller.OrderController
	checkoutController *controller.CheckoutController
	config             *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	orderController *controller.OrderController,
	checkoutController *controller.CheckoutController,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:  productController,
		categoryController: categoryController,
		orderController:    orderController,
		checkoutController: checkoutController,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "FitShop API is running",
		})
	})

	api := router.Group("/api")
	{
		produtos := api.Group("/produtos")
		{
			// Static segments before the :id wildcard.
			produtos.GET("/promocoes", r.productController.GetPromotions)
			produtos.GET("/novidades", r.productController.GetNewArrivals)
			produtos.GET("/mais-pesquisados", r.productController.GetMostSearched)
			produtos.GET("/mais-comprados", r.productController.GetMostPurchased)

			produtos.GET("", r.productController.GetProducts)
			produtos.GET("/:id", r.productController.GetProductByID)
			produtos.POST("", r.productController.CreateProduct)
			produtos.PUT("/:id", r.productController.UpdateProduct)
			produtos.DELETE("/:id", r.productController.DeleteProduct)
		}

		categorias := api.Group("/categorias")
		{
			categorias.GET("", r.categoryController.GetCategories)
			categorias.GET("/:id", r.categoryController.GetCategoryByID)
			categorias.POST("", r.categoryController.CreateCategory)
			categorias.PUT("/:id", r.categoryController.UpdateCategory)
			categorias.DELETE("/:id", r.categoryController.DeleteCategory)
		}

		pedidos := api.Group("/pedidos")
		{
			pedidos.GET("", r.orderController.GetOrders)
			pedidos.GET("/:id", r.orderController.GetOrderByID)
			pedidos.POST("", r.orderController.CreateOrder)
		}

		api.POST("/whatsapp/enviar-pedido", r.checkoutController.SendOrder)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
