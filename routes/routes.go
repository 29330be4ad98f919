package routes

import (
	"productapi/config"
	"productapi/controllers"
	"productapi/database"
	"productapi/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the engine with the request id, logging and recovery
// middleware and every route registered.
func NewRouter(cfg *config.Config, store database.ProductStore, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	RegisterRoutes(r, cfg, controllers.NewProductController(store, cfg.DBTimeout, log))
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, products *controllers.ProductController) {
	r.GET("/", controllers.Index)
	r.GET("/health", controllers.Health)
	r.GET("/version", controllers.Version(cfg.Version, cfg.UpdatedAt))

	api := r.Group("/api")
	{
		api.GET("/products", products.GetProducts)
		api.GET("/products/:id", products.GetProduct)

		protected := api.Group("/products")
		protected.Use(middleware.BearerAuth(cfg.APIToken))
		{
			protected.POST("", products.CreateProduct)
			protected.PUT("/:id", products.ReplaceProduct)
			protected.PATCH("/:id", products.PatchProduct)
			protected.DELETE("/:id", products.DeleteProduct)
		}
	}
}
