package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers"
	"velora_back_end/internal/middleware"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Products      *handlers.ProductHandler
	AdminProducts *handlers.AdminProductHandler
	Orders        *handlers.OrderHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.Use(corsConfig())

	// Users
	users := r.Group("/api/users")
	{
		users.POST("/register/", middleware.RegisterRateLimit(), h.Auth.Register)
		users.POST("/login/", middleware.LoginRateLimit(), h.Auth.Login)

		profile := users.Group("/details", middleware.AuthRequired())
		{
			profile.GET("/profile/", h.Users.GetProfile)
			profile.PUT("/profile/", h.Users.UpdateProfile)
		}

		address := users.Group("/address", middleware.AuthRequired())
		{
			address.GET("/", h.Users.GetAddress)
			address.POST("/", h.Users.SaveAddress)
		}

		admin := users.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
		{
			admin.GET("/", h.Users.ListUsers)
			admin.GET("/:id/", h.Users.GetUser)
			admin.PUT("/:id/", h.Users.UpdateUser)
			admin.DELETE("/:id/", h.Users.DeleteUser)
		}
	}

	// Products
	products := r.Group("/api/products")
	{
		public := products.Group("/user")
		{
			public.GET("/", h.Products.ListProducts)
			public.GET("/top/", h.Products.TopProducts)
			public.GET("/search/", h.Products.SearchProducts)
			public.GET("/:id/", h.Products.GetProduct)
			public.GET("/:id/reviews/", h.Products.ListProductReviews)
			public.PATCH("/reviews/:id/", middleware.AuthRequired(), h.Products.SubmitReview)
		}

		admin := products.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
		{
			admin.GET("/", h.AdminProducts.ListProducts)
			admin.POST("/", h.AdminProducts.CreateProduct)
			admin.PUT("/:id/", h.AdminProducts.UpdateProduct)
			admin.DELETE("/:id/", h.AdminProducts.DeleteProduct)
			admin.POST("/image/", h.AdminProducts.UploadProductImage)
		}
	}

	// Orders
	orders := r.Group("/api/orders", middleware.AuthRequired())
	{
		orders.GET("/", middleware.RequireAdmin, h.Orders.AllOrders)
		orders.POST("/add/", h.Orders.PlaceOrder)
		orders.GET("/myorders/", h.Orders.MyOrders)
		orders.GET("/:id/", h.Orders.GetOrder)
		orders.PUT("/:id/pay/", h.Orders.PayOrder)
		orders.PUT("/:id/deliver/", middleware.RequireAdmin, h.Orders.DeliverOrder)
	}
}

func corsConfig() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
