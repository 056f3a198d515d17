package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/backup"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/controllers"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/middlewares"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/models"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/store"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	orderStore := store.NewOrderStore(db)
	backupMgr := backup.NewManager(db, "backups")

	userCtrl := controllers.NewUserController(db)
	productCtrl := controllers.NewProductController(db)
	orderCtrl := controllers.NewOrderController(orderStore)
	backupCtrl := controllers.NewBackupController(backupMgr)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// cardapio e publico para os clientes
	r.GET("/products", productCtrl.GetAllProducts)

	// painel de pedidos via websocket (token na query)
	r.GET("/ws/board", controllers.BoardHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/profile", userCtrl.GetProfile)

	// ORDERS (qualquer usuario autenticado)
	api.POST("/orders", orderCtrl.CreateOrder)
	api.GET("/orders", orderCtrl.GetOrders)
	api.PUT("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	api.GET("/orders/history", orderCtrl.GetHistory)
	api.GET("/statistics", orderCtrl.GetStatistics)

	// PRODUCTS (qualquer usuario autenticado)
	api.POST("/products", productCtrl.CreateProduct)
	api.PUT("/products/:product_id", productCtrl.UpdateProduct)
	api.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	// ADMIN ONLY
	admin := api.Group("/")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
		admin.DELETE("/orders/history", orderCtrl.ClearHistory)
		admin.GET("/profits", orderCtrl.GetProfits)
		admin.POST("/reset-counters", orderCtrl.ResetCounters)

		admin.POST("/users", userCtrl.Register)
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.DELETE("/users/:username", userCtrl.DeleteUser)

		admin.POST("/backup", backupCtrl.CreateBackup)
		admin.POST("/backup/restore", backupCtrl.RestoreBackup)
		admin.POST("/backup/auto", backupCtrl.AutoBackup)
	}

	return r
}
