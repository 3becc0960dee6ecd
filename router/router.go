package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/controllers"
	"github.com/yeremiapane/daie-pos/kds"
	"github.com/yeremiapane/daie-pos/middlewares"
	"github.com/yeremiapane/daie-pos/services"
	"gorm.io/gorm"
)

type Options struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func SetupRouter(db *gorm.DB, hub *kds.Hub, opts Options) *gin.Engine {
	controllers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigins))
	if opts.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).RateLimit())
	}

	uow := services.NewUnitOfWork(db)
	catalog := services.NewCatalogService(uow)
	tracker := services.NewTableTracker()
	orders := services.NewOrderService(uow, services.NewCatalog(), tracker, services.NewLedger())
	sessions := services.NewSessionService(uow)
	ratings := services.NewRatingService(uow, services.NewCatalog())

	healthCtrl := controllers.NewHealthController(uow)
	categoryCtrl := controllers.NewCategoryController(catalog)
	productCtrl := controllers.NewProductController(catalog)
	clientCtrl := controllers.NewClientController(catalog)
	waiterCtrl := controllers.NewWaiterController(catalog)
	tableCtrl := controllers.NewTableController(catalog, services.NewTableService(uow, tracker), hub)
	orderCtrl := controllers.NewOrderController(orders, catalog, hub)
	paymentCtrl := controllers.NewPaymentController(orders, catalog, hub)
	itemCtrl := controllers.NewOrderItemController(orders, hub)
	sessionCtrl := controllers.NewSessionController(sessions, hub)
	receiptCtrl := controllers.NewReceiptController(sessions)
	ratingCtrl := controllers.NewRatingController(ratings)
	kdsCtrl := controllers.NewKDSController(hub)

	r.GET("/", healthCtrl.Check)
	r.GET("/ws", kdsCtrl.KDSHandler)

	categories := r.Group("/categorias")
	{
		categories.GET("", categoryCtrl.GetAllCategories)
		categories.POST("", categoryCtrl.CreateCategory)
		categories.PUT("/:id", categoryCtrl.UpdateCategory)
		categories.DELETE("/:id", categoryCtrl.DeleteCategory)
	}

	products := r.Group("/productos")
	{
		products.GET("", productCtrl.GetAllProducts)
		products.POST("", productCtrl.CreateProduct)
		products.PUT("/:id", productCtrl.UpdateProduct)
		products.DELETE("/:id", productCtrl.DeleteProduct)
	}

	clients := r.Group("/clientes")
	{
		clients.GET("", clientCtrl.GetAllClients)
		clients.GET("/:id", clientCtrl.GetClient)
		clients.POST("", clientCtrl.CreateClient)
		clients.PUT("/:id", clientCtrl.UpdateClient)
		clients.DELETE("/:id", clientCtrl.DeleteClient)
	}

	waiters := r.Group("/meseros")
	{
		waiters.GET("", waiterCtrl.GetAllWaiters)
		waiters.POST("", waiterCtrl.CreateWaiter)
		waiters.PUT("/:id", waiterCtrl.UpdateWaiter)
		waiters.DELETE("/:id", waiterCtrl.DeleteWaiter)
	}

	tables := r.Group("/mesas")
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.GET("/:id", tableCtrl.GetTable)
		tables.POST("", tableCtrl.CreateTable)
		tables.PUT("/:id", tableCtrl.UpdateTableStatus)
		tables.DELETE("/:id", tableCtrl.DeleteTable)
	}

	orderGroup := r.Group("/ordenes")
	{
		orderGroup.GET("", orderCtrl.GetAllOrders)
		orderGroup.POST("", orderCtrl.CreateOrder)
		orderGroup.GET("/cliente/:id", orderCtrl.GetOrdersByClient)
		orderGroup.GET("/mesa/:id", orderCtrl.GetOrdersByTable)
		orderGroup.GET("/:id", orderCtrl.GetOrder)
		orderGroup.PUT("/:id", orderCtrl.UpdateOrder)
		orderGroup.DELETE("/:id", orderCtrl.DeleteOrder)
		orderGroup.POST("/:id/iniciar", orderCtrl.StartOrder)
		orderGroup.POST("/:id/cerrar", orderCtrl.CloseOrder)
		orderGroup.POST("/:id/cancelar", orderCtrl.CancelOrder)
		orderGroup.POST("/:id/pago", paymentCtrl.PayOrder)
	}

	items := r.Group("/ordenes_productos")
	{
		items.GET("", itemCtrl.GetAllOrderItems)
		items.GET("/:orden_id", itemCtrl.GetOrderItems)
		items.POST("", itemCtrl.CreateOrderItem)
		items.PUT("/:orden_id/:producto_id", itemCtrl.UpdateOrderItem)
		items.DELETE("/:orden_id/:producto_id", itemCtrl.DeleteOrderItem)
	}

	sessionGroup := r.Group("/sesiones")
	{
		sessionGroup.GET("", sessionCtrl.GetAllSessions)
		sessionGroup.POST("", sessionCtrl.CreateSession)
		sessionGroup.GET("/:id", sessionCtrl.GetSession)
		sessionGroup.PUT("/:id", sessionCtrl.UpdateSession)
		sessionGroup.DELETE("/:id", sessionCtrl.DeleteSession)

		receipts := sessionGroup.Group("/:id", middlewares.ReceiptLoggerMiddleware())
		receipts.GET("/recibo", receiptCtrl.GetReceipt)
		receipts.GET("/recibo.pdf", receiptCtrl.DownloadReceipt)
	}

	links := r.Group("/sesion_ordenes")
	{
		links.POST("", sessionCtrl.AttachOrder)
		links.GET("/:sesion_id", sessionCtrl.GetSessionOrders)
		links.DELETE("/:sesion_id/:orden_id", sessionCtrl.DetachOrder)
	}

	ratingGroup := r.Group("/valoraciones")
	{
		ratingGroup.GET("", ratingCtrl.GetAllRatings)
		ratingGroup.POST("", ratingCtrl.CreateRating)
		ratingGroup.GET("/cliente/:id", ratingCtrl.GetRatingsByClient)
		ratingGroup.GET("/:id", ratingCtrl.GetRating)
	}

	return r
}
