package routes

import (
	"cistilnica/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrder       = "/order"
	PathOrders      = "/orders"
	PathArchive     = "/api/archive"
	PathCompleted   = "/api/completed"
	PathDelivery    = "/api/delivery"
	PathCustomers   = "/api/customers"
	PathArticles    = "/api/articles"
	PathDeliveryDay = "/api/delivery-day"
)

func addLaundryRoutes(
	r *gin.Engine,
	orderHandler *handlers.OrderHandler,
	articleHandler *handlers.ArticleHandler,
	customerHandler *handlers.CustomerHandler,
	deliveryDayHandler *handlers.DeliveryDayHandler,
) {
	r.POST(PathOrder, orderHandler.Create)
	r.GET(PathOrders, orderHandler.ListActive)
	r.GET(PathOrder+"/:id", orderHandler.GetByID)
	r.PUT(PathOrder+"/:id", orderHandler.Update)
	r.PATCH(PathOrder+"/:id/status", orderHandler.UpdateStatus)
	r.DELETE(PathOrder+"/:id", orderHandler.Delete)

	r.GET(PathArchive, orderHandler.ListArchive)
	r.GET(PathCompleted, orderHandler.ListCompleted)
	r.GET(PathDelivery, orderHandler.ListDelivery)

	customers := r.Group(PathCustomers)
	{
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.GetByID)
		customers.POST("", customerHandler.Create)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", customerHandler.Delete)
	}

	articles := r.Group(PathArticles)
	{
		articles.GET("", articleHandler.List)
		articles.GET("/:id", articleHandler.GetByID)
		articles.POST("", articleHandler.Create)
		articles.PUT("/:id", articleHandler.Update)
		articles.DELETE("/:id", articleHandler.Delete)
	}

	deliveryDays := r.Group(PathDeliveryDay)
	{
		deliveryDays.GET("", deliveryDayHandler.List)
		deliveryDays.GET("/:date", deliveryDayHandler.GetByDate)
		deliveryDays.POST("", deliveryDayHandler.Save)
	}
}
