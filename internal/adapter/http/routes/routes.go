package routes

import (
	"context"
	"log"
	"os"

	"cistilnica/internal/adapter/http/handlers"
	repository2 "cistilnica/internal/adapter/persistence/repository"
	"cistilnica/internal/adapter/ws"
	"cistilnica/internal/infrastructure/database"
	"cistilnica/internal/infrastructure/logger"
	"cistilnica/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

var router = gin.New()

const defaultPort = "8080"

// Run will start the server
func Run() {
	zaplog, err := logger.NewZapLog()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zaplog.Sync() }()

	setMiddlewares(zaplog)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(zaplog)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if err := router.Run(":" + port); err != nil {
		zaplog.Fatal("Failed to startup the application", zap.Error(err))
	}
}

func getRoutes(zaplog *zap.Logger) {
	ddb, err := database.NewDynamoDBClient(context.Background())
	if err != nil {
		zaplog.Fatal("Failed to create dynamodb client", zap.Error(err))
	}

	orderRepo := repository2.NewOrderDynamoRepository(ddb)
	articleRepo := repository2.NewArticleDynamoRepository(ddb)
	customerRepo := repository2.NewCustomerDynamoRepository(ddb)
	deliveryDayRepo := repository2.NewDeliveryDayDynamoRepository(ddb)
	sequenceRepo := repository2.NewSequenceDynamoRepository(ddb)

	hub := ws.NewHub(zaplog)

	orderUseCase := usecase.NewOrderUseCase(orderRepo, articleRepo, customerRepo, sequenceRepo, hub, zaplog)
	articleUseCase := usecase.NewArticleUseCase(articleRepo, hub)
	customerUseCase := usecase.NewCustomerUseCase(customerRepo, hub)
	deliveryDayUseCase := usecase.NewDeliveryDayUseCase(deliveryDayRepo, hub)

	// Print dispatch resolves orders through the same workflow the HTTP
	// surface uses.
	hub.SetOrderLoader(orderUseCase)

	orderHandler := handlers.NewOrderHandler(orderUseCase)
	articleHandler := handlers.NewArticleHandler(articleUseCase)
	customerHandler := handlers.NewCustomerHandler(customerUseCase)
	deliveryDayHandler := handlers.NewDeliveryDayHandler(deliveryDayUseCase)

	addPingRoutes(router)
	addLaundryRoutes(router, orderHandler, articleHandler, customerHandler, deliveryDayHandler)

	router.GET("/ws", ws.Serve(hub, zaplog))
}

func setMiddlewares(zaplog *zap.Logger) {
	router.Use(logger.RequestLogMdlw(zaplog))
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		zaplog.Error("Recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(500)
	}))
}
