package main

import (
	_ "cistilnica/docs"
	"cistilnica/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Čistilnica API
// @version         1.0
// @description     Order management for a laundry/dry-cleaning service: orders, article catalog, customers, delivery days, realtime events and receipt printing.

// @host localhost:8080

// @BasePath  /

func main() {
	routes.Run()
}
