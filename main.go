package main

import (
	"fmt"
	"log"
	"os"

	"itinerary-backend/config"
	"itinerary-backend/models"
	"itinerary-backend/routes"
	"itinerary-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()
	config.ConnectCache()

	config.DB.AutoMigrate(
		&models.Customer{},
		&models.Hotel{},
		&models.Flight{},
		&models.Video{},
		&models.Itinerary{},
		&models.ItineraryDetail{},
		&models.PackageInclusion{},
		&models.PackageExclusion{},
		&models.WhatsAppConfig{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	services.NewWarmService(config.DB).StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
