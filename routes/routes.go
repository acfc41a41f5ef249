package routes

import (
	"itinerary-backend/config"
	"itinerary-backend/controllers"
	"itinerary-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger())

	r.LoadHTMLGlob("templates/*.html")

	// Public itinerary pages, slug-keyed, read-only
	r.GET("/itinerary/:slug", controllers.RenderItinerary)
	r.GET("/itinerary/:slug/pdf", controllers.DownloadItineraryPDF)

	// Administrative surface. Staff tokens are issued out of band; the
	// middleware loads the caller's customer capabilities.
	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)

			customers.PUT("/:id/subtree", controllers.SaveCustomerSubtree)

			customers.PUT("/:id/hotels/reorder", controllers.ReorderCollection("hotels"))
			customers.PUT("/:id/inclusions/reorder", controllers.ReorderCollection("inclusions"))
			customers.PUT("/:id/exclusions/reorder", controllers.ReorderCollection("exclusions"))

			customers.GET("/:id/itineraries", controllers.GetCustomerItineraries)
			customers.GET("/:id/qrcode", controllers.GetCustomerQRCode)
			customers.POST("/:id/whatsapp/send", controllers.SendWhatsAppLink)
		}

		itineraries := api.Group("/itineraries")
		{
			itineraries.POST("", controllers.CreateItinerary)
			itineraries.GET("/:id", controllers.GetItinerary)
			itineraries.PUT("/:id", controllers.UpdateItinerary)
			itineraries.DELETE("/:id", controllers.DeleteItinerary)
		}

		api.GET("/overview", controllers.GetOverview)
	}

	return r
}
