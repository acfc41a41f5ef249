// controllers/public.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"itinerary-backend/config"
	"itinerary-backend/services"
	"itinerary-backend/utils"

	"github.com/gin-gonic/gin"
)

// RenderItinerary serves the shareable read-only page for a slug
func RenderItinerary(c *gin.Context) {
	slug := c.Param("slug")

	renderer := services.NewRendererService(config.DB)
	view, err := renderer.RenderBySlug(c.Request.Context(), slug)
	if err != nil {
		var nfErr *utils.NotFoundError
		if errors.As(err, &nfErr) {
			c.HTML(http.StatusNotFound, "notfound.html", gin.H{"slug": slug})
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.HTML(http.StatusOK, "itinerary.html", gin.H{
		"view":         view,
		"whatsappLink": whatsappLink(view),
	})
}

// DownloadItineraryPDF serves the same snapshot as a PDF document
func DownloadItineraryPDF(c *gin.Context) {
	slug := c.Param("slug")

	renderer := services.NewRendererService(config.DB)
	view, err := renderer.RenderBySlug(c.Request.Context(), slug)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	pdfBytes, err := services.BuildItineraryPDF(view)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build PDF")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+slug+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func whatsappLink(view *services.ItineraryView) string {
	if view.WhatsApp == nil {
		return ""
	}
	return "https://wa.me/" + strings.TrimPrefix(view.WhatsApp.Phone, "+")
}
