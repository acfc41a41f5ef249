// services/warm_service.go
package services

import (
	"context"
	"log"

	"itinerary-backend/config"
	"itinerary-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// WarmService re-renders every customer's public page into the snapshot
// cache on a schedule, so the first morning visitor never pays the
// assembly cost.
type WarmService struct {
	db       *gorm.DB
	renderer *RendererService
}

func NewWarmService(db *gorm.DB) *WarmService {
	return &WarmService{db: db, renderer: NewRendererService(db)}
}

// StartScheduler warms the cache once at boot and then daily at 06:00.
// A no-op when Redis is not configured.
func (s *WarmService) StartScheduler() {
	if config.Cache == nil {
		log.Println("Snapshot cache disabled, warm scheduler not started")
		return
	}

	c := cron.New()
	c.AddFunc("0 6 * * *", s.WarmAll)
	c.Start()
	log.Println("Snapshot warm scheduler started")

	go s.WarmAll()
}

func (s *WarmService) WarmAll() {
	var slugs []string
	if err := s.db.Model(&models.Customer{}).Pluck("slug", &slugs).Error; err != nil {
		log.Printf("Warm pass failed to list customers: %v", err)
		return
	}

	ctx := context.Background()
	warmed := 0
	for _, slug := range slugs {
		invalidateSnapshot(slug)
		if _, err := s.renderer.RenderBySlug(ctx, slug); err != nil {
			log.Printf("Warm pass failed for %s: %v", slug, err)
			continue
		}
		warmed++
	}
	log.Printf("Warm pass completed: %d/%d itineraries cached", warmed, len(slugs))
}
