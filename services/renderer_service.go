// services/renderer_service.go
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"itinerary-backend/config"
	"itinerary-backend/models"
	"itinerary-backend/utils"

	"gorm.io/gorm"
)

// RendererService resolves a slug to the full customer graph and produces
// the read-only public view. It never mutates the graph.
type RendererService struct {
	db *gorm.DB
}

func NewRendererService(db *gorm.DB) *RendererService {
	return &RendererService{db: db}
}

// ItineraryView is the assembled public page: every collection in its
// display order. It is what gets templated, cached and exported to PDF.
type ItineraryView struct {
	Name        string                    `json:"name"`
	Destination string                    `json:"destination"`
	Dates       string                    `json:"dates"`
	Guests      string                    `json:"guests"`
	Slug        string                    `json:"slug"`
	Hotels      []models.Hotel            `json:"hotels"`
	Flights     []models.Flight           `json:"flights"`
	Video       *models.Video             `json:"video,omitempty"`
	Days        []models.Itinerary        `json:"days"`
	Inclusions  []models.PackageInclusion `json:"inclusions"`
	Exclusions  []models.PackageExclusion `json:"exclusions"`
	WhatsApp    *models.WhatsAppConfig    `json:"whatsapp,omitempty"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// RenderBySlug returns the public view for a slug: from the snapshot cache
// when warm, otherwise loaded from the database in one read transaction so
// the page never mixes pre- and post-edit state.
func (s *RendererService) RenderBySlug(ctx context.Context, slug string) (*ItineraryView, error) {
	if view := getCachedSnapshot(ctx, slug); view != nil {
		return view, nil
	}

	customer, err := s.loadSnapshot(slug)
	if err != nil {
		return nil, err
	}

	view := AssembleView(customer)
	putCachedSnapshot(ctx, slug, view)
	return view, nil
}

// loadSnapshot reads the whole graph inside a single repeatable-read
// transaction, so every preload statement sees the same snapshot even if
// an editor commits mid-read. The slug match is exact; partial matching
// exists only in throwaway debug scripts and is not part of the lookup
// contract.
func (s *RendererService) loadSnapshot(slug string) (*models.Customer, error) {
	tx := s.db.Begin(&sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var customer models.Customer
	err := tx.
		Preload("Hotels").
		Preload("Flights").
		Preload("Video").
		Preload("Days").
		Preload("Days.Details").
		Preload("Inclusions").
		Preload("Exclusions").
		Preload("WhatsApp").
		Where("slug = ?", slug).
		First(&customer).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &utils.NotFoundError{Resource: "itinerary"}
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// AssembleView orders every collection per the display rules: hotels and
// package items by order then id, flights by insertion, days by day,
// details by time then id.
func AssembleView(c *models.Customer) *ItineraryView {
	view := &ItineraryView{
		Name:        c.Name,
		Destination: c.Destination,
		Dates:       c.Dates,
		Guests:      c.Guests,
		Slug:        c.Slug,
		Hotels:      append([]models.Hotel{}, c.Hotels...),
		Flights:     append([]models.Flight{}, c.Flights...),
		Video:       c.Video,
		Days:        append([]models.Itinerary{}, c.Days...),
		Inclusions:  append([]models.PackageInclusion{}, c.Inclusions...),
		Exclusions:  append([]models.PackageExclusion{}, c.Exclusions...),
		WhatsApp:    c.WhatsApp,
		UpdatedAt:   c.UpdatedAt,
	}

	sort.SliceStable(view.Hotels, func(i, j int) bool {
		if view.Hotels[i].Order != view.Hotels[j].Order {
			return view.Hotels[i].Order < view.Hotels[j].Order
		}
		return view.Hotels[i].ID < view.Hotels[j].ID
	})
	sort.SliceStable(view.Flights, func(i, j int) bool {
		return view.Flights[i].ID < view.Flights[j].ID
	})
	sort.SliceStable(view.Days, func(i, j int) bool {
		return view.Days[i].Day < view.Days[j].Day
	})
	for d := range view.Days {
		details := append([]models.ItineraryDetail{}, view.Days[d].Details...)
		sort.SliceStable(details, func(i, j int) bool {
			if details[i].Time != details[j].Time {
				return details[i].Time < details[j].Time
			}
			return details[i].ID < details[j].ID
		})
		view.Days[d].Details = details
	}
	sort.SliceStable(view.Inclusions, func(i, j int) bool {
		if view.Inclusions[i].Order != view.Inclusions[j].Order {
			return view.Inclusions[i].Order < view.Inclusions[j].Order
		}
		return view.Inclusions[i].ID < view.Inclusions[j].ID
	})
	sort.SliceStable(view.Exclusions, func(i, j int) bool {
		if view.Exclusions[i].Order != view.Exclusions[j].Order {
			return view.Exclusions[i].Order < view.Exclusions[j].Order
		}
		return view.Exclusions[i].ID < view.Exclusions[j].ID
	})

	return view
}

// ---- snapshot cache ----

func snapshotKey(slug string) string {
	return "itinerary:" + slug
}

func getCachedSnapshot(ctx context.Context, slug string) *ItineraryView {
	if config.Cache == nil {
		return nil
	}
	raw, err := config.Cache.Get(ctx, snapshotKey(slug)).Bytes()
	if err != nil {
		return nil
	}
	var view ItineraryView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil
	}
	return &view
}

func putCachedSnapshot(ctx context.Context, slug string, view *ItineraryView) {
	if config.Cache == nil {
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := config.Cache.Set(ctx, snapshotKey(slug), raw, config.CacheTTL()).Err(); err != nil {
		log.Printf("Failed to cache snapshot for %s: %v", slug, err)
	}
}

// InvalidatePublicSnapshot drops the cached page for a slug. Controllers
// call it for mutations that bypass the editor service (base-field
// updates, slug changes).
func InvalidatePublicSnapshot(slug string) {
	invalidateSnapshot(slug)
}

// invalidateSnapshot drops the cached page after any editor mutation.
func invalidateSnapshot(slug string) {
	if config.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := config.Cache.Del(ctx, snapshotKey(slug)).Err(); err != nil {
		log.Printf("Failed to invalidate snapshot for %s: %v", slug, err)
	}
}

// ---- preload ordering (admin subtree reads) ----

func orderHotels(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC, id ASC")
}

func orderFlights(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func orderDays(db *gorm.DB) *gorm.DB {
	return db.Order("day ASC")
}

func orderDetails(db *gorm.DB) *gorm.DB {
	return db.Order("time ASC, id ASC")
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC, id ASC")
}
