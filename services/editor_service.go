// services/editor_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"itinerary-backend/models"
	"itinerary-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EditorService commits edits to one customer's subtree. Every public
// method is a single transaction: either the whole submission lands or
// nothing does. Each payload describes the complete desired state of its
// collection: rows with an id update the stored row, rows without an id
// are created, stored rows missing from the payload are deleted.
type EditorService struct {
	db *gorm.DB
}

func NewEditorService(db *gorm.DB) *EditorService {
	return &EditorService{db: db}
}

// ---- payloads ----

type HotelPayload struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	RoomType string `json:"room_type"`
	Stars    int    `json:"stars"`
	Nights   int    `json:"nights"`
	Image    string `json:"image"`
	MapURL   string `json:"map_url"`
	Order    int    `json:"order"`
}

type FlightPayload struct {
	ID           uint   `json:"id"`
	FlightType   string `json:"flight_type"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	Cabin        string `json:"cabin"`
}

type VideoPayload struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	LocalSrc string `json:"local_src"`
}

type DetailPayload struct {
	ID       uint   `json:"id"`
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

type DayPayload struct {
	ID          uint            `json:"id"`
	Day         int             `json:"day"`
	Icon        string          `json:"icon"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Details     []DetailPayload `json:"details"`
}

type ItemPayload struct {
	ID    uint   `json:"id"`
	Item  string `json:"item"`
	Order int    `json:"order"`
}

type WhatsAppPayload struct {
	ID      uint   `json:"id"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SubtreePayload is one editor submission: the full desired state of every
// child collection of a customer. Video and whatsapp are lists so that an
// attempt to submit two of either is visible as a capacity violation
// rather than silent last-one-wins binding.
type SubtreePayload struct {
	Hotels     []HotelPayload    `json:"hotels"`
	Flights    []FlightPayload   `json:"flights"`
	Video      []VideoPayload    `json:"video"`
	Days       []DayPayload      `json:"days"`
	Inclusions []ItemPayload     `json:"inclusions"`
	Exclusions []ItemPayload     `json:"exclusions"`
	WhatsApp   []WhatsAppPayload `json:"whatsapp"`
}

// ---- validation ----

// CheckCapacity enforces the singleton collections. The stored rows stay
// untouched because this runs before any write.
func CheckCapacity(p SubtreePayload) error {
	if len(p.Video) > 1 {
		return &utils.CapacityError{Resource: "video"}
	}
	if len(p.WhatsApp) > 1 {
		return &utils.CapacityError{Resource: "whatsapp config"}
	}
	return nil
}

// ValidateSubtree checks every row of every collection and collects all
// problems before anything is written.
func ValidateSubtree(p SubtreePayload) *utils.ValidationError {
	ve := utils.NewValidationError()

	for i, h := range p.Hotels {
		validateHotel(ve, fmt.Sprintf("hotels[%d]", i), h)
	}
	for i, f := range p.Flights {
		validateFlight(ve, fmt.Sprintf("flights[%d]", i), f)
	}
	for i, v := range p.Video {
		if strings.TrimSpace(v.LocalSrc) == "" {
			ve.Add(fmt.Sprintf("video[%d].local_src", i), "is required")
		}
	}
	seenDays := map[int]bool{}
	for i, d := range p.Days {
		validateDay(ve, fmt.Sprintf("days[%d]", i), d)
		if d.Day >= 1 && seenDays[d.Day] {
			ve.Add(fmt.Sprintf("days[%d].day", i), fmt.Sprintf("day %d appears more than once", d.Day))
		}
		seenDays[d.Day] = true
	}
	for i, item := range p.Inclusions {
		if strings.TrimSpace(item.Item) == "" {
			ve.Add(fmt.Sprintf("inclusions[%d].item", i), "is required")
		}
	}
	for i, item := range p.Exclusions {
		if strings.TrimSpace(item.Item) == "" {
			ve.Add(fmt.Sprintf("exclusions[%d].item", i), "is required")
		}
	}
	for i, w := range p.WhatsApp {
		if strings.TrimSpace(w.Phone) == "" {
			ve.Add(fmt.Sprintf("whatsapp[%d].phone", i), "is required")
		}
	}

	if ve.Empty() {
		return nil
	}
	return ve
}

func validateHotel(ve *utils.ValidationError, prefix string, h HotelPayload) {
	if strings.TrimSpace(h.Name) == "" {
		ve.Add(prefix+".name", "is required")
	}
	if !utils.ValidateStars(h.Stars) {
		ve.Add(prefix+".stars", "must be between 0 and 5")
	}
	if h.Nights < 0 {
		ve.Add(prefix+".nights", "must not be negative")
	}
}

func validateFlight(ve *utils.ValidationError, prefix string, f FlightPayload) {
	if !utils.ValidateFlightType(f.FlightType) {
		ve.Add(prefix+".flight_type", "must be outbound, inbound or internal")
	}
	if strings.TrimSpace(f.FromLocation) == "" {
		ve.Add(prefix+".from_location", "is required")
	}
	if strings.TrimSpace(f.ToLocation) == "" {
		ve.Add(prefix+".to_location", "is required")
	}
}

func validateDay(ve *utils.ValidationError, prefix string, d DayPayload) {
	if d.Day < 1 {
		ve.Add(prefix+".day", "must be a positive integer")
	}
	if strings.TrimSpace(d.Title) == "" {
		ve.Add(prefix+".title", "is required")
	}
	for j, det := range d.Details {
		if det.Time != "" && !utils.ValidateTimeOfDay(det.Time) {
			ve.Add(fmt.Sprintf("%s.details[%d].time", prefix, j), "must be HH:MM")
		}
		if strings.TrimSpace(det.Activity) == "" {
			ve.Add(fmt.Sprintf("%s.details[%d].activity", prefix, j), "is required")
		}
	}
}

// CheckPayloadIDs rejects payload rows whose id does not belong to the
// stored collection. A stale id would otherwise resurrect a deleted row
// or touch another customer's data.
func CheckPayloadIDs(stored map[uint]bool, field string, ids []uint) *utils.ValidationError {
	ve := utils.NewValidationError()
	for i, id := range ids {
		if id != 0 && !stored[id] {
			ve.Add(fmt.Sprintf("%s[%d].id", field, i), fmt.Sprintf("unknown id %d", id))
		}
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

// CheckReorderIDs verifies that a reorder request lists exactly the stored
// collection, no more and no less.
func CheckReorderIDs(stored []uint, requested []uint) error {
	if len(stored) != len(requested) {
		ve := utils.NewValidationError()
		ve.Add("ids", fmt.Sprintf("expected %d ids, got %d", len(stored), len(requested)))
		return ve
	}
	storedSet := make(map[uint]bool, len(stored))
	for _, id := range stored {
		storedSet[id] = true
	}
	seen := make(map[uint]bool, len(requested))
	ve := utils.NewValidationError()
	for i, id := range requested {
		if !storedSet[id] {
			ve.Add(fmt.Sprintf("ids[%d]", i), fmt.Sprintf("unknown id %d", id))
		}
		if seen[id] {
			ve.Add(fmt.Sprintf("ids[%d]", i), fmt.Sprintf("duplicate id %d", id))
		}
		seen[id] = true
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

// ---- subtree save ----

// SaveSubtree validates the whole submission, then reconciles every
// collection against the stored graph inside one transaction. Any
// validation failure rejects the save with no writes at all.
func (s *EditorService) SaveSubtree(customerID uuid.UUID, payload SubtreePayload) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Where("id = ?", customerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &utils.NotFoundError{Resource: "customer"}
		}
		return nil, err
	}

	if err := CheckCapacity(payload); err != nil {
		return nil, err
	}
	if ve := ValidateSubtree(payload); ve != nil {
		return nil, ve
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reconcileHotels(tx, customerID, payload.Hotels); err != nil {
			return err
		}
		if err := s.reconcileFlights(tx, customerID, payload.Flights); err != nil {
			return err
		}
		if err := s.reconcileVideo(tx, customerID, payload.Video); err != nil {
			return err
		}
		if err := s.reconcileDays(tx, customerID, payload.Days); err != nil {
			return err
		}
		if err := s.reconcileInclusions(tx, customerID, payload.Inclusions); err != nil {
			return err
		}
		if err := s.reconcileExclusions(tx, customerID, payload.Exclusions); err != nil {
			return err
		}
		if err := s.reconcileWhatsApp(tx, customerID, payload.WhatsApp); err != nil {
			return err
		}
		return touchCustomer(tx, customerID)
	})
	if err != nil {
		return nil, err
	}

	invalidateSnapshot(customer.Slug)

	return s.loadSubtree(customerID)
}

func (s *EditorService) reconcileHotels(tx *gorm.DB, customerID uuid.UUID, payload []HotelPayload) error {
	var stored []models.Hotel
	if err := tx.Where("customer_id = ?", customerID).Find(&stored).Error; err != nil {
		return err
	}
	storedIDs := make(map[uint]bool, len(stored))
	for _, h := range stored {
		storedIDs[h.ID] = true
	}
	ids := make([]uint, len(payload))
	keep := make(map[uint]bool, len(payload))
	for i, h := range payload {
		ids[i] = h.ID
		keep[h.ID] = true
	}
	if ve := CheckPayloadIDs(storedIDs, "hotels", ids); ve != nil {
		return ve
	}

	for _, h := range stored {
		if !keep[h.ID] {
			if err := tx.Delete(&models.Hotel{}, h.ID).Error; err != nil {
				return err
			}
		}
	}
	for _, h := range payload {
		row := models.Hotel{
			ID:         h.ID,
			CustomerID: customerID,
			Name:       h.Name,
			RoomType:   h.RoomType,
			Stars:      h.Stars,
			Nights:     h.Nights,
			Image:      h.Image,
			MapURL:     h.MapURL,
			Order:      h.Order,
		}
		if err := upsertRow(tx, &row, row.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *EditorService) reconcileFlights(tx *gorm.DB, customerID uuid.UUID, payload []FlightPayload) error {
	var stored []models.Flight
	if err := tx.Where("customer_id = ?", customerID).Find(&stored).Error; err != nil {
		return err
	}
	storedIDs := make(map[uint]bool, len(stored))
	for _, f := range stored {
		storedIDs[f.ID] = true
	}
	ids := make([]uint, len(payload))
	keep := make(map[uint]bool, len(payload))
	for i, f := range payload {
		ids[i] = f.ID
		keep[f.ID] = true
	}
	if ve := CheckPayloadIDs(storedIDs, "flights", ids); ve != nil {
		return ve
	}

	for _, f := range stored {
		if !keep[f.ID] {
			if err := tx.Delete(&models.Flight{}, f.ID).Error; err != nil {
				return err
			}
		}
	}
	for _, f := range payload {
		row := models.Flight{
			ID:           f.ID,
			CustomerID:   customerID,
			FlightType:   f.FlightType,
			FromLocation: f.FromLocation,
			ToLocation:   f.ToLocation,
			Date:         f.Date,
			Time:         f.Time,
			Airline:      f.Airline,
			FlightNumber: f.FlightNumber,
			Cabin:        f.Cabin,
		}
		if err := upsertRow(tx, &row, row.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *EditorService) reconcileVideo(tx *gorm.DB, customerID uuid.UUID, payload []VideoPayload) error {
	var stored []models.Video
	if err := tx.Where("customer_id = ?", customerID).Find(&stored).Error; err != nil {
		return err
	}
	storedIDs := make(map[uint]bool, len(stored))
	for _, v := range stored {
		storedIDs[v.ID] = true
	}
	ids := make([]uint, len(payload))
	keep := make(map[uint]bool, len(payload))
	for i, v := range payload {
		ids[i] = v.ID
		keep[v.ID] = true
	}
	if ve := CheckPayloadIDs(storedIDs, "video", ids); ve != nil {
		return ve
	}

	for _, v := range stored {
		if !keep[v.ID] {
			if err := tx.Delete(&models.Video{}, v.ID).Error; err != nil {
				return err
			}
		}
	}
	for _, v := range payload {
		row := models.Video{
			ID:         v.ID,
			CustomerID: customerID,
			Title:      v.Title,
			LocalSrc:   v.LocalSrc,
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *EditorService) reconcileDays(tx *gorm.DB, customerID uuid.UUID, payload []DayPayload) error {
	var stored []models.Itinerary
	if err := tx.Where("customer_id = ?", customerID).Find(&stored).Error; err != nil {
		return err
	}
	storedIDs := make(map[uint]bool, len(stored))
	for _, d := range stored {
		storedIDs[d.ID] = true
	}
	ids := make([]uint, len(payload))
	keep := make(map[uint]bool, len(payload))
	for i, d := range payload {
		ids[i] = d.ID
		keep[d.ID] = true
	}
	if ve := CheckPayloadIDs(storedIDs, "days", ids); ve != nil {
		return ve
	}

	// Details first, then the day rows they hang off.
	for _, d := range stored {
		if !keep[d.ID] {
			if err := tx.Where("itinerary_id = ?", d.ID).Delete(&models.ItineraryDetail{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Itinerary{}, d.ID).Error; err != nil {
				return err
			}
		}
	}
	for i, d := range payload {
		row := models.Itinerary{
			ID:          d.ID,
			CustomerID:  customerID,
			Day:         d.Day,
			Icon:        d.Icon,
			Title:       d.Title,
			Description: d.Description,
		}
		if err := upsertRow(tx, &row, row.ID); err != nil {
			return err
		}
		if err := s.reconcileDetails(tx, row.ID, fmt.Sprintf("days[%d].details", i), d.Details); err != nil {
			return err
		}
	}
	return nil
}

func (s *EditorService) reconcileDetails(tx *gorm.DB, itineraryID uint, field string, payload []DetailPayload) error {
	var stored []models.ItineraryDetail
	if err := tx.Where("itinerary_id = ?", itineraryID).Find(&stored).Error; err != nil {
		return err
	}
	storedIDs := make(map[uint]bool, len(stored))
	for _, det := range stored {
		storedIDs[det.ID] = true
	}
	ids := make([]uint, len(payload))
	keep := make(map[uint]bool, len(payload))
	for i, det := range payload {
		ids[i] = det.ID
		keep[det.ID] = true
	}
	if ve := CheckPayloadIDs(storedIDs, field, ids); ve != nil {
		return ve
	}
	for _, det := range stored {
		if !keep[det.ID] {
			if err := tx.Delete(&models.ItineraryDetail{}, det.ID).Error; err != nil {
				return err
			}
		}
	}
	for _, det := range payload {
		row := models.ItineraryDetail{
			ID:          det.ID,
			ItineraryID: itineraryID,
			Time:        det.Time,
			Activity:    det.Activity,
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *EditorService) reconcileInclusions(tx *gorm.DB, customerID uuid.UUID, payload []ItemPayload) error {
	var stored []models.PackageInclusion
	if err := tx.Where("customer_id = ?", customerID).Find(&stored).Error; err != nil {
		return err
	}
	storedIDs := make(map[uint]bool, len(stored))
	for _, item := range stored {
		storedIDs[item.ID] = true
	}
	ids := make([]uint, len(payload))
	keep := make(map[uint]bool, len(payload))
	for i, item := range payload {
		ids[i] = item.ID
		keep[item.ID] = true
	}
	if ve := CheckPayloadIDs(storedIDs, "inclusions", ids); ve != nil {
		return ve
	}

	for _, item := range stored {
		if !keep[item.ID] {
			if err := tx.Delete(&models.PackageInclusion{}, item.ID).Error; err != nil {
				return err
			}
		}
	}
	for _, item := range payload {
		row := models.PackageInclusion{
			ID:         item.ID,
			CustomerID: customerID,
			Item:       item.Item,
			Order:      item.Order,
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *EditorService) reconcileExclusions(tx *gorm.DB, customerID uuid.UUID, payload []ItemPayload) error {
	var stored []models.PackageExclusion
	if err := tx.Where("customer_id = ?", customerID).Find(&stored).Error; err != nil {
		return err
	}
	storedIDs := make(map[uint]bool, len(stored))
	for _, item := range stored {
		storedIDs[item.ID] = true
	}
	ids := make([]uint, len(payload))
	keep := make(map[uint]bool, len(payload))
	for i, item := range payload {
		ids[i] = item.ID
		keep[item.ID] = true
	}
	if ve := CheckPayloadIDs(storedIDs, "exclusions", ids); ve != nil {
		return ve
	}

	for _, item := range stored {
		if !keep[item.ID] {
			if err := tx.Delete(&models.PackageExclusion{}, item.ID).Error; err != nil {
				return err
			}
		}
	}
	for _, item := range payload {
		row := models.PackageExclusion{
			ID:         item.ID,
			CustomerID: customerID,
			Item:       item.Item,
			Order:      item.Order,
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *EditorService) reconcileWhatsApp(tx *gorm.DB, customerID uuid.UUID, payload []WhatsAppPayload) error {
	var stored []models.WhatsAppConfig
	if err := tx.Where("customer_id = ?", customerID).Find(&stored).Error; err != nil {
		return err
	}
	storedIDs := make(map[uint]bool, len(stored))
	for _, w := range stored {
		storedIDs[w.ID] = true
	}
	ids := make([]uint, len(payload))
	keep := make(map[uint]bool, len(payload))
	for i, w := range payload {
		ids[i] = w.ID
		keep[w.ID] = true
	}
	if ve := CheckPayloadIDs(storedIDs, "whatsapp", ids); ve != nil {
		return ve
	}

	for _, w := range stored {
		if !keep[w.ID] {
			if err := tx.Delete(&models.WhatsAppConfig{}, w.ID).Error; err != nil {
				return err
			}
		}
	}
	for _, w := range payload {
		row := models.WhatsAppConfig{
			ID:         w.ID,
			CustomerID: customerID,
			Phone:      w.Phone,
			Message:    w.Message,
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// ---- single day save ----

// SaveDay commits one itinerary day and its detail rows atomically,
// linked back to its customer. itineraryID 0 creates a new day.
func (s *EditorService) SaveDay(itineraryID uint, customerID uuid.UUID, payload DayPayload) (*models.Itinerary, error) {
	var customer models.Customer
	if err := s.db.Where("id = ?", customerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &utils.NotFoundError{Resource: "customer"}
		}
		return nil, err
	}

	ve := utils.NewValidationError()
	validateDay(ve, "day", payload)
	if !ve.Empty() {
		return nil, ve
	}

	if itineraryID != 0 {
		var existing models.Itinerary
		if err := s.db.Where("id = ? AND customer_id = ?", itineraryID, customerID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &utils.NotFoundError{Resource: "itinerary day"}
			}
			return nil, err
		}
	}

	var saved models.Itinerary
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Day numbers are unique per customer. Counted inside the
		// transaction so two concurrent saves of the same day number
		// cannot both pass the check.
		var clash int64
		if err := tx.Model(&models.Itinerary{}).
			Where("customer_id = ? AND day = ? AND id <> ?", customerID, payload.Day, itineraryID).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			dupVE := utils.NewValidationError()
			dupVE.Add("day.day", fmt.Sprintf("day %d already exists for this customer", payload.Day))
			return dupVE
		}

		saved = models.Itinerary{
			ID:          itineraryID,
			CustomerID:  customerID,
			Day:         payload.Day,
			Icon:        payload.Icon,
			Title:       payload.Title,
			Description: payload.Description,
		}
		if err := upsertRow(tx, &saved, itineraryID); err != nil {
			return err
		}
		if err := s.reconcileDetails(tx, saved.ID, "day.details", payload.Details); err != nil {
			return err
		}
		return touchCustomer(tx, customerID)
	})
	if err != nil {
		return nil, err
	}

	invalidateSnapshot(customer.Slug)

	if err := s.db.Preload("Details", orderDetails).Where("id = ?", saved.ID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteDay removes one itinerary day and its details.
func (s *EditorService) DeleteDay(itineraryID uint) error {
	var day models.Itinerary
	if err := s.db.Where("id = ?", itineraryID).First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &utils.NotFoundError{Resource: "itinerary day"}
		}
		return err
	}

	var customer models.Customer
	if err := s.db.Where("id = ?", day.CustomerID).First(&customer).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("itinerary_id = ?", day.ID).Delete(&models.ItineraryDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Itinerary{}, day.ID).Error; err != nil {
			return err
		}
		return touchCustomer(tx, day.CustomerID)
	})
	if err != nil {
		return err
	}

	invalidateSnapshot(customer.Slug)
	return nil
}

// ---- reorder ----

// Reorderable collections of a customer.
const (
	CollectionHotels     = "hotels"
	CollectionInclusions = "inclusions"
	CollectionExclusions = "exclusions"
)

// Reorder rewrites the order field of every member of a collection to its
// position in ids. The id set must match the stored collection exactly.
func (s *EditorService) Reorder(customerID uuid.UUID, collection string, ids []uint) error {
	var customer models.Customer
	if err := s.db.Where("id = ?", customerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &utils.NotFoundError{Resource: "customer"}
		}
		return err
	}

	var model interface{}
	switch collection {
	case CollectionHotels:
		model = &models.Hotel{}
	case CollectionInclusions:
		model = &models.PackageInclusion{}
	case CollectionExclusions:
		model = &models.PackageExclusion{}
	default:
		ve := utils.NewValidationError()
		ve.Add("collection", "not reorderable: "+collection)
		return ve
	}

	var stored []uint
	if err := s.db.Model(model).Where("customer_id = ?", customerID).Pluck("id", &stored).Error; err != nil {
		return err
	}
	if err := CheckReorderIDs(stored, ids); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for pos, id := range ids {
			if err := tx.Model(model).Where("id = ?", id).Update("order_index", pos).Error; err != nil {
				return err
			}
		}
		return touchCustomer(tx, customerID)
	})
	if err != nil {
		return err
	}

	invalidateSnapshot(customer.Slug)
	return nil
}

// ---- cascade delete ----

// DeleteCustomer removes the customer and every descendant, walked
// depth-first so no child row ever outlives its parent reference:
// itinerary details, then days, then the flat child tables, then the
// customer row itself, all in one transaction.
func (s *EditorService) DeleteCustomer(customerID uuid.UUID) error {
	var customer models.Customer
	if err := s.db.Where("id = ?", customerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &utils.NotFoundError{Resource: "customer"}
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var dayIDs []uint
		if err := tx.Model(&models.Itinerary{}).Where("customer_id = ?", customerID).Pluck("id", &dayIDs).Error; err != nil {
			return err
		}
		if len(dayIDs) > 0 {
			if err := tx.Where("itinerary_id IN ?", dayIDs).Delete(&models.ItineraryDetail{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("customer_id = ?", customerID).Delete(&models.Itinerary{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerID).Delete(&models.Hotel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerID).Delete(&models.Flight{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerID).Delete(&models.Video{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerID).Delete(&models.PackageInclusion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerID).Delete(&models.PackageExclusion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customerID).Delete(&models.WhatsAppConfig{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, "id = ?", customerID).Error
	})
	if err != nil {
		return err
	}

	invalidateSnapshot(customer.Slug)
	return nil
}

// ---- helpers ----

// upsertRow creates when id is zero, otherwise updates the stored row.
// created_at is left alone on update; Save would overwrite it with the
// zero value.
func upsertRow(tx *gorm.DB, row interface{}, id uint) error {
	if id == 0 {
		return tx.Create(row).Error
	}
	return tx.Omit("created_at").Save(row).Error
}

// touchCustomer bumps updated_at on the owning customer so any subtree
// change is visible as a customer-level timestamp change.
func touchCustomer(tx *gorm.DB, customerID uuid.UUID) error {
	return tx.Model(&models.Customer{}).Where("id = ?", customerID).
		Update("updated_at", time.Now()).Error
}

// GetSubtree returns one customer with every collection preloaded in its
// display order, for the admin editing page.
func (s *EditorService) GetSubtree(customerID uuid.UUID) (*models.Customer, error) {
	return s.loadSubtree(customerID)
}

func (s *EditorService) loadSubtree(customerID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.
		Preload("Hotels", orderHotels).
		Preload("Flights", orderFlights).
		Preload("Video").
		Preload("Days", orderDays).
		Preload("Days.Details", orderDetails).
		Preload("Inclusions", orderItems).
		Preload("Exclusions", orderItems).
		Preload("WhatsApp").
		Where("id = ?", customerID).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &utils.NotFoundError{Resource: "customer"}
		}
		return nil, err
	}
	return &customer, nil
}
