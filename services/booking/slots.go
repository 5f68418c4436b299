package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bikefix/models"
	"bikefix/utils"
)

// slotCacheTTL bounds how stale a cached availability response can be.
const slotCacheTTL = 30 * time.Second

// Lunch break; no slots start inside it.
const (
	lunchStart = "12:00"
	lunchEnd   = "13:00"
)

// defaultSlotCatalog is the fallback when a workshop has no working hours
// configured for the day: 16 half-hour slots, mornings 08:00-11:30 and
// afternoons 14:00-17:30.
var defaultSlotCatalog = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
}

// slotsHeldStatuses are the statuses that make a slot show as occupied.
var slotsHeldStatuses = []string{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusInProgress,
}

// slotCatalogFor builds the day's slot catalog from the workshop's working
// hours, falling back to the default catalog when none are set for that
// weekday. Slots are half-hour starts from open (inclusive) to close
// (exclusive), skipping the lunch break.
func slotCatalogFor(workshop *models.User, date string) ([]string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, utils.NewValidationError("invalid date format, expected YYYY-MM-DD")
	}

	weekday := strings.ToLower(day.Weekday().String())
	hours, ok := workshop.WorkingHours[weekday]
	if !ok || hours.Open == "" || hours.Close == "" {
		if len(workshop.WorkingHours) > 0 {
			// Hours configured but not for this day: the workshop is closed.
			return nil, nil
		}
		return defaultSlotCatalog, nil
	}

	open, err := time.Parse("15:04", hours.Open)
	if err != nil {
		return nil, utils.NewInternalError("workshop has invalid working hours", err)
	}
	closing, err := time.Parse("15:04", hours.Close)
	if err != nil {
		return nil, utils.NewInternalError("workshop has invalid working hours", err)
	}

	var catalog []string
	for t := open; t.Before(closing); t = t.Add(30 * time.Minute) {
		slot := t.Format("15:04")
		if slot >= lunchStart && slot < lunchEnd {
			continue
		}
		catalog = append(catalog, slot)
	}
	return catalog, nil
}

// GetAvailableSlots returns the free and occupied slots for a workshop on a
// date. Appointments in pending, confirmed or in_progress hold their slot.
func (s *DefaultBookingService) GetAvailableSlots(workshopID, date string) (*SlotAvailability, error) {
	if cached := s.cachedSlots(workshopID, date); cached != nil {
		return cached, nil
	}

	workshop, err := s.UserRepo.GetByID(workshopID)
	if err != nil {
		return nil, utils.NewNotFoundError("workshop not found")
	}
	if !workshop.IsWorkshop() {
		return nil, utils.NewNotFoundError("workshop not found")
	}

	catalog, err := slotCatalogFor(workshop, date)
	if err != nil {
		return nil, err
	}

	appts, err := s.Repo.ListByWorkshopAndDate(workshopID, date, slotsHeldStatuses)
	if err != nil {
		return nil, err
	}
	occupied := make(map[string]bool, len(appts))
	for _, appt := range appts {
		occupied[appt.Time] = true
	}

	result := &SlotAvailability{
		AvailableSlots: []string{},
		OccupiedSlots:  []string{},
	}
	for _, slot := range catalog {
		if occupied[slot] {
			result.OccupiedSlots = append(result.OccupiedSlots, slot)
		} else {
			result.AvailableSlots = append(result.AvailableSlots, slot)
		}
	}

	s.cacheSlots(workshopID, date, result)
	return result, nil
}

func slotCacheKey(workshopID, date string) string {
	return fmt.Sprintf("slots:%s:%s", workshopID, date)
}

func (s *DefaultBookingService) cachedSlots(workshopID, date string) *SlotAvailability {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := s.Cache.Get(ctx, slotCacheKey(workshopID, date)).Result()
	if err != nil {
		return nil
	}
	var result SlotAvailability
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (s *DefaultBookingService) cacheSlots(workshopID, date string, result *SlotAvailability) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if data, err := json.Marshal(result); err == nil {
		s.Cache.Set(ctx, slotCacheKey(workshopID, date), data, slotCacheTTL)
	}
}

func (s *DefaultBookingService) invalidateSlotCache(workshopID, date string) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s.Cache.Del(ctx, slotCacheKey(workshopID, date))
}
