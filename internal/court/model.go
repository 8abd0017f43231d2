package court

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusInactive    = "inactive"
)

const (
	TypeBasketball = "basketball"
	TypeBadminton  = "badminton"
	TypeTennis     = "tennis"
	TypeVolleyball = "volleyball"
	TypeCricket    = "cricket"
	TypeFootball   = "football"
)

// Court is a bookable resource. Names are not unique across courts; the
// campus has e.g. "Indoor Badminton Court 1" and "Indoor Badminton Court 2"
// but nothing stops an admin creating two courts with the same name.
type Court struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Type         string    `db:"type" json:"type"`
	Location     string    `db:"location" json:"location"`
	Capacity     int       `db:"capacity" json:"capacity"`
	PricePerHour int       `db:"price_per_hour" json:"price_per_hour"`
	Status       string    `db:"status" json:"status"`
	OpenTime     string    `db:"open_time" json:"open_time"`
	CloseTime    string    `db:"close_time" json:"close_time"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreateCourtRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Type         string `json:"type" binding:"required,oneof=basketball badminton tennis volleyball cricket football"`
	Location     string `json:"location" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required,gte=1"`
	PricePerHour int    `json:"price_per_hour" binding:"gte=0"`
	OpenTime     string `json:"open_time" binding:"required"`
	CloseTime    string `json:"close_time" binding:"required"`
}

// UpdateCourtRequest is a patch; nil fields are left unchanged.
type UpdateCourtRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=100"`
	Type         *string `json:"type" binding:"omitempty,oneof=basketball badminton tennis volleyball cricket football"`
	Location     *string `json:"location"`
	Capacity     *int    `json:"capacity" binding:"omitempty,gte=1"`
	PricePerHour *int    `json:"price_per_hour" binding:"omitempty,gte=0"`
	OpenTime     *string `json:"open_time"`
	CloseTime    *string `json:"close_time"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active maintenance inactive"`
}

type Filter struct {
	Type   string
	Status string
}

// SlotGrid enumerates the canonical hourly slot starts between the court's
// open and close times, ascending. A court open 06:00-22:00 has 16 slots,
// "06:00" through "21:00".
func (c *Court) SlotGrid() []string {
	open, err1 := ParseClock(c.OpenTime)
	close, err2 := ParseClock(c.CloseTime)
	if err1 != nil || err2 != nil || close <= open {
		return nil
	}

	slots := make([]string, 0, (close-open)/60)
	for m := open; m+60 <= close; m += 60 {
		slots = append(slots, FormatClock(m))
	}
	return slots
}

// HasSlot reports whether slot is on the court's grid.
func (c *Court) HasSlot(slot string) bool {
	for _, s := range c.SlotGrid() {
		if s == slot {
			return true
		}
	}
	return false
}

// ParseClock parses an "HH:MM" wall-clock string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %s", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour: %s", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute: %s", s)
	}

	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// hourAligned reports whether an "HH:MM" value sits on an hour boundary.
func hourAligned(s string) bool {
	m, err := ParseClock(s)
	return err == nil && m%60 == 0
}
