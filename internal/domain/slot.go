package domain

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// SlotKey is the composite identity of a bookable slot
type SlotKey struct {
	Day      Day
	TimeSlot types.TimeString
	Date     string // YYYY-MM-DD
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Day, k.TimeSlot, k.Date)
}

// SlotLedgerEntry tracks how many active appointments occupy a slot
// Invariant: 0 <= Occupancy <= Capacity, enforced via conditional writes
type SlotLedgerEntry struct {
	Occupancy int `json:"occupancy"`
	Capacity  int `json:"capacity"`
}

// IsFull returns true if the slot has no free spots
func (e *SlotLedgerEntry) IsFull() bool {
	return e.Occupancy >= e.Capacity
}

// AvailableSpots returns the number of free spots in the slot
func (e *SlotLedgerEntry) AvailableSpots() int {
	free := e.Capacity - e.Occupancy
	if free < 0 {
		return 0
	}
	return free
}

// AvailableSlot projection of a slot's remaining capacity for the availability endpoint
type AvailableSlot struct {
	TimeSlot       types.TimeString
	AvailableSpots int
	TotalSpots     int
}

// IsFullyAvailable returns true if no spot is taken yet
func (s *AvailableSlot) IsFullyAvailable() bool {
	return s.AvailableSpots == s.TotalSpots
}
