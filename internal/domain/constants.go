package domain

// Day one of the fixed event days
type Day string

const (
	DayFriday   Day = "friday"
	DaySaturday Day = "saturday"
	DaySunday   Day = "sunday"
)

// EventDays список дней события в порядке проведения
var EventDays = []Day{DayFriday, DaySaturday, DaySunday}

// IsValidDay returns true if the value is one of the event days
func IsValidDay(d Day) bool {
	for _, day := range EventDays {
		if d == day {
			return true
		}
	}
	return false
}

// Default policy values
const (
	DefaultMaxAppointmentsPerSlot = 1
	DefaultRateLimitMaxRequests   = 5
	DefaultRateLimitWindowMinutes = 15
)

// Business validation constants
const (
	MinAppointmentsPerSlot = 1
	MaxAppointmentsPerSlot = 100
	MinRateLimitRequests   = 1
	MaxRateLimitRequests   = 1000
	MinRateLimitWindow     = 1
	MaxRateLimitWindow     = 1440 // 1 day
	MaxNameLength          = 200
	MaxEmailLength         = 254
	MaxMessageLength       = 1000
)

// Event schedule: the time grid slots are generated on
const (
	EventOpenTime       = "10:00"
	EventCloseTime      = "18:00"
	SlotDurationMinutes = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
