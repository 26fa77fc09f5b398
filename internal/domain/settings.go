package domain

// BookingMode policy governing whether new appointments are auto-confirmed
type BookingMode string

const (
	BookingModeManual    BookingMode = "manual"
	BookingModeAutomatic BookingMode = "automatic"
)

// Settings operator-configurable booking policy
// Stored as a single record; unset fields fall back to DefaultSettings values
type Settings struct {
	MaxAppointmentsPerSlot int          `json:"maxAppointmentsPerSlot"`
	BookingMode            BookingMode  `json:"bookingMode"`
	AvailableDays          map[Day]bool `json:"availableDays"`
	RequireApproval        bool         `json:"requireApproval"`

	RateLimitingEnabled    bool `json:"rateLimitingEnabled"`
	RateLimitMaxRequests   int  `json:"rateLimitMaxRequests"`
	RateLimitWindowMinutes int  `json:"rateLimitWindowMinutes"`

	MaintenanceMode    bool   `json:"maintenanceMode"`
	MaintenanceMessage string `json:"maintenanceMessage"`

	PreventDuplicateEmail bool `json:"preventDuplicateEmail"`
}

// DefaultSettings возвращает политику по умолчанию
func DefaultSettings() Settings {
	days := make(map[Day]bool, len(EventDays))
	for _, d := range EventDays {
		days[d] = true
	}

	return Settings{
		MaxAppointmentsPerSlot: DefaultMaxAppointmentsPerSlot,
		BookingMode:            BookingModeManual,
		AvailableDays:          days,
		RequireApproval:        true,
		RateLimitingEnabled:    true,
		RateLimitMaxRequests:   DefaultRateLimitMaxRequests,
		RateLimitWindowMinutes: DefaultRateLimitWindowMinutes,
		MaintenanceMode:        false,
		MaintenanceMessage:     "",
		PreventDuplicateEmail:  true,
	}
}

// IsDayAvailable returns true if bookings for the day are open
// A day absent from the map is treated as closed
func (s *Settings) IsDayAvailable(day Day) bool {
	return s.AvailableDays[day]
}

// AutoConfirm returns true if new appointments start in confirmed state
func (s *Settings) AutoConfirm() bool {
	return s.BookingMode == BookingModeAutomatic && !s.RequireApproval
}
