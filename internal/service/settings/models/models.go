package models

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UpdateSettingsRequest запрос на частичное обновление настроек
// Обновляются только указанные (non-nil) поля
type UpdateSettingsRequest struct {
	MaxAppointmentsPerSlot *int             `json:"maxAppointmentsPerSlot,omitempty"`
	BookingMode            *string          `json:"bookingMode,omitempty"`
	AvailableDays          map[string]*bool `json:"availableDays,omitempty"`
	RequireApproval        *bool            `json:"requireApproval,omitempty"`
	RateLimitingEnabled    *bool            `json:"rateLimitingEnabled,omitempty"`
	RateLimitMaxRequests   *int             `json:"rateLimitMaxRequests,omitempty"`
	RateLimitWindowMinutes *int             `json:"rateLimitWindowMinutes,omitempty"`
	MaintenanceMode        *bool            `json:"maintenanceMode,omitempty"`
	MaintenanceMessage     *string          `json:"maintenanceMessage,omitempty"`
	PreventDuplicateEmail  *bool            `json:"preventDuplicateEmail,omitempty"`
}

// ApplyToSettings применяет указанные поля запроса к настройкам
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.Settings) {
	if r.MaxAppointmentsPerSlot != nil {
		s.MaxAppointmentsPerSlot = *r.MaxAppointmentsPerSlot
	}
	if r.BookingMode != nil {
		s.BookingMode = domain.BookingMode(*r.BookingMode)
	}
	if r.AvailableDays != nil {
		for day, open := range r.AvailableDays {
			if open != nil {
				s.AvailableDays[domain.Day(day)] = *open
			}
		}
	}
	if r.RequireApproval != nil {
		s.RequireApproval = *r.RequireApproval
	}
	if r.RateLimitingEnabled != nil {
		s.RateLimitingEnabled = *r.RateLimitingEnabled
	}
	if r.RateLimitMaxRequests != nil {
		s.RateLimitMaxRequests = *r.RateLimitMaxRequests
	}
	if r.RateLimitWindowMinutes != nil {
		s.RateLimitWindowMinutes = *r.RateLimitWindowMinutes
	}
	if r.MaintenanceMode != nil {
		s.MaintenanceMode = *r.MaintenanceMode
	}
	if r.MaintenanceMessage != nil {
		s.MaintenanceMessage = *r.MaintenanceMessage
	}
	if r.PreventDuplicateEmail != nil {
		s.PreventDuplicateEmail = *r.PreventDuplicateEmail
	}
}

// ChangedFields возвращает имена полей, затронутых запросом (для аудита)
func (r *UpdateSettingsRequest) ChangedFields() []string {
	fields := make([]string, 0)
	if r.MaxAppointmentsPerSlot != nil {
		fields = append(fields, "maxAppointmentsPerSlot")
	}
	if r.BookingMode != nil {
		fields = append(fields, "bookingMode")
	}
	if r.AvailableDays != nil {
		fields = append(fields, "availableDays")
	}
	if r.RequireApproval != nil {
		fields = append(fields, "requireApproval")
	}
	if r.RateLimitingEnabled != nil {
		fields = append(fields, "rateLimitingEnabled")
	}
	if r.RateLimitMaxRequests != nil {
		fields = append(fields, "rateLimitMaxRequests")
	}
	if r.RateLimitWindowMinutes != nil {
		fields = append(fields, "rateLimitWindowMinutes")
	}
	if r.MaintenanceMode != nil {
		fields = append(fields, "maintenanceMode")
	}
	if r.MaintenanceMessage != nil {
		fields = append(fields, "maintenanceMessage")
	}
	if r.PreventDuplicateEmail != nil {
		fields = append(fields, "preventDuplicateEmail")
	}
	return fields
}

// SettingsResponse ответ с полной записью настроек
type SettingsResponse struct {
	MaxAppointmentsPerSlot int             `json:"maxAppointmentsPerSlot"`
	BookingMode            string          `json:"bookingMode"`
	AvailableDays          map[string]bool `json:"availableDays"`
	RequireApproval        bool            `json:"requireApproval"`
	RateLimitingEnabled    bool            `json:"rateLimitingEnabled"`
	RateLimitMaxRequests   int             `json:"rateLimitMaxRequests"`
	RateLimitWindowMinutes int             `json:"rateLimitWindowMinutes"`
	MaintenanceMode        bool            `json:"maintenanceMode"`
	MaintenanceMessage     string          `json:"maintenanceMessage"`
	PreventDuplicateEmail  bool            `json:"preventDuplicateEmail"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	days := make(map[string]bool, len(s.AvailableDays))
	for day, open := range s.AvailableDays {
		days[string(day)] = open
	}

	return &SettingsResponse{
		MaxAppointmentsPerSlot: s.MaxAppointmentsPerSlot,
		BookingMode:            string(s.BookingMode),
		AvailableDays:          days,
		RequireApproval:        s.RequireApproval,
		RateLimitingEnabled:    s.RateLimitingEnabled,
		RateLimitMaxRequests:   s.RateLimitMaxRequests,
		RateLimitWindowMinutes: s.RateLimitWindowMinutes,
		MaintenanceMode:        s.MaintenanceMode,
		MaintenanceMessage:     s.MaintenanceMessage,
		PreventDuplicateEmail:  s.PreventDuplicateEmail,
	}
}
