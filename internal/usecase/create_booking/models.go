package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Day      domain.Day       // День события (friday / saturday / sunday)
	TimeSlot types.TimeString // Время начала слота (например, "10:00")
	Date     string           // Дата слота в формате YYYY-MM-DD

	// Контактные данные посетителя
	Name    string
	Email   string
	Message *string // Дополнительное сообщение (опционально)

	// Идентичность клиента для rate limiting (обычно IP-адрес)
	ClientID string
}

// Response модель ответа с созданной записью
type Response struct {
	ID       string           // ID созданной записи
	Day      domain.Day       // День события
	TimeSlot types.TimeString // Время начала
	Date     string           // Дата слота
	Name     string           // Имя посетителя
	Email    string           // Email посетителя
	Message  *string          // Сообщение
	Status   string           // Статус записи (pending или confirmed)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
