package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание заявки
// Контактные поля валидируются через go-playground/validator
type Request struct {
	CustomerName string  `validate:"required,max=120"`
	Phone        string  `validate:"required,min=5,max=32"`
	Email        string  `validate:"omitempty,email"`
	Address      string  `validate:"required,max=300"`
	ServiceType  string  `validate:"required,max=120"`
	Comment      *string `validate:"omitempty,max=500"`

	Date domain.CalendarDay // Дата записи (уже распарсена handler-ом)
	Slot domain.Slot        // Индекс слота 0..7
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID           int64
	CustomerName string
	Phone        string
	Email        string
	Address      string
	ServiceType  string
	Comment      *string

	Date      domain.CalendarDay
	Slot      domain.Slot
	SlotLabel string
	Status    string

	// ManageToken выдается клиенту один раз - им авторизуются
	// последующие запросы на перенос записи
	ManageToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}
