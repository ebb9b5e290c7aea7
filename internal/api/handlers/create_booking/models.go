package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email,omitempty"`
	Address      string  `json:"address"`
	ServiceType  string  `json:"serviceType"`
	Comment      *string `json:"comment,omitempty"`

	AppointmentDate string `json:"appointmentDate"` // "2025-03-12"
	AppointmentSlot int    `json:"appointmentSlot"` // Индекс слота 0..7
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerName    string  `json:"customerName"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email,omitempty"`
	Address         string  `json:"address"`
	ServiceType     string  `json:"serviceType"`
	Comment         *string `json:"comment,omitempty"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentSlot int     `json:"appointmentSlot"`
	AppointmentTime string  `json:"appointmentTime"` // "09:00 - 10:00"
	Status          string  `json:"status"`
	ManageToken     string  `json:"manageToken"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Email:        r.Email,
		Address:      r.Address,
		ServiceType:  r.ServiceType,
		Comment:      r.Comment,
		Date:         domain.CalendarDay(r.AppointmentDate),
		Slot:         domain.Slot(r.AppointmentSlot),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CustomerName:    resp.CustomerName,
		Phone:           resp.Phone,
		Email:           resp.Email,
		Address:         resp.Address,
		ServiceType:     resp.ServiceType,
		Comment:         resp.Comment,
		AppointmentDate: resp.Date.String(),
		AppointmentSlot: int(resp.Slot),
		AppointmentTime: resp.SlotLabel,
		Status:          resp.Status,
		ManageToken:     resp.ManageToken,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
