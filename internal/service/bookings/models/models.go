package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid filter date")
)

// Request модели

// ListBookingsRequest запрос на получение списка заявок с фильтрацией
type ListBookingsRequest struct {
	StartDate    *string `json:"startDate,omitempty"`    // Начало периода (опционально)
	EndDate      *string `json:"endDate,omitempty"`      // Конец периода (опционально)
	Status       *string `json:"status,omitempty"`       // Фильтр по статусу (опционально)
	OnlyUnviewed bool    `json:"onlyUnviewed,omitempty"` // Только непросмотренные заявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		OnlyUnviewed: r.OnlyUnviewed,
	}

	if r.StartDate != nil {
		day, err := domain.ParseDay(*r.StartDate)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.StartDate = &day
	}

	if r.EndDate != nil {
		day, err := domain.ParseDay(*r.EndDate)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.EndDate = &day
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса заявки
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// RescheduleResponse данные запроса на перенос
type RescheduleResponse struct {
	RequestedDate string `json:"requestedDate"` // "2025-03-14"
	RequestedSlot int    `json:"requestedSlot"`
	RequestedTime string `json:"requestedTime"` // "13:00 - 14:00"
	Status        string `json:"status"`
	SeenByAdmin   bool   `json:"seenByAdmin"`
}

// BookingResponse ответ с данными заявки
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerName    string  `json:"customerName"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email,omitempty"`
	Address         string  `json:"address"`
	ServiceType     string  `json:"serviceType"`
	Comment         *string `json:"comment,omitempty"`
	AppointmentDate string  `json:"appointmentDate"` // "2025-03-12"
	AppointmentSlot int     `json:"appointmentSlot"`
	AppointmentTime string  `json:"appointmentTime"` // "09:00 - 10:00"
	Status          string  `json:"status"`
	ViewedByAdmin   bool    `json:"viewedByAdmin"`

	Reschedule *RescheduleResponse `json:"reschedule,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком заявок
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		Phone:           b.Phone,
		Email:           b.Email,
		Address:         b.Address,
		ServiceType:     b.ServiceType,
		Comment:         b.Comment,
		AppointmentDate: b.AppointmentDate.String(),
		AppointmentSlot: int(b.AppointmentSlot),
		AppointmentTime: b.AppointmentSlot.Label(),
		Status:          string(b.Status),
		ViewedByAdmin:   b.ViewedByAdmin,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.Reschedule != nil {
		resp.Reschedule = &RescheduleResponse{
			RequestedDate: b.Reschedule.RequestedDate.String(),
			RequestedSlot: int(b.Reschedule.RequestedSlot),
			RequestedTime: b.Reschedule.RequestedSlot.Label(),
			Status:        string(b.Reschedule.Status),
			SeenByAdmin:   b.Reschedule.SeenByAdmin,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
