package dto

import (
	"time"

	"dormhub/internal/domains/booking/model"
	"dormhub/shared"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	"dormhub/shared/timezone"
)

type CreateBookingRequest struct {
	RoomTypeID int64  `json:"room_type_id" validate:"required,gt=0"`
	BeginAt    string `json:"begin_at"     validate:"required,datetime=2006-01-02"`
	EndAt      string `json:"end_at"       validate:"required,datetime=2006-01-02"`
}

// ParseDates returns the booking interval as dates in the app timezone.
func (r *CreateBookingRequest) ParseDates() (begin, end time.Time, err error) {
	begin, err = timezone.Parse(constant.DateOnlyFormat, r.BeginAt)
	if err != nil {
		return begin, end, err //nolint:wrapcheck
	}

	end, err = timezone.Parse(constant.DateOnlyFormat, r.EndAt)

	return begin, end, err //nolint:wrapcheck
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending_owner_confirmation pending_deposit_payment deposit_paid active_rental lease_ended cancelled rejected"`
}

type BookingResponse struct {
	ID            int64   `json:"id"`
	BookerID      int64   `json:"booker_id"`
	RoomID        int64   `json:"room_id"`
	DepositAmount float64 `json:"deposit_amount"`
	BeginAt       string  `json:"begin_at"`
	EndAt         string  `json:"end_at"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BookerID = model.BookerID
	r.RoomID = model.RoomID
	r.DepositAmount = model.DepositAmount
	r.BeginAt = timezone.Format(model.BeginAt, constant.DateOnlyFormat)
	r.EndAt = timezone.Format(model.EndAt, constant.DateOnlyFormat)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type BookingDetailResponse struct {
	BookingResponse
	RoomName     string `json:"room_name"`
	RoomTypeID   int64  `json:"room_type_id"`
	RoomTypeName string `json:"room_type_name"`
	MaxOccupancy int    `json:"max_occupancy"`
	DormID       int64  `json:"dorm_id"`
	DormName     string `json:"dorm_name"`
}

func (r *BookingDetailResponse) FromDetail(detail model.Detail) {
	r.BookingResponse.FromModel(detail.Booking)
	r.RoomName = detail.RoomName
	r.RoomTypeID = detail.RoomTypeID
	r.RoomTypeName = detail.RoomTypeName
	r.MaxOccupancy = detail.MaxOccupancy
	r.DormID = detail.DormID
	r.DormName = detail.DormName
}

type GetBookingsResponse struct {
	Bookings  []BookingDetailResponse `json:"bookings"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetBookingsResponse) FromDetails(details []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingDetailResponse, len(details))
	for i, detail := range details {
		r.Bookings[i].FromDetail(detail)
	}
}

// Event is the payload published to Kafka on booking lifecycle changes.
type Event struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	BookerID   int64     `json:"booker_id"`
	RoomID     int64     `json:"room_id"`
	Status     string    `json:"status"`
	BeginAt    string    `json:"begin_at"`
	EndAt      string    `json:"end_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventTypeCreated       = "booking.created"
	EventTypeStatusChanged = "booking.status_changed"
)

func NewEvent(eventType string, booking model.Booking) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		BookerID:   booking.BookerID,
		RoomID:     booking.RoomID,
		Status:     booking.Status,
		BeginAt:    timezone.Format(booking.BeginAt, constant.DateOnlyFormat),
		EndAt:      timezone.Format(booking.EndAt, constant.DateOnlyFormat),
		OccurredAt: timezone.Now(),
	}
}
