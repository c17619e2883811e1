package model

import (
	"slices"
	"time"

	"dormhub/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldBookerID      = "booker_id"
	FieldRoomID        = "room_id"
	FieldDepositAmount = "deposit_amount"
	FieldBeginAt       = "begin_at"
	FieldEndAt         = "end_at"
	FieldStatus        = "status"
)

const (
	StatusPendingOwnerConfirmation = "pending_owner_confirmation"
	StatusPendingDepositPayment    = "pending_deposit_payment"
	StatusDepositPaid              = "deposit_paid"
	StatusActiveRental             = "active_rental"
	StatusLeaseEnded               = "lease_ended"
	StatusCancelled                = "cancelled"
	StatusRejected                 = "rejected"
)

// Statuses lists every booking status literal.
var Statuses = []string{
	StatusPendingOwnerConfirmation,
	StatusPendingDepositPayment,
	StatusDepositPaid,
	StatusActiveRental,
	StatusLeaseEnded,
	StatusCancelled,
	StatusRejected,
}

// InactiveStatuses never count against room capacity.
var InactiveStatuses = []string{StatusCancelled, StatusRejected, StatusLeaseEnded}

func ValidStatus(status string) bool {
	return slices.Contains(Statuses, status)
}

// Booking rows are never deleted; cancellation and rejection are statuses.
type Booking struct {
	ID            int64     `db:"id"`
	BookerID      int64     `db:"booker_id"`
	RoomID        int64     `db:"room_id"`
	DepositAmount float64   `db:"deposit_amount"`
	BeginAt       time.Time `db:"begin_at"`
	EndAt         time.Time `db:"end_at"`
	Status        string    `db:"status"`
	model.Metadata
}

// Access is the authorization projection for status changes: the booking
// joined through rooms, room types, and dorms to the owning user.
type Access struct {
	ID          int64  `db:"id"`
	BookerID    int64  `db:"booker_id"`
	Status      string `db:"status"`
	RoomID      int64  `db:"room_id"`
	OwnerUserID int64  `db:"owner_user_id"`
}

// Detail is a booking with its room, room type, and dorm context.
type Detail struct {
	Booking
	RoomName     string `db:"room_name"`
	RoomTypeID   int64  `db:"room_type_id"`
	RoomTypeName string `db:"room_type_name"`
	MaxOccupancy int    `db:"max_occupancy"`
	DormID       int64  `db:"dorm_id"`
	DormName     string `db:"dorm_name"`
}
