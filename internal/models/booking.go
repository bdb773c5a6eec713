package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Booking is a reservation of a car (and optionally a driver) for a date
// range. TotalPrice is fixed at creation time and never recalculated.
type Booking struct {
	gorm.Model
	Reference      string        `json:"reference" gorm:"uniqueIndex;not null"`
	UserID         uint          `json:"userId" gorm:"not null"`
	User           *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CarID          uint          `json:"carId" gorm:"not null"`
	Car            *Car          `json:"car,omitempty" gorm:"foreignKey:CarID"`
	DriverID       *uint         `json:"driverId,omitempty" gorm:"null"`
	Driver         *Driver       `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	PickupDate     time.Time     `json:"pickupDate" gorm:"not null"`
	ReturnDate     time.Time     `json:"returnDate" gorm:"not null"`
	PickupLocation string        `json:"pickupLocation" gorm:"not null"`
	TotalPrice     float64       `json:"totalPrice" gorm:"not null"`
	Status         BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" gorm:"not null;default:'pending'"`
	Rating         *int          `json:"rating,omitempty" gorm:"check:rating >= 1 AND rating <= 5"`
	ReviewText     *string       `json:"reviewText,omitempty"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// IsHistorical reports whether the booking has reached a terminal status.
// Only historical bookings may be hard-deleted by an administrator.
func (b *Booking) IsHistorical() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// ShortReference returns the first segment of the booking reference,
// used on invoices and in the payment handoff message.
func (b *Booking) ShortReference() string {
	for i := 0; i < len(b.Reference); i++ {
		if b.Reference[i] == '-' {
			return b.Reference[:i]
		}
	}
	return b.Reference
}
