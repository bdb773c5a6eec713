// Package lifecycle owns the booking status state machine and its
// availability side effects. Every call site that mutates a booking's
// status, driver, or payment state goes through a Plan so the rules are
// applied consistently and inside a single transaction.
package lifecycle

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStaleStatus       = errors.New("booking status changed concurrently")
	ErrResourceConflict  = errors.New("car or driver already committed to another confirmed booking")
	ErrNotCompleted      = errors.New("booking is not completed")
	ErrAlreadyRated      = errors.New("booking already rated")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidDates      = errors.New("return date must be after pickup date")
)

// Plan is the full set of writes a single booking-state change implies:
// the booking patch itself plus the car and driver availability patches.
// Apply executes all of them or none.
type Plan struct {
	BookingID  uint
	FromStatus models.BookingStatus
	ToStatus   models.BookingStatus
	Updates    map[string]interface{}

	CarID          uint
	CarAvailable   *bool
	ReleaseDrivers []uint
	OccupyDrivers  []uint

	// Reopen marks a terminal booking returning to confirmed. Apply
	// rejects it with ErrResourceConflict when the car or driver is
	// committed elsewhere, unless Force is set.
	Reopen bool
	Force  bool
}

// PlanTransition computes the plan for moving a booking to newStatus.
// Permitted edges: pending -> confirmed|cancelled, confirmed ->
// completed|cancelled, and the admin reopen completed|cancelled ->
// confirmed.
func PlanTransition(b *models.Booking, newStatus models.BookingStatus) (Plan, error) {
	p := Plan{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   newStatus,
		CarID:      b.CarID,
		Updates:    map[string]interface{}{"status": newStatus},
	}

	if b.Status == newStatus {
		return Plan{}, ErrInvalidTransition
	}

	switch newStatus {
	case models.BookingStatusConfirmed:
		if b.IsHistorical() {
			p.Reopen = true
		} else if b.Status != models.BookingStatusPending {
			return Plan{}, ErrInvalidTransition
		}
		p.occupyResources(b)

	case models.BookingStatusCompleted:
		if b.Status != models.BookingStatusConfirmed {
			return Plan{}, ErrInvalidTransition
		}
		p.releaseResources(b)

	case models.BookingStatusCancelled:
		if b.Status == models.BookingStatusCompleted {
			return Plan{}, ErrInvalidTransition
		}
		// Cancelling a pending booking releases resources that were
		// never occupied; the writes are harmless and keep the rule
		// uniform.
		p.releaseResources(b)

	default:
		return Plan{}, ErrInvalidTransition
	}

	return p, nil
}

// PlanDriverChange computes the plan for assigning, replacing, or
// removing a booking's driver. While the booking is confirmed the
// previous driver is released and the new one occupied; otherwise only
// the assignment itself changes.
func PlanDriverChange(b *models.Booking, newDriverID *uint) Plan {
	p := Plan{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   b.Status,
		CarID:      b.CarID,
		Updates:    map[string]interface{}{"driver_id": newDriverID},
	}

	if b.Status != models.BookingStatusConfirmed {
		return p
	}

	old := b.DriverID
	if old != nil && (newDriverID == nil || *old != *newDriverID) {
		p.ReleaseDrivers = append(p.ReleaseDrivers, *old)
	}
	if newDriverID != nil && (old == nil || *old != *newDriverID) {
		p.OccupyDrivers = append(p.OccupyDrivers, *newDriverID)
	}
	return p
}

// PlanPayment computes the plan for a payment-status change. Payment
// becoming paid promotes a pending booking to confirmed in the same
// plan; it never demotes a later status. Other payment states leave the
// trip status untouched.
func PlanPayment(b *models.Booking, newPayment models.PaymentStatus) Plan {
	p := Plan{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   b.Status,
		CarID:      b.CarID,
		Updates:    map[string]interface{}{"payment_status": newPayment},
	}

	if newPayment == models.PaymentStatusPaid && b.Status == models.BookingStatusPending {
		p.ToStatus = models.BookingStatusConfirmed
		p.Updates["status"] = models.BookingStatusConfirmed
		p.occupyResources(b)
	}
	return p
}

func (p *Plan) occupyResources(b *models.Booking) {
	unavailable := false
	p.CarAvailable = &unavailable
	if b.DriverID != nil {
		p.OccupyDrivers = append(p.OccupyDrivers, *b.DriverID)
	}
}

func (p *Plan) releaseResources(b *models.Booking) {
	available := true
	p.CarAvailable = &available
	if b.DriverID != nil {
		p.ReleaseDrivers = append(p.ReleaseDrivers, *b.DriverID)
	}
}

// Apply executes the plan inside one transaction. The booking patch
// carries a compare-and-set guard on the previous status, so a stale
// plan (another session transitioned the booking first) fails with
// ErrStaleStatus and no write is kept.
func Apply(db *gorm.DB, p Plan) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if p.Reopen && !p.Force {
			q := tx.Model(&models.Booking{}).
				Where("status = ? AND id <> ?", models.BookingStatusConfirmed, p.BookingID)
			if len(p.OccupyDrivers) > 0 {
				q = q.Where("car_id = ? OR driver_id IN ?", p.CarID, p.OccupyDrivers)
			} else {
				q = q.Where("car_id = ?", p.CarID)
			}
			var conflicts int64
			if err := q.Count(&conflicts).Error; err != nil {
				return err
			}
			if conflicts > 0 {
				return ErrResourceConflict
			}
		}

		result := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", p.BookingID, p.FromStatus).
			Updates(p.Updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleStatus
		}

		if p.CarAvailable != nil {
			if err := tx.Model(&models.Car{}).Where("id = ?", p.CarID).
				Update("available", *p.CarAvailable).Error; err != nil {
				return err
			}
		}
		for _, id := range p.ReleaseDrivers {
			if err := tx.Model(&models.Driver{}).Where("id = ?", id).
				Update("available", true).Error; err != nil {
				return err
			}
		}
		for _, id := range p.OccupyDrivers {
			if err := tx.Model(&models.Driver{}).Where("id = ?", id).
				Update("available", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RatingPatch validates a post-trip rating and returns the booking
// patch. A booking can be rated only once and only after completion; a
// repeat attempt is rejected without touching the stored rating.
func RatingPatch(b *models.Booking, rating int, review string) (map[string]interface{}, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if b.Status != models.BookingStatusCompleted {
		return nil, ErrNotCompleted
	}
	if b.Rating != nil {
		return nil, ErrAlreadyRated
	}

	patch := map[string]interface{}{"rating": rating}
	if review != "" {
		patch["review_text"] = review
	}
	return patch, nil
}

// RentalDays returns the billable day count for a date range: the
// day difference rounded up, never less than one.
func RentalDays(pickup, returnDate time.Time) int {
	days := int(math.Ceil(returnDate.Sub(pickup).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// Quote validates the date range and returns the billable days and the
// total price fixed at booking creation time.
func Quote(pickup, returnDate time.Time, pricePerDay float64) (int, float64, error) {
	if !returnDate.After(pickup) {
		return 0, 0, ErrInvalidDates
	}
	days := RentalDays(pickup, returnDate)
	return days, float64(days) * pricePerDay, nil
}

// RepairAvailability recomputes every car's and driver's availability
// flag from the set of confirmed bookings. The flags are a cache of
// booking state; this pass fixes any drift left by interrupted updates.
func RepairAvailability(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`UPDATE cars SET available = NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE bookings.car_id = cars.id
			AND bookings.status = 'confirmed'
			AND bookings.deleted_at IS NULL)`).Error; err != nil {
			return err
		}
		return tx.Exec(`UPDATE drivers SET available = NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE bookings.driver_id = drivers.id
			AND bookings.status = 'confirmed'
			AND bookings.deleted_at IS NULL)`).Error
	})
}
