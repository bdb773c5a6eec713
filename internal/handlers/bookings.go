package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/lifecycle"
	"github.com/elitecars/rental-backend/internal/models"
	"github.com/elitecars/rental-backend/internal/services"
	"github.com/elitecars/rental-backend/pkg/utils"
)

type CreateBookingInput struct {
	CarID          uint   `json:"carId" binding:"required"`
	PickupDate     string `json:"pickupDate" binding:"required"`
	ReturnDate     string `json:"returnDate" binding:"required"`
	PickupLocation string `json:"pickupLocation" binding:"required"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
	Force  bool   `json:"force"`
}

type AssignDriverInput struct {
	DriverID *uint `json:"driverId"`
}

type UpdatePaymentInput struct {
	PaymentStatus string `json:"paymentStatus" binding:"required,oneof=pending paid failed"`
}

const bookingDateLayout = "2006-01-02"

// CreateBooking creates a pending reservation for the authenticated
// customer. The total price is fixed here and never recalculated.
func CreateBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		pickup, err := time.Parse(bookingDateLayout, input.PickupDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid pickup date, expected YYYY-MM-DD"})
			return
		}
		returnDate, err := time.Parse(bookingDateLayout, input.ReturnDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid return date, expected YYYY-MM-DD"})
			return
		}

		var car models.Car
		if result := db.First(&car, input.CarID); result.Error != nil {
			c.JSON(404, gin.H{"error": "Car not found"})
			return
		}
		if !car.Available {
			c.JSON(409, gin.H{"error": "Car is not available for booking"})
			return
		}

		days, total, err := lifecycle.Quote(pickup, returnDate, car.PricePerDay)
		if err != nil {
			c.JSON(400, gin.H{"error": "Return date must be after pickup date"})
			return
		}

		userID := c.MustGet("userId").(uint)
		booking := models.Booking{
			Reference:      uuid.New().String(),
			UserID:         userID,
			CarID:          car.ID,
			PickupDate:     pickup,
			ReturnDate:     returnDate,
			PickupLocation: input.PickupLocation,
			TotalPrice:     total,
			Status:         models.BookingStatusPending,
			PaymentStatus:  models.PaymentStatusPending,
		}

		if result := db.Create(&booking); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		booking.Car = &car
		c.JSON(201, gin.H{"booking": booking, "totalDays": days})
	}
}

// GetMyBookings lists the authenticated customer's bookings
func GetMyBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userId").(uint)

		var bookings []models.Booking
		if result := db.Preload("Car").Preload("Driver").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&bookings); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"bookings": bookings})
	}
}

// GetAllBookings lists every booking for the back office, optionally
// filtered by ?status= and ?payment_status=
func GetAllBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Car").Preload("Driver").Preload("User")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if payment := c.Query("payment_status"); payment != "" {
			query = query.Where("payment_status = ?", payment)
		}

		var bookings []models.Booking
		if result := query.Order("created_at DESC").Find(&bookings); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"bookings": bookings})
	}
}

// UpdateBookingStatus moves a booking along the lifecycle. Reopening a
// terminal booking requires either a free car and driver or force=true.
func UpdateBookingStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if result := db.Preload("Car").Preload("User").First(&booking, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		plan, err := lifecycle.PlanTransition(&booking, models.BookingStatus(input.Status))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		plan.Force = input.Force

		if err := lifecycle.Apply(db, plan); err != nil {
			respondLifecycleError(c, err)
			return
		}

		booking.Status = plan.ToStatus
		notifyBookingChange(c, db, hub, &booking)

		if plan.ToStatus == models.BookingStatusConfirmed && booking.User != nil {
			carName := ""
			if booking.Car != nil {
				carName = booking.Car.Name
			}
			go func(u models.User, ref string, total float64) {
				if err := utils.SendBookingConfirmedEmail(u.Email, u.FullName, carName, ref, total, "$"); err != nil {
					log.Printf("Error sending confirmation email: %v", err)
				}
			}(*booking.User, booking.Reference, booking.TotalPrice)
		}
		if plan.ToStatus == models.BookingStatusCancelled && booking.User != nil {
			go func(u models.User, ref string) {
				if err := utils.SendBookingCancelledEmail(u.Email, u.FullName, ref); err != nil {
					log.Printf("Error sending cancellation email: %v", err)
				}
			}(*booking.User, booking.Reference)
		}

		c.JSON(200, gin.H{"booking": booking})
	}
}

// CancelMyBooking lets a customer cancel their own booking while it is
// still pending or confirmed
func CancelMyBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userId").(uint)

		var booking models.Booking
		if result := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&booking); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		plan, err := lifecycle.PlanTransition(&booking, models.BookingStatusCancelled)
		if err != nil {
			c.JSON(400, gin.H{"error": "Booking can no longer be cancelled"})
			return
		}

		if err := lifecycle.Apply(db, plan); err != nil {
			respondLifecycleError(c, err)
			return
		}

		booking.Status = models.BookingStatusCancelled
		notifyBookingChange(c, db, hub, &booking)

		c.JSON(200, gin.H{"booking": booking})
	}
}

// AssignDriver attaches, replaces, or removes (driverId null) the
// booking's driver
func AssignDriver(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AssignDriverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if result := db.First(&booking, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if input.DriverID != nil {
			var driver models.Driver
			if result := db.First(&driver, *input.DriverID); result.Error != nil {
				c.JSON(404, gin.H{"error": "Driver not found"})
				return
			}
			if booking.Status == models.BookingStatusConfirmed && !driver.Available {
				if booking.DriverID == nil || *booking.DriverID != driver.ID {
					c.JSON(409, gin.H{"error": "Driver is not available"})
					return
				}
			}
		}

		plan := lifecycle.PlanDriverChange(&booking, input.DriverID)
		if err := lifecycle.Apply(db, plan); err != nil {
			respondLifecycleError(c, err)
			return
		}

		booking.DriverID = input.DriverID
		notifyBookingChange(c, db, hub, &booking)

		c.JSON(200, gin.H{"booking": booking})
	}
}

// UpdatePaymentStatus records a payment state change. A payment marked
// paid confirms a pending booking in the same transaction.
func UpdatePaymentStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdatePaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if result := db.Preload("Car").Preload("User").First(&booking, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		plan := lifecycle.PlanPayment(&booking, models.PaymentStatus(input.PaymentStatus))
		if err := lifecycle.Apply(db, plan); err != nil {
			respondLifecycleError(c, err)
			return
		}

		promoted := plan.ToStatus != booking.Status
		booking.PaymentStatus = models.PaymentStatus(input.PaymentStatus)
		booking.Status = plan.ToStatus
		notifyBookingChange(c, db, hub, &booking)

		if promoted && booking.User != nil {
			carName := ""
			if booking.Car != nil {
				carName = booking.Car.Name
			}
			go func(u models.User, ref string, total float64) {
				if err := utils.SendBookingConfirmedEmail(u.Email, u.FullName, carName, ref, total, "$"); err != nil {
					log.Printf("Error sending confirmation email: %v", err)
				}
			}(*booking.User, booking.Reference, booking.TotalPrice)
		}

		c.JSON(200, gin.H{"booking": booking})
	}
}

// DeleteBooking hard-deletes a historical booking. Active bookings must
// be cancelled first so the availability mirror stays consistent.
func DeleteBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var booking models.Booking
		if result := db.First(&booking, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if !booking.IsHistorical() {
			c.JSON(409, gin.H{"error": "Only completed or cancelled bookings can be deleted"})
			return
		}

		if result := db.Unscoped().Delete(&booking); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to delete booking"})
			return
		}

		c.JSON(200, gin.H{"message": "Booking deleted"})
	}
}

// RepairAvailability recomputes every car and driver availability flag
// from confirmed bookings. Maintenance endpoint for drift after manual
// database edits.
func RepairAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := lifecycle.RepairAvailability(db); err != nil {
			c.JSON(500, gin.H{"error": "Failed to repair availability"})
			return
		}
		c.JSON(200, gin.H{"message": "Availability flags repaired"})
	}
}

// respondLifecycleError maps state-machine errors onto HTTP statuses
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		c.JSON(400, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrStaleStatus), errors.Is(err, lifecycle.ErrResourceConflict):
		c.JSON(409, gin.H{"error": err.Error()})
	default:
		c.JSON(500, gin.H{"error": "Failed to update booking"})
	}
}

// notifyBookingChange fans the change out to the Redis mirror, the
// WebSocket hub, and the customer's device
func notifyBookingChange(c *gin.Context, db *gorm.DB, hub *services.Hub, booking *models.Booking) {
	ctx := c.Request.Context()

	var car models.Car
	if err := db.First(&car, booking.CarID).Error; err == nil {
		services.SetCarAvailability(ctx, car.ID, car.Available)
	}
	if booking.DriverID != nil {
		var driver models.Driver
		if err := db.First(&driver, *booking.DriverID).Error; err == nil {
			services.SetDriverAvailability(ctx, driver.ID, driver.Available)
		}
	}

	services.PublishBookingUpdate(ctx, booking.ID, string(booking.Status), map[string]interface{}{
		"reference":     booking.Reference,
		"paymentStatus": booking.PaymentStatus,
	})

	if hub != nil {
		hub.SendBookingUpdate(booking)
	}

	var user models.User
	if err := db.First(&user, booking.UserID).Error; err == nil && user.FCMToken != "" {
		services.SendBookingStatusNotification(user.FCMToken, booking.ShortReference(), string(booking.Status))
	}
}
