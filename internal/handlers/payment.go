package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/models"
	"github.com/elitecars/rental-backend/internal/services"
	"github.com/elitecars/rental-backend/pkg/utils"
)

type SubmitBookingInput struct {
	Phone string `json:"phone" binding:"required"`
}

// SubmitBooking is the payment handoff step: the customer supplies a
// contact phone and receives a WhatsApp deep link to the operator with
// the booking details pre-filled. Payment itself happens off-platform
// and is recorded by an admin via UpdatePaymentStatus.
func SubmitBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubmitBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if !utils.ValidPhone(input.Phone) {
			c.JSON(400, gin.H{"error": "Phone number must contain at least 10 digits"})
			return
		}

		userID := c.MustGet("userId").(uint)

		var booking models.Booking
		if result := db.Preload("Car").
			Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&booking); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.Status != models.BookingStatusPending {
			c.JSON(409, gin.H{"error": "Booking has already been processed"})
			return
		}

		// Keep the customer's latest contact number on their profile
		if err := db.Model(&models.User{}).Where("id = ?", userID).
			Update("phone_number", input.Phone).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save phone number"})
			return
		}

		ctx := c.Request.Context()
		operatorNumber := ""
		currency := "$"
		if settings, err := services.GetCachedSettings(ctx); err == nil && settings != nil {
			operatorNumber = settings.WhatsAppNumber
			currency = settings.CurrencySymbol
		} else {
			var row models.Settings
			if err := db.First(&row, models.SettingsRowID).Error; err == nil {
				operatorNumber = row.WhatsAppNumber
				currency = row.CurrencySymbol
				services.CacheSettings(ctx, &row)
			}
		}
		if operatorNumber == "" {
			c.JSON(500, gin.H{"error": "Operator contact is not configured"})
			return
		}

		carName := ""
		if booking.Car != nil {
			carName = booking.Car.Name
		}
		message := utils.BookingHandoffMessage(carName, booking.ShortReference(), booking.TotalPrice, currency, input.Phone)

		c.JSON(200, gin.H{
			"whatsappLink": utils.WhatsAppLink(operatorNumber, message),
			"reference":    booking.Reference,
		})
	}
}
