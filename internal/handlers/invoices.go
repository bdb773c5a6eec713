package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/lifecycle"
	"github.com/elitecars/rental-backend/internal/models"
	"github.com/elitecars/rental-backend/internal/services"
)

// DownloadInvoice renders the PDF invoice for a paid booking. Customers
// can only fetch their own bookings; admins can fetch any.
func DownloadInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userId").(uint)
		role := c.MustGet("userRole").(string)

		query := db.Preload("Car").Preload("User")
		if role != string(models.RoleAdmin) {
			query = query.Where("user_id = ?", userID)
		}

		var booking models.Booking
		if result := query.First(&booking, "id = ?", c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.PaymentStatus != models.PaymentStatusPaid {
			c.JSON(409, gin.H{"error": "Invoice is only available for paid bookings"})
			return
		}

		data := services.InvoiceData{
			Reference:  booking.ShortReference(),
			TotalDays:  lifecycle.RentalDays(booking.PickupDate, booking.ReturnDate),
			Amount:     booking.TotalPrice,
			PickupDate: booking.PickupDate,
			ReturnDate: booking.ReturnDate,
		}
		if booking.User != nil {
			data.CustomerName = booking.User.FullName
		}
		if booking.Car != nil {
			data.CarName = booking.Car.Name
		}

		ctx := c.Request.Context()
		if settings, err := services.GetCachedSettings(ctx); err == nil && settings != nil {
			data.Currency = settings.CurrencySymbol
			data.SiteName = settings.SiteName
			data.SupportEmail = settings.SupportEmail
		} else {
			var row models.Settings
			if err := db.First(&row, models.SettingsRowID).Error; err == nil {
				data.Currency = row.CurrencySymbol
				data.SiteName = row.SiteName
				data.SupportEmail = row.SupportEmail
				services.CacheSettings(ctx, &row)
			}
		}

		pdfBytes, filename, err := services.GenerateInvoicePDF(data)
		if err != nil {
			c.JSON(502, gin.H{"error": "Failed to generate invoice"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(200, "application/pdf", pdfBytes)
	}
}
