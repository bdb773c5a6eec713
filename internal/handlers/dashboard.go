package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/models"
)

// GetDashboardStats aggregates the back-office overview numbers
func GetDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalBookings, pendingBookings, confirmedBookings, completedBookings int64
		db.Model(&models.Booking{}).Count(&totalBookings)
		db.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending).Count(&pendingBookings)
		db.Model(&models.Booking{}).Where("status = ?", models.BookingStatusConfirmed).Count(&confirmedBookings)
		db.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCompleted).Count(&completedBookings)

		var totalCars, availableCars, totalDrivers, totalCustomers, unreadInquiries int64
		db.Model(&models.Car{}).Count(&totalCars)
		db.Model(&models.Car{}).Where("available = ?", true).Count(&availableCars)
		db.Model(&models.Driver{}).Count(&totalDrivers)
		db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&totalCustomers)
		db.Model(&models.Inquiry{}).Where("read = ?", false).Count(&unreadInquiries)

		var totalRevenue float64
		db.Model(&models.Booking{}).
			Where("status = ? AND payment_status = ?", models.BookingStatusCompleted, models.PaymentStatusPaid).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&totalRevenue)

		c.JSON(200, gin.H{
			"bookings": gin.H{
				"total":     totalBookings,
				"pending":   pendingBookings,
				"confirmed": confirmedBookings,
				"completed": completedBookings,
			},
			"fleet": gin.H{
				"totalCars":     totalCars,
				"availableCars": availableCars,
				"totalDrivers":  totalDrivers,
			},
			"customers":       totalCustomers,
			"unreadInquiries": unreadInquiries,
			"totalRevenue":    totalRevenue,
		})
	}
}

type monthlyRevenueRow struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// GetMonthlyRevenue returns per-month revenue over completed, paid
// bookings for the admin chart
func GetMonthlyRevenue(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []monthlyRevenueRow
		err := db.Model(&models.Booking{}).
			Select("to_char(created_at, 'YYYY-MM') AS month, COALESCE(SUM(total_price), 0) AS revenue, COUNT(*) AS count").
			Where("status = ? AND payment_status = ?", models.BookingStatusCompleted, models.PaymentStatusPaid).
			Group("to_char(created_at, 'YYYY-MM')").
			Order("month ASC").
			Scan(&rows).Error
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch revenue"})
			return
		}

		c.JSON(200, gin.H{"monthlyRevenue": rows})
	}
}
