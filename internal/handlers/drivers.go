package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/models"
	"github.com/elitecars/rental-backend/internal/services"
)

type DriverInput struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	LicenseNumber string `json:"licenseNumber" binding:"required"`
}

// GetDrivers lists all drivers with their current confirmed assignment,
// if any. Admin only.
func GetDrivers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var drivers []models.Driver
		if result := db.Order("name ASC").Find(&drivers); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch drivers"})
			return
		}

		out := make([]gin.H, 0, len(drivers))
		for _, d := range drivers {
			entry := gin.H{"driver": d}

			var current models.Booking
			if err := db.Preload("Car").
				Where("driver_id = ? AND status = ?", d.ID, models.BookingStatusConfirmed).
				First(&current).Error; err == nil {
				entry["currentBooking"] = gin.H{
					"id":        current.ID,
					"reference": current.Reference,
					"car":       current.Car,
				}
			}
			out = append(out, entry)
		}

		c.JSON(200, gin.H{"drivers": out})
	}
}

func CreateDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DriverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		driver := models.Driver{
			Name:          input.Name,
			Phone:         input.Phone,
			LicenseNumber: input.LicenseNumber,
			Available:     true,
		}

		if result := db.Create(&driver); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create driver"})
			return
		}

		c.JSON(201, gin.H{"driver": driver})
	}
}

func UpdateDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if result := db.First(&driver, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		var input DriverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{
			"name":           input.Name,
			"phone":          input.Phone,
			"license_number": input.LicenseNumber,
		}
		if result := db.Model(&driver).Updates(updates); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update driver"})
			return
		}

		c.JSON(200, gin.H{"driver": driver})
	}
}

// ToggleDriverAvailability flips the manual availability flag
func ToggleDriverAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if result := db.First(&driver, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		newValue := !driver.Available
		if result := db.Model(&driver).Update("available", newValue); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update availability"})
			return
		}

		services.SetDriverAvailability(c.Request.Context(), driver.ID, newValue)

		c.JSON(200, gin.H{"id": driver.ID, "available": newValue})
	}
}

// DeleteDriver removes a driver that has no confirmed assignment
func DeleteDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if result := db.First(&driver, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		var assigned int64
		db.Model(&models.Booking{}).
			Where("driver_id = ? AND status = ?", driver.ID, models.BookingStatusConfirmed).
			Count(&assigned)
		if assigned > 0 {
			c.JSON(409, gin.H{"error": "Driver is assigned to a confirmed booking"})
			return
		}

		if result := db.Delete(&driver); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to delete driver"})
			return
		}

		c.JSON(200, gin.H{"message": "Driver deleted"})
	}
}
