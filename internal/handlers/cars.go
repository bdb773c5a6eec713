package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/models"
	"github.com/elitecars/rental-backend/internal/services"
)

type CarInput struct {
	Name        string  `json:"name" binding:"required"`
	TripType    string  `json:"tripType" binding:"required,oneof=wedding airport long_trip"`
	Capacity    int     `json:"capacity" binding:"required,min=1"`
	PricePerDay float64 `json:"pricePerDay" binding:"required,gt=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

// GetCars lists the fleet for the storefront. Optional filters:
// ?trip_type=wedding|airport|long_trip and ?available=true.
func GetCars(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Car{})

		if tripType := c.Query("trip_type"); tripType != "" {
			query = query.Where("trip_type = ?", tripType)
		}
		if c.Query("available") == "true" {
			query = query.Where("available = ?", true)
		}

		var cars []models.Car
		if result := query.Order("created_at DESC").Find(&cars); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch cars"})
			return
		}

		c.JSON(200, gin.H{"cars": cars})
	}
}

func GetCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car models.Car
		if result := db.First(&car, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Car not found"})
			return
		}
		c.JSON(200, gin.H{"car": car})
	}
}

func CreateCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CarInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		car := models.Car{
			Name:        input.Name,
			TripType:    models.TripType(input.TripType),
			Capacity:    input.Capacity,
			PricePerDay: input.PricePerDay,
			Description: input.Description,
			ImageURL:    input.ImageURL,
			Available:   true,
		}

		if result := db.Create(&car); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create car"})
			return
		}

		c.JSON(201, gin.H{"car": car})
	}
}

func UpdateCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car models.Car
		if result := db.First(&car, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Car not found"})
			return
		}

		var input CarInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{
			"name":          input.Name,
			"trip_type":     input.TripType,
			"capacity":      input.Capacity,
			"price_per_day": input.PricePerDay,
			"description":   input.Description,
		}
		if input.ImageURL != "" {
			updates["image_url"] = input.ImageURL
		}

		if result := db.Model(&car).Updates(updates); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update car"})
			return
		}

		c.JSON(200, gin.H{"car": car})
	}
}

// ToggleCarAvailability lets an admin override the availability flag,
// for maintenance or offline bookings. The mirror in Redis is updated
// alongside the row.
func ToggleCarAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car models.Car
		if result := db.First(&car, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Car not found"})
			return
		}

		newValue := !car.Available
		if result := db.Model(&car).Update("available", newValue); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update availability"})
			return
		}

		services.SetCarAvailability(c.Request.Context(), car.ID, newValue)

		c.JSON(200, gin.H{"id": car.ID, "available": newValue})
	}
}

// UploadCarImage accepts a multipart image and attaches it to the car
func UploadCarImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car models.Car
		if result := db.First(&car, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Car not found"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "Image file required"})
			return
		}

		url, err := services.UploadImage(file, "cars")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload image: " + err.Error()})
			return
		}

		oldURL := car.ImageURL
		if result := db.Model(&car).Update("image_url", url); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to save image URL"})
			return
		}
		if oldURL != "" {
			services.DeleteImage(oldURL)
		}

		c.JSON(200, gin.H{"imageUrl": url})
	}
}

// DeleteCar removes a car that has no active bookings
func DeleteCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car models.Car
		if result := db.First(&car, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Car not found"})
			return
		}

		var active int64
		db.Model(&models.Booking{}).
			Where("car_id = ? AND status IN ?", car.ID,
				[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}).
			Count(&active)
		if active > 0 {
			c.JSON(409, gin.H{"error": "Car has active bookings"})
			return
		}

		if result := db.Delete(&car); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to delete car"})
			return
		}
		if car.ImageURL != "" {
			services.DeleteImage(car.ImageURL)
		}

		c.JSON(200, gin.H{"message": "Car deleted"})
	}
}
