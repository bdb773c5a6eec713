package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/lifecycle"
	"github.com/elitecars/rental-backend/internal/models"
)

type RateBookingInput struct {
	Rating int    `json:"rating" binding:"required"`
	Review string `json:"review"`
}

// RateBooking records a 1-5 rating with optional review text on the
// customer's own completed booking. A booking can be rated once.
func RateBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		userID := c.MustGet("userId").(uint)

		var booking models.Booking
		if result := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&booking); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		patch, err := lifecycle.RatingPatch(&booking, input.Rating, input.Review)
		if err != nil {
			switch {
			case errors.Is(err, lifecycle.ErrNotCompleted):
				c.JSON(409, gin.H{"error": "Only completed bookings can be rated"})
			case errors.Is(err, lifecycle.ErrAlreadyRated):
				c.JSON(409, gin.H{"error": "Booking has already been rated"})
			case errors.Is(err, lifecycle.ErrInvalidRating):
				c.JSON(400, gin.H{"error": "Rating must be between 1 and 5"})
			default:
				c.JSON(500, gin.H{"error": "Failed to rate booking"})
			}
			return
		}

		if result := db.Model(&booking).Updates(patch); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to save rating"})
			return
		}

		c.JSON(200, gin.H{"message": "Rating saved", "rating": input.Rating})
	}
}

// GetAllReviews lists every rated booking for the back office
func GetAllReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookings []models.Booking
		if result := db.Preload("User").Preload("Car").
			Where("rating IS NOT NULL").
			Order("updated_at DESC").
			Find(&bookings); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		reviews := make([]gin.H, 0, len(bookings))
		var sum int
		for _, b := range bookings {
			entry := gin.H{
				"bookingId": b.ID,
				"reference": b.Reference,
				"rating":    *b.Rating,
				"createdAt": b.UpdatedAt,
			}
			if b.User != nil {
				entry["customerName"] = b.User.FullName
			}
			if b.Car != nil {
				entry["carName"] = b.Car.Name
			}
			if b.ReviewText != nil {
				entry["review"] = *b.ReviewText
			}
			reviews = append(reviews, entry)
			sum += *b.Rating
		}

		average := 0.0
		if len(reviews) > 0 {
			average = float64(sum) / float64(len(reviews))
		}

		c.JSON(200, gin.H{"reviews": reviews, "average": average, "count": len(reviews)})
	}
}

// GetCarRatings lists the reviews left on a car's completed bookings,
// for the storefront detail page
func GetCarRatings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookings []models.Booking
		if result := db.Preload("User").
			Where("car_id = ? AND rating IS NOT NULL", c.Param("id")).
			Order("updated_at DESC").
			Find(&bookings); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch ratings"})
			return
		}

		ratings := make([]gin.H, 0, len(bookings))
		var sum int
		for _, b := range bookings {
			name := "Customer"
			if b.User != nil {
				name = b.User.FullName
			}
			entry := gin.H{
				"rating":       *b.Rating,
				"customerName": name,
				"createdAt":    b.UpdatedAt,
			}
			if b.ReviewText != nil {
				entry["review"] = *b.ReviewText
			}
			ratings = append(ratings, entry)
			sum += *b.Rating
		}

		average := 0.0
		if len(ratings) > 0 {
			average = float64(sum) / float64(len(ratings))
		}

		c.JSON(200, gin.H{"ratings": ratings, "average": average, "count": len(ratings)})
	}
}
