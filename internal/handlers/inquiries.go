package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/models"
	"github.com/elitecars/rental-backend/pkg/utils"
)

type InquiryInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateInquiry accepts a public contact-form submission
func CreateInquiry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input InquiryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		inquiry := models.Inquiry{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Message: input.Message,
		}

		if result := db.Create(&inquiry); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to submit inquiry"})
			return
		}

		go func(email, name, subject string) {
			if err := utils.SendInquiryAcknowledgementEmail(email, name, subject); err != nil {
				log.Printf("Error sending inquiry acknowledgement: %v", err)
			}
		}(inquiry.Email, inquiry.Name, inquiry.Subject)

		c.JSON(201, gin.H{"message": "Inquiry submitted"})
	}
}

// GetInquiries lists contact inquiries for the back office, unread
// first
func GetInquiries(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Inquiry{})
		if c.Query("unread") == "true" {
			query = query.Where("read = ?", false)
		}

		var inquiries []models.Inquiry
		if result := query.Order("read ASC, created_at DESC").Find(&inquiries); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch inquiries"})
			return
		}

		c.JSON(200, gin.H{"inquiries": inquiries})
	}
}

// MarkInquiryRead flags an inquiry as handled
func MarkInquiryRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inquiry models.Inquiry
		if result := db.First(&inquiry, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Inquiry not found"})
			return
		}

		if result := db.Model(&inquiry).Update("read", true); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update inquiry"})
			return
		}

		c.JSON(200, gin.H{"message": "Inquiry marked as read"})
	}
}

func DeleteInquiry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inquiry models.Inquiry
		if result := db.First(&inquiry, c.Param("id")); result.Error != nil {
			c.JSON(404, gin.H{"error": "Inquiry not found"})
			return
		}

		if result := db.Delete(&inquiry); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to delete inquiry"})
			return
		}

		c.JSON(200, gin.H{"message": "Inquiry deleted"})
	}
}
