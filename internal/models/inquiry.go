package models

import "gorm.io/gorm"

// Inquiry is a submitted contact-form message, independent of the
// booking lifecycle.
type Inquiry struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null"`
	Subject string `json:"subject" gorm:"not null"`
	Message string `json:"message" gorm:"not null"`
	Read    bool   `json:"read" gorm:"not null;default:false"`
}

// TableName specifies the table name
func (Inquiry) TableName() string {
	return "contact_inquiries"
}
