package models

import "gorm.io/gorm"

// Driver is a chauffeur that can be attached to a booking. Availability
// follows the same mirror-of-booking-state rule as Car.
type Driver struct {
	gorm.Model
	Name          string `json:"name" gorm:"not null"`
	Phone         string `json:"phone" gorm:"not null"`
	LicenseNumber string `json:"licenseNumber" gorm:"not null"`
	Available     bool   `json:"available" gorm:"not null;default:true"`
}

// TableName specifies the table name
func (Driver) TableName() string {
	return "drivers"
}
