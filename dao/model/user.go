package model

import "gorm.io/gorm"

// User is an admin account for the backoffice. Public reads never need one.
type User struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;type:varchar(32);not null"`
	Password string `gorm:"type:varchar(128);not null"` // bcrypt hash
	Role     Role   `gorm:"type:varchar(16);not null"`
}
