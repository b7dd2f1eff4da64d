package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SocialMedia is the structured link blob stored as a JSON column on Member.
type SocialMedia struct {
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	Website   *string `json:"website,omitempty"`
}

// Member is a team member or intern shown on the public site.
type Member struct {
	gorm.Model
	Name          string                              `gorm:"type:varchar(128);not null"`
	PhotoURL      *string                             `gorm:"type:varchar(512)"`
	Position      *string                             `gorm:"type:varchar(128)"`
	StartDate     *time.Time                          `gorm:"type:date"`
	EndDate       *time.Time                          `gorm:"type:date"`
	SocialMedia   *datatypes.JSONType[SocialMedia]    `gorm:"type:jsonb"`
	ContactEmail  *string                             `gorm:"type:varchar(256)"`
	PersonalEmail *string                             `gorm:"type:varchar(256)"`
	ContactNumber *string                             `gorm:"type:varchar(32)"`
	IsVisible     bool                                `gorm:"not null;default:true"`
	Role          MemberRole                          `gorm:"type:varchar(16);not null"`
}
