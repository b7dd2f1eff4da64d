package model

import "gorm.io/gorm"

type Project struct {
	gorm.Model
	Title       string  `gorm:"type:varchar(256);not null"`
	Description *string `gorm:"type:text"`
	PhotoURL    *string `gorm:"type:varchar(512)"`
	ProjectLink *string `gorm:"type:varchar(512)"`

	Feedbacks []ProjectFeedback `gorm:"constraint:OnDelete:CASCADE"`
	TechMaps  []ProjectTechMap  `gorm:"constraint:OnDelete:CASCADE"`
}

// ProjectFeedback is a client review owned by a project and removed with it.
type ProjectFeedback struct {
	gorm.Model
	ProjectID           uint    `gorm:"not null;index"`
	ClientName          string  `gorm:"type:varchar(128);not null"`
	ClientPhoto         *string `gorm:"type:varchar(512)"`
	FeedbackDescription *string `gorm:"type:text"`
	Rating              int     `gorm:"not null"`
}

// ProjectTechMap joins projects and service techs. Its rows block tech deletion.
type ProjectTechMap struct {
	gorm.Model
	ProjectID uint `gorm:"not null;index"`
	TechID    uint `gorm:"not null;index"`

	Project Project     `gorm:"foreignKey:ProjectID"`
	Tech    ServiceTech `gorm:"foreignKey:TechID"`
}
