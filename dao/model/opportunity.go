package model

import "gorm.io/gorm"

// Opportunity is a job or internship posting. Exactly one detail record is
// attached, matching Type. The type cannot change after creation.
type Opportunity struct {
	gorm.Model
	Title       string          `gorm:"type:varchar(256);not null"`
	Description *string         `gorm:"type:text"`
	Location    *string         `gorm:"type:varchar(128)"`
	Type        OpportunityType `gorm:"type:varchar(16);not null"`

	JobDetail        *JobDetail               `gorm:"constraint:OnDelete:CASCADE"`
	InternshipDetail *InternshipDetail        `gorm:"constraint:OnDelete:CASCADE"`
	Requirements     []OpportunityRequirement `gorm:"constraint:OnDelete:CASCADE"`
}

type JobDetail struct {
	gorm.Model
	OpportunityID  uint    `gorm:"not null;uniqueIndex"`
	EmploymentType *string `gorm:"type:varchar(64)"`
	SalaryRange    *string `gorm:"type:varchar(64)"`
}

type InternshipDetail struct {
	gorm.Model
	OpportunityID  uint    `gorm:"not null;uniqueIndex"`
	DurationMonths *int    `gorm:"type:int"`
	Stipend        *string `gorm:"type:varchar(64)"`
}

// OpportunityRequirement is one line of the ordered requirement list.
type OpportunityRequirement struct {
	gorm.Model
	OpportunityID uint   `gorm:"not null;index"`
	Text          string `gorm:"type:varchar(512);not null"`
	Position      int    `gorm:"not null;default:0"`
}
