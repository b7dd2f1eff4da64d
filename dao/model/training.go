package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Mentor is stored on its own because one mentor can appear in many trainings.
// Name is normalized (trimmed, lowercased) before insert, see handler.
type Mentor struct {
	gorm.Model
	Name           string  `gorm:"type:varchar(128);not null"`
	PhotoURL       *string `gorm:"type:varchar(512)"`
	Specialization *string `gorm:"type:varchar(128)"`
}

type Training struct {
	gorm.Model
	Title         string           `gorm:"type:varchar(256);not null"`
	Description   *string          `gorm:"type:text"`
	PhotoURL      *string          `gorm:"type:varchar(512)"`
	BasePrice     decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	DiscountValue *decimal.Decimal `gorm:"type:decimal(10,2)"`
	DiscountKind  *DiscountKind    `gorm:"type:varchar(16)"`

	Benefits        []TrainingBenefit `gorm:"constraint:OnDelete:CASCADE"`
	TrainingMentors []TrainingMentor  `gorm:"constraint:OnDelete:CASCADE"`
}

// TrainingBenefit is one line of the ordered benefit list.
// Position is reassigned 0..n-1 whenever the list is replaced.
type TrainingBenefit struct {
	gorm.Model
	TrainingID uint   `gorm:"not null;index"`
	Text       string `gorm:"type:varchar(512);not null"`
	Position   int    `gorm:"not null;default:0"`
}

// TrainingMentor joins trainings and mentors. Its rows block mentor deletion.
type TrainingMentor struct {
	gorm.Model
	TrainingID uint `gorm:"not null;index"`
	MentorID   uint `gorm:"not null;index"`

	Training Training `gorm:"foreignKey:TrainingID"`
	Mentor   Mentor   `gorm:"foreignKey:MentorID"`
}
