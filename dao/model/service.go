package model

import "gorm.io/gorm"

// Service is one service card on the public site, composed of a set of
// offerings and a tech stack via join tables.
type Service struct {
	gorm.Model
	Title       string  `gorm:"type:varchar(256);not null"`
	Description *string `gorm:"type:text"`
	PhotoURL    *string `gorm:"type:varchar(512)"`

	OfferingMaps []ServiceOfferingMap `gorm:"constraint:OnDelete:CASCADE"`
	TechMaps     []ServiceTechMap     `gorm:"constraint:OnDelete:CASCADE"`
}

// ServiceTech is a technology name referenced by services and projects.
type ServiceTech struct {
	gorm.Model
	Name string `gorm:"type:varchar(128);not null"`
}

// ServiceOffering is a feature bullet referenced by services.
type ServiceOffering struct {
	gorm.Model
	Name string `gorm:"type:varchar(128);not null"`
}

type ServiceTechMap struct {
	gorm.Model
	ServiceID uint `gorm:"not null;index"`
	TechID    uint `gorm:"not null;index"`

	Service Service     `gorm:"foreignKey:ServiceID"`
	Tech    ServiceTech `gorm:"foreignKey:TechID"`
}

type ServiceOfferingMap struct {
	gorm.Model
	ServiceID  uint `gorm:"not null;index"`
	OfferingID uint `gorm:"not null;index"`

	Service  Service         `gorm:"foreignKey:ServiceID"`
	Offering ServiceOffering `gorm:"foreignKey:OfferingID"`
}
