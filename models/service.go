package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ServiceType classifies a service offering.
type ServiceType string

const (
	ServiceTypeNormal ServiceType = "Normal"
	ServiceTypeVIP    ServiceType = "VIP"
)

func (t ServiceType) Valid() bool {
	return t == ServiceTypeNormal || t == ServiceTypeVIP
}

type Service struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CategoryID  uint        `gorm:"index;not null" json:"categoryId"`
	ServiceName string      `gorm:"type:varchar(255);not null" json:"serviceName"`
	Type        ServiceType `gorm:"type:varchar(10);not null;default:'Normal';check:chk_services_type,type IN ('Normal','VIP')" json:"type"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	PriceOptions []PriceOption `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"priceOptions,omitempty"`
}

func (Service) TableName() string {
	return "services"
}

// Validate checks the scalar invariants of a service row.
func (s *Service) Validate() error {
	if !s.Type.Valid() {
		return fmt.Errorf("invalid service type %q", s.Type)
	}
	return nil
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	return s.Validate()
}
