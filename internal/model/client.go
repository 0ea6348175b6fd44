package model

import (
	"time"

	"github.com/google/uuid"
)

type ClientType string

const (
	ClientTypePerson  ClientType = "PERSON"
	ClientTypeCompany ClientType = "COMPANY"
)

// Client is stored in a single table for both variants; ClientType
// discriminates. BirthDate is set for PERSON, CompanyIdentifier for
// COMPANY, the other stays NULL.
type Client struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientType        ClientType `gorm:"type:varchar(16);not null;index" json:"clientType"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Email             string     `json:"email"`
	BirthDate         *time.Time `gorm:"type:date" json:"birthDate,omitempty"`
	CompanyIdentifier *string    `json:"companyIdentifier,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
