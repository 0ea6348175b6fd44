package model

import (
	"time"

	"github.com/google/uuid"
)

// Contract references its client by id only. The client row can be
// deleted while its contracts live on end-dated, so there is no
// foreign key and no owning pointer here.
type Contract struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"clientId"`
	StartDate  time.Time  `gorm:"type:date;not null" json:"startDate"`
	EndDate    *time.Time `gorm:"type:date" json:"endDate"`
	CostAmount float64    `json:"costAmount"`
	UpdateDate time.Time  `gorm:"not null" json:"updateDate"`
}

// Active reports whether the contract is open as of the given date:
// no end date, or an end date strictly in the future.
func (c Contract) Active(asOf time.Time) bool {
	return c.EndDate == nil || c.EndDate.After(asOf)
}
