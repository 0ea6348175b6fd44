package model

import "time"

// ContractStatement is the export document for a client: its active
// contracts and their aggregate cost as of generation time.
type ContractStatement struct {
	Client      Client
	Contracts   []Contract
	TotalCost   float64
	GeneratedAt time.Time
}
