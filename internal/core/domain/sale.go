package domain

import (
	"fmt"
	"time"
)

// SalesTransaction links a car to the customer who bought it and the agent
// who sold it. A car appears in at most one transaction (unique car_id).
type SalesTransaction struct {
	ID         int64     `json:"id"`
	CarID      int64     `json:"car_id"`
	CustomerID int64     `json:"customer_id"`
	AgentID    int64     `json:"agent_id"`
	Comments   string    `json:"comments,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CreatedBy  string    `json:"created_by,omitempty"`
	UpdatedBy  string    `json:"updated_by,omitempty"`
}

// NaturalKey renders the identifying fields used in audit messages.
func (s SalesTransaction) NaturalKey() string {
	return fmt.Sprintf("#%d (car %d, customer %d, agent %d)", s.ID, s.CarID, s.CustomerID, s.AgentID)
}

// SaleDetail is a transaction with its related rows eager-loaded for the
// read path.
type SaleDetail struct {
	SalesTransaction
	Car      *Car  `json:"car,omitempty"`
	Customer *User `json:"customer,omitempty"`
	Agent    *User `json:"agent,omitempty"`
}
