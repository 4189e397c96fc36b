package model

import "time"

// Submission is one recorded claim. ID is assigned by the store on insert
// and increases with insertion order.
type Submission struct {
	ID          int64     `json:"id"`
	Phone       string    `json:"phone"`
	CardCode    string    `json:"card_code"`
	BenefitCode string    `json:"benefit_code"`
	CreatedAt   time.Time `json:"created_at"`
}
