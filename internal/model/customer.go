package model

import "time"

type Customer struct {
	CardCode   string    `json:"card_code"`
	Name       string    `json:"name"`
	AmountPaid int       `json:"amount_paid"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
