package model

import "time"

// Benefit is one entitlement package from the scheme catalog. The first
// characters of Code carry the payment tier the package belongs to.
// Commodities is an open name -> quantity mapping; quantities stay strings
// because the master files mix units ("2 kg", "1 dozen").
type Benefit struct {
	Code              string            `json:"benefit_code"`
	VesselType        string            `json:"vessel_type"`
	VesselDescription string            `json:"vessel_description"`
	VesselWeight      string            `json:"vessel_weight"`
	Commodities       map[string]string `json:"commodities"`
	CreatedAt         time.Time         `json:"created_at"`
}
