package models

// SolveResponse is the body of a successful POST /api/v1/solve.
type SolveResponse struct {
	Status                string         `json:"status"`
	FinalUtility           float64        `json:"final_utility"`
	FinalSoC               float64        `json:"final_soc"`
	PossiblyNonElementary  bool           `json:"possibly_non_elementary"`
	Steps                  []StepResponse `json:"steps"`
}

type StepResponse struct {
	ActivityID int     `json:"activity_id"`
	Group      int     `json:"group"`
	StartTime  int     `json:"start_time"`
	Duration   int     `json:"duration"`

	SoCStart float64 `json:"soc_start"`
	SoCEnd   float64 `json:"soc_end"`

	ChargeMode     string  `json:"charge_mode,omitempty"`
	ChargeDuration int     `json:"charge_duration"`
	ChargeCost     float64 `json:"charge_cost"`

	CumulativeUtility float64 `json:"cumulative_utility"`
}

// ErrorResponse is the body of any non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
