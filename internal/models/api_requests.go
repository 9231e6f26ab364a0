package models

// PlayerMetricsQuery is the query string of the player metrics endpoint.
type PlayerMetricsQuery struct {
	Name    string `validate:"required,max=100"`
	Surface string `validate:"omitempty,oneof=Hard Clay Grass Indoor hard clay grass indoor"`
}

// PredictQuery is the query string of the predict endpoint.
type PredictQuery struct {
	Player1 string `validate:"required,max=100"`
	Player2 string `validate:"required,max=100"`
	Surface string `validate:"omitempty,oneof=Hard Clay Grass Indoor hard clay grass indoor"`
}

// RefreshResponse reports the outcome of a forced refresh.
type RefreshResponse struct {
	Player  string `json:"player"`
	Matches int    `json:"matches"`
	Source  string `json:"source,omitempty"`
}

// PredictionHistoryQuery is the query string of the prediction history endpoint.
type PredictionHistoryQuery struct {
	Player  string `validate:"omitempty,max=100"`
	Surface string `validate:"omitempty,oneof=Hard Clay Grass Indoor hard clay grass indoor"`
	Limit   int    `validate:"gte=0,lte=1000"`
}
