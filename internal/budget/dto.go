package budget

import "encoding/json"

type SaveBudgetDTO struct {
	Amount json.Number `json:"amount"`
}

type BudgetResponse struct {
	Amount    float64  `json:"amount"`
	Formatted string   `json:"formatted"`
	IsSet     bool     `json:"is_set"`
	State     State    `json:"notification_state"`
	Message   string   `json:"message,omitempty"`
	Alerts    []string `json:"alerts,omitempty"`
}
