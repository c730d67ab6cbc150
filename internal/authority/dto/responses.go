package dto

import "github.com/radieske/sports-predict-platform/pkg/models"

// Envelope é o invólucro padrão de toda resposta da API.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SubmitPredictionResult carrega o palpite aceito e o saldo recalculado
// pela autoridade.
type SubmitPredictionResult struct {
	Prediction models.Prediction `json:"prediction"`
	NewBalance float64           `json:"newBalance"`
}

// HealthInfo é o payload do healthcheck público.
type HealthInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
