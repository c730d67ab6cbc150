package dto

type SubmitPredictionRequest struct {
	GameID string  `json:"gameId"`
	Pick   string  `json:"pick"` // abreviação do time escolhido
	Amount float64 `json:"amount"`
	UserID string  `json:"userId"`
}
