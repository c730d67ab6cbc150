package events

// Evento publicado no tópico "prediction_placed" após a autoridade
// aceitar um palpite.
type PredictionPlaced struct {
	PredictionID string  `json:"prediction_id"`
	UserID       string  `json:"user_id"`
	GameID       string  `json:"game_id"`
	Pick         string  `json:"pick"`
	Amount       float64 `json:"amount"`
	NewBalance   float64 `json:"new_balance"`
	TsUnixMs     int64   `json:"ts_unix_ms"`
}
