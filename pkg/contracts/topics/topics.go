package topics

const (
	// Predictions
	PredictionPlaced = "prediction_placed"

	// DLQs
	PredictionPlacedDLQ = "prediction_placed_dlq"
)
