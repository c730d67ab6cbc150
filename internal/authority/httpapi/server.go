package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/sports-predict-platform/internal/authority"
	"github.com/radieske/sports-predict-platform/internal/authority/dto"
	"github.com/radieske/sports-predict-platform/internal/ledger"
)

const apiVersion = "1.0.0"

// API expõe a superfície REST da autoridade.
// Callbacks de métricas podem ser usadas para monitorar palpites.
type API struct {
	Log  *zap.Logger
	Core *authority.Core

	OnAccepted func() // métricas (counter++)
	OnRejected func() // métricas
}

// Router retorna o roteador HTTP com os endpoints REST.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/health", a.health)
	r.Get("/api/games", a.listGames)
	r.Get("/api/games/{id}", a.getGame)
	r.Post("/api/predictions", a.submitPrediction)
	r.Get("/api/user/{id}", a.getUser)
	return r
}

// writeJSON serializa a resposta no envelope padrão com o status HTTP.
func writeJSON(w http.ResponseWriter, status int, env dto.Envelope) {
	if env.Timestamp == "" {
		env.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.Envelope{Success: false, Error: msg})
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.Envelope{
		Success: true,
		Data: dto.HealthInfo{
			Message: "authority-service is running",
			Version: apiVersion,
		},
	})
}

func (a *API) listGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.Envelope{Success: true, Data: a.Core.Games()})
}

func (a *API) getGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	game, ok := a.Core.Game(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Game not found")
		return
	}
	writeJSON(w, http.StatusOK, dto.Envelope{Success: true, Data: game})
}

func (a *API) submitPrediction(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitPredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.GameID == "" || req.Pick == "" || req.Amount == 0 || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: gameId, pick, amount, userId")
		return
	}

	p, newBalance, err := a.Core.PlacePrediction(r.Context(), req.GameID, req.Pick, req.Amount, req.UserID)
	if err != nil {
		if a.OnRejected != nil {
			a.OnRejected()
		}
		switch {
		case errors.Is(err, ledger.ErrGameNotFound):
			writeError(w, http.StatusNotFound, "Game not found")
		case errors.Is(err, ledger.ErrGameClosed):
			writeError(w, http.StatusBadRequest, "Cannot bet on completed games")
		case errors.Is(err, ledger.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "Amount must be positive")
		case errors.Is(err, ledger.ErrInsufficientBalance):
			writeError(w, http.StatusBadRequest, "Insufficient balance")
		case errors.Is(err, ledger.ErrDuplicateWager):
			writeError(w, http.StatusBadRequest, "Pending prediction already exists for this game")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to submit prediction")
		}
		return
	}

	if a.OnAccepted != nil {
		a.OnAccepted()
	}
	writeJSON(w, http.StatusOK, dto.Envelope{
		Success: true,
		Data:    dto.SubmitPredictionResult{Prediction: p, NewBalance: newBalance},
		Message: "Prediction submitted successfully",
	})
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, ok := a.Core.User(id)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, dto.Envelope{Success: true, Data: user})
}
