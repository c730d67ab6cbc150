package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/radieske/sports-predict-platform/pkg/models"
)

// envelope é o invólucro padrão de toda resposta da autoridade.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// SubmitResult é o payload de sucesso do submit de palpite: a autoridade
// recalcula o saldo e o cliente o adota sem re-derivar.
type SubmitResult struct {
	Prediction models.Prediction `json:"prediction"`
	NewBalance float64           `json:"newBalance"`
}

type submitRequest struct {
	GameID string  `json:"gameId"`
	Pick   string  `json:"pick"`
	Amount float64 `json:"amount"`
	UserID string  `json:"userId"`
}

// HealthInfo é o payload do healthcheck público.
type HealthInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// Client fala com a API REST da autoridade. Timeout limitado: expirar
// conta como indisponível e dispara o fallback local do coordinator.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

func (c *Client) FetchGames(ctx context.Context) ([]models.Game, error) {
	var out []models.Game
	if err := c.do(ctx, http.MethodGet, "/api/games", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchGame(ctx context.Context, id string) (models.Game, error) {
	var out models.Game
	if err := c.do(ctx, http.MethodGet, "/api/games/"+id, nil, &out); err != nil {
		return models.Game{}, err
	}
	return out, nil
}

func (c *Client) SubmitPrediction(ctx context.Context, gameID, pick string, amount float64, userID string) (SubmitResult, error) {
	req := submitRequest{GameID: gameID, Pick: pick, Amount: amount, UserID: userID}
	var out SubmitResult
	if err := c.do(ctx, http.MethodPost, "/api/predictions", &req, &out); err != nil {
		return SubmitResult{}, err
	}
	return out, nil
}

func (c *Client) FetchUser(ctx context.Context, id string) (models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/user/"+id, nil, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) Health(ctx context.Context) (HealthInfo, error) {
	var out HealthInfo
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return HealthInfo{}, err
	}
	return out, nil
}

// do executa a chamada e decodifica o envelope.
// Regras: falha de rede/timeout => ErrUnreachable; corpo indecifrável =>
// ErrMalformedPayload; não-2xx sem envelope => ErrBadStatus; não-2xx ou
// success=false com mensagem => ErrApplication.
func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		if res.StatusCode >= 300 {
			return fmt.Errorf("%w: http %d", ErrBadStatus, res.StatusCode)
		}
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if res.StatusCode >= 300 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("http %d", res.StatusCode)
		}
		return fmt.Errorf("%w: %s", ErrApplication, msg)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
	}
	return nil
}
