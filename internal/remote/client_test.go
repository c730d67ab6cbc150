package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/sports-predict-platform/pkg/models"
)

func respond(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestFetchGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/games", r.URL.Path)
		respond(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data": []models.Game{
				{ID: "g1", Status: models.StatusScheduled},
				{ID: "g2", Status: models.StatusInProgress},
			},
		})
	}))
	defer srv.Close()

	games, err := New(srv.URL).FetchGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "g1", games[0].ID)
}

func TestSubmitPrediction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/predictions", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "g1", req["gameId"])
		assert.Equal(t, "LAL", req["pick"])
		assert.Equal(t, 40.0, req["amount"])
		assert.Equal(t, "user1", req["userId"])

		respond(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"prediction": models.Prediction{ID: "p1", GameID: "g1", Pick: "LAL", Amount: 40, Result: models.ResultPending},
				"newBalance": 60.0,
			},
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL).SubmitPrediction(context.Background(), "g1", "LAL", 40, "user1")
	require.NoError(t, err)
	assert.Equal(t, "p1", res.Prediction.ID)
	assert.Equal(t, 60.0, res.NewBalance)
}

func TestApplicationErrorOnEnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Insufficient balance",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).SubmitPrediction(context.Background(), "g1", "LAL", 500, "user1")
	assert.ErrorIs(t, err, ErrApplication)
	assert.Contains(t, err.Error(), "Insufficient balance")
	assert.True(t, IsTransport(err))
}

func TestApplicationErrorOnSuccessFalseWith200(t *testing.T) {
	// success=false vale como falha mesmo com status 2xx
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusOK, map[string]any{"success": false, "error": "nope"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchGames(context.Background())
	assert.ErrorIs(t, err, ErrApplication)
}

func TestBadStatusWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchGames(context.Background())
	assert.ErrorIs(t, err, ErrBadStatus)
	assert.True(t, IsTransport(err))
}

func TestMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": `)) // truncado
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchGames(context.Background())
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // derruba antes da chamada

	_, err := New(srv.URL).FetchGames(context.Background())
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.True(t, IsTransport(err))
}

func TestFetchUserAndHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/user1":
			respond(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    models.User{ID: "user1", Username: "player_one", Balance: 80},
			})
		case "/api/health":
			respond(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]string{"message": "ok", "version": "1.0.0"},
			})
		default:
			respond(t, w, http.StatusNotFound, map[string]any{"success": false, "error": "not found"})
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	u, err := c.FetchUser(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, 80.0, u.Balance)

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", h.Version)

	_, err = c.FetchUser(context.Background(), "other")
	assert.ErrorIs(t, err, ErrApplication)
}
