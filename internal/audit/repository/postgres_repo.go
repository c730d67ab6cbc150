package repository

import (
	"context"
	"database/sql"

	"github.com/radieske/sports-predict-platform/pkg/contracts/events"
)

// PostgresRepo persiste a trilha de auditoria de palpites aceitos.
//
// Esquema esperado:
//
//	CREATE TABLE prediction_audit (
//	  prediction_id TEXT PRIMARY KEY,
//	  user_id       TEXT NOT NULL,
//	  game_id       TEXT NOT NULL,
//	  pick          TEXT NOT NULL,
//	  amount        NUMERIC(12,2) NOT NULL,
//	  new_balance   NUMERIC(12,2) NOT NULL,
//	  placed_at_ms  BIGINT NOT NULL,
//	  recorded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// Insert grava um palpite na trilha; ON CONFLICT garante idempotência no
// reprocessamento de mensagens.
func (r *PostgresRepo) Insert(ctx context.Context, e events.PredictionPlaced) error {
	const q = `
		INSERT INTO prediction_audit
		  (prediction_id, user_id, game_id, pick, amount, new_balance, placed_at_ms)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (prediction_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.PredictionID, e.UserID, e.GameID, e.Pick, e.Amount, e.NewBalance, e.TsUnixMs,
	)
	return err
}
