package snapshot

import (
	"context"
	"database/sql"
)

// PostgresBlob guarda snapshots em uma tabela chave-valor simples.
//
// Esquema esperado:
//
//	CREATE TABLE app_snapshots (
//	  key        TEXT PRIMARY KEY,
//	  data       JSONB NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresBlob struct {
	DB *sql.DB
}

func NewPostgresBlob(db *sql.DB) *PostgresBlob { return &PostgresBlob{DB: db} }

func (p *PostgresBlob) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var b []byte
	err := p.DB.QueryRowContext(ctx, `SELECT data FROM app_snapshots WHERE key=$1`, key).Scan(&b)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set insere ou atualiza o snapshot via ON CONFLICT para evitar duplicidade
// por chave.
func (p *PostgresBlob) Set(ctx context.Context, key string, data []byte) error {
	const q = `
		INSERT INTO app_snapshots (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
		  data       = EXCLUDED.data,
		  updated_at = EXCLUDED.updated_at
	`
	_, err := p.DB.ExecContext(ctx, q, key, data)
	return err
}
