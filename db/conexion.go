package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Conectar inicializa el pool contra la base de datos del sitio municipal y
// comprueba la conexión antes de devolverlo.
func Conectar(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
