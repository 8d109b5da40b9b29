package controllers

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// txBeginner is the slice of *pgxpool.Pool the write controllers need to
// open a transaction, kept narrow so tests can substitute it.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
