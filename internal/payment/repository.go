package payment

import (
	"context"
	"database/sql"

	db "roadside/db/sqlc"
)

type InterfaceRepository interface {
	CreateTransaction(ctx context.Context, arg db.CreateTransactionParams) (db.Transaction, error)
	UpdateServiceRequestPaymentStatus(ctx context.Context, arg db.UpdateServiceRequestPaymentStatusParams) (int64, error)
}

type Repository struct {
	Conn    *sql.DB
	Queries *db.Queries
}

func NewPaymentRepository(conn *sql.DB) *Repository {
	return &Repository{
		Conn:    conn,
		Queries: db.New(conn),
	}
}

func (r *Repository) CreateTransaction(ctx context.Context, arg db.CreateTransactionParams) (db.Transaction, error) {
	return r.Queries.CreateTransaction(ctx, arg)
}

func (r *Repository) UpdateServiceRequestPaymentStatus(ctx context.Context, arg db.UpdateServiceRequestPaymentStatusParams) (int64, error) {
	return r.Queries.UpdateServiceRequestPaymentStatus(ctx, arg)
}
