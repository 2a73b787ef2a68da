package cancellation

import (
	"context"
	"database/sql"

	db "roadside/db/sqlc"

	"github.com/google/uuid"
)

type InterfaceRepository interface {
	GetProfileFcmToken(ctx context.Context, id uuid.UUID) (sql.NullString, error)
}

type Repository struct {
	Conn    *sql.DB
	Queries *db.Queries
}

func NewCancellationRepository(conn *sql.DB) *Repository {
	return &Repository{
		Conn:    conn,
		Queries: db.New(conn),
	}
}

func (r *Repository) GetProfileFcmToken(ctx context.Context, id uuid.UUID) (sql.NullString, error) {
	return r.Queries.GetProfileFcmToken(ctx, id)
}
