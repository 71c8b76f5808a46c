package addresses

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Repository persists registered addresses.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Address, error)
	Create(ctx context.Context, addr Address) error
	Delete(ctx context.Context, ownerID, crypto, address string) error
}

// PostgresRepository stores addresses in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByOwner returns the owner's addresses in registration order.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Address, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, crypto, address, owner_id, created_at
        FROM addresses WHERE owner_id = $1 ORDER BY created_at, id`, owner)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Address, error) {
		var (
			a         Address
			id        uuid.UUID
			ownerUUID uuid.UUID
			createdAt time.Time
		)
		if err := row.Scan(&id, &a.Crypto, &a.Address, &ownerUUID, &createdAt); err != nil {
			return Address{}, err
		}
		a.ID = id.String()
		a.OwnerID = ownerUUID.String()
		a.CreatedAt = createdAt.UTC()
		return a, nil
	})
}

// Create inserts an address; a duplicate triple yields ErrDuplicate.
func (r *PostgresRepository) Create(ctx context.Context, addr Address) error {
	id, err := uuid.Parse(addr.ID)
	if err != nil {
		return err
	}
	owner, err := uuid.Parse(addr.OwnerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO addresses (id, crypto, address, owner_id, created_at)
        VALUES ($1, $2, $3, $4, $5)`, id, addr.Crypto, addr.Address, owner, addr.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

// Delete removes the owner's address; a missing row yields ErrAddressNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, crypto, address string) error {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE owner_id = $1 AND crypto = $2 AND address = $3`, owner, crypto, address)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}
