package searchlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository appends and lists search history. Rows are never updated.
type Repository interface {
	AppendAddressSearch(ctx context.Context, s AddressSearch) error
	AppendTransactionSearch(ctx context.Context, s TransactionSearch) error
	ListAddressSearches(ctx context.Context, creatorID string, limit, offset int) ([]AddressSearch, error)
	ListTransactionSearches(ctx context.Context, creatorID string, limit, offset int) ([]TransactionSearch, error)
}

// PostgresRepository stores search history in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed history repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AppendAddressSearch(ctx context.Context, s AddressSearch) error {
	id, creator, err := parseIDs(s.ID, s.CreatorID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO address_searches (id, crypto, address, page, size, creator_id, created)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`, id, s.Crypto, s.Address, s.Page, s.Size, creator, s.Created.UTC())
	return err
}

func (r *PostgresRepository) AppendTransactionSearch(ctx context.Context, s TransactionSearch) error {
	id, creator, err := parseIDs(s.ID, s.CreatorID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO transaction_searches (id, crypto, transaction, creator_id, created)
        VALUES ($1, $2, $3, $4, $5)`, id, s.Crypto, s.Transaction, creator, s.Created.UTC())
	return err
}

func (r *PostgresRepository) ListAddressSearches(ctx context.Context, creatorID string, limit, offset int) ([]AddressSearch, error) {
	creator, err := uuid.Parse(creatorID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, crypto, address, page, size, creator_id, created
        FROM address_searches WHERE creator_id = $1
        ORDER BY created DESC, id DESC LIMIT $2 OFFSET $3`, creator, limit, offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (AddressSearch, error) {
		var (
			s         AddressSearch
			id, owner uuid.UUID
			created   time.Time
		)
		if err := row.Scan(&id, &s.Crypto, &s.Address, &s.Page, &s.Size, &owner, &created); err != nil {
			return AddressSearch{}, err
		}
		s.ID, s.CreatorID, s.Created = id.String(), owner.String(), created.UTC()
		return s, nil
	})
}

func (r *PostgresRepository) ListTransactionSearches(ctx context.Context, creatorID string, limit, offset int) ([]TransactionSearch, error) {
	creator, err := uuid.Parse(creatorID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, crypto, transaction, creator_id, created
        FROM transaction_searches WHERE creator_id = $1
        ORDER BY created DESC, id DESC LIMIT $2 OFFSET $3`, creator, limit, offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (TransactionSearch, error) {
		var (
			s         TransactionSearch
			id, owner uuid.UUID
			created   time.Time
		)
		if err := row.Scan(&id, &s.Crypto, &s.Transaction, &owner, &created); err != nil {
			return TransactionSearch{}, err
		}
		s.ID, s.CreatorID, s.Created = id.String(), owner.String(), created.UTC()
		return s, nil
	})
}

func parseIDs(id, creatorID string) (uuid.UUID, uuid.UUID, error) {
	rowID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	creator, err := uuid.Parse(creatorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return rowID, creator, nil
}
