package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const pqUniqueViolation = "23505"

type PostgresUserRepositoryImpl struct {
	db *sqlx.DB
}

func CreatePostgresUserRepository(db *sqlx.DB) UserRepository {
	return &PostgresUserRepositoryImpl{db: db}
}

func (r *PostgresUserRepositoryImpl) getUser(ctx context.Context, component string, query string, arg interface{}) (res domain.User, err error) {
	row := r.db.QueryRowxContext(ctx, query, arg)
	err = row.StructScan(&res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return res, errs.ErrInternalServer
	}

	return
}

func (r *PostgresUserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (res domain.User, err error) {
	return r.getUser(ctx, "GetUserByEmail", "SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL", email)
}

func (r *PostgresUserRepositoryImpl) GetUserByExternalID(ctx context.Context, externalID string) (res domain.User, err error) {
	res, err = r.getUser(ctx, "GetUserByExternalID", "SELECT * FROM users WHERE external_id = $1 AND deleted_at IS NULL", externalID)
	if err == nil && res.ID == 0 {
		return res, errs.ErrAccountNotFound
	}

	return
}

func (r *PostgresUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id int64, err error) {
	nstmt, err := r.db.PrepareNamedContext(ctx, "INSERT INTO users(name, email, external_id, hashed_password, role, created_at, updated_at) VALUES (:name, :email, :external_id, :hashed_password, :role, :created_at, :updated_at) returning id")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}
	defer nstmt.Close()

	err = nstmt.GetContext(ctx, &id, data)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return 0, errs.ErrEmailAlreadyUsed
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	return id, nil
}
