package sqlcrepo

import (
	"context"

	"orderdesk-backend/db/sqlc"
	"orderdesk-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	db      *pgxpool.Pool
	queries *sqlc.Queries
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepository{
		db:      db,
		queries: sqlc.New(db),
	}
}

// --- Mappers ---

func sqlcUserToDomain(u sqlc.User) *domain.User {
	return &domain.User{
		ID:           uuidToString(u.ID),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    pgtimeToTime(u.CreatedAt),
		UpdatedAt:    pgtimeToTime(u.UpdatedAt),
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	created, err := GetQueriesFromContext(ctx, r.queries).CreateUser(ctx, sqlc.CreateUserParams{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	*user = *sqlcUserToDomain(created)
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := GetQueriesFromContext(ctx, r.queries).GetUserByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(u), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	uid := stringToUUID(id)
	if !uid.Valid {
		return nil, domain.ErrUserNotFound
	}
	u, err := GetQueriesFromContext(ctx, r.queries).GetUserByID(ctx, uid)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(u), nil
}
