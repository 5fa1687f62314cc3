package repository

import (
	"context"

	"github.com/leesummerdesigns/swissconnection/internal/models"
)

const userColumns = `id, email, password_hash, role, name, bio, avatar_url,
	postal_code, city, canton, latitude, longitude, languages, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role, name, languages)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	if user.Languages == nil {
		user.Languages = []string{}
	}
	return r.db.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.Role, user.Name, user.Languages,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) SetRole(ctx context.Context, userID int64, role string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
	`, userID, role)
	return err
}

type UpdateUserProfileInput struct {
	Name       *string
	Bio        *string
	AvatarURL  *string
	PostalCode *string
	City       *string
	Canton     *string
	Latitude   *float64
	Longitude  *float64
	Languages  *[]string
}

func (r *UserRepository) UpdateProfile(
	ctx context.Context,
	userID int64,
	input UpdateUserProfileInput,
) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
			bio = COALESCE($2, bio),
			avatar_url = COALESCE($3, avatar_url),
			postal_code = COALESCE($4, postal_code),
			city = COALESCE($5, city),
			canton = COALESCE($6, canton),
			latitude = COALESCE($7, latitude),
			longitude = COALESCE($8, longitude),
			languages = COALESCE($9, languages),
			updated_at = NOW()
		WHERE id = $10
		RETURNING ` + userColumns + `
	`
	return scanUser(r.db.QueryRow(ctx, query,
		input.Name,
		input.Bio,
		input.AvatarURL,
		input.PostalCode,
		input.City,
		input.Canton,
		input.Latitude,
		input.Longitude,
		input.Languages,
		userID,
	))
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Name,
		&user.Bio,
		&user.AvatarURL,
		&user.PostalCode,
		&user.City,
		&user.Canton,
		&user.Latitude,
		&user.Longitude,
		&user.Languages,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
