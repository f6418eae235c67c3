package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dtroode/georegions-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, name, email, address, lat, lng, regions, created_at, updated_at`

type UserRepository struct {
	db querier
	// forUpdate locks selected rows; set on transactional repositories.
	forUpdate bool
}

func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	regions, err := encodeRegions(user.Regions)
	if err != nil {
		return model.User{}, err
	}

	query := `INSERT INTO users (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Address, user.Coordinates.Lat, user.Coordinates.Lng,
		regions, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, classify("create user", err)
	}

	if user.Regions == nil {
		user.Regions = []string{}
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.User{}, classify("get user by id", err)
	}

	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify("list users", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, classify("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list users", err)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	regions, err := encodeRegions(user.Regions)
	if err != nil {
		return model.User{}, err
	}

	query := `UPDATE users
			  SET name = $2, email = $3, address = $4, lat = $5, lng = $6, regions = $7, updated_at = $8
			  WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Address, user.Coordinates.Lat, user.Coordinates.Lng,
		regions, user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, classify("update user", err)
	}
	if err := expectOneRow(res); err != nil {
		return model.User{}, err
	}

	if user.Regions == nil {
		user.Regions = []string{}
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return classify("delete user", err)
	}

	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		user    model.User
		regions []byte
	)
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Address, &user.Coordinates.Lat, &user.Coordinates.Lng,
		&regions, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}

	user.Regions = []string{}
	if len(regions) > 0 {
		if err := json.Unmarshal(regions, &user.Regions); err != nil {
			return model.User{}, fmt.Errorf("failed to decode regions: %w", err)
		}
	}

	return user, nil
}

func encodeRegions(regions []string) (string, error) {
	if regions == nil {
		regions = []string{}
	}
	b, err := json.Marshal(regions)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode regions: %w", model.ErrPersistence, err)
	}
	return string(b), nil
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func expectOneRow(res rowsAffecter) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to read affected rows: %w", model.ErrPersistence, err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
