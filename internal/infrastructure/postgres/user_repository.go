package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, full_name, phone, department, designation, role, status, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Phone, u.Department, u.Designation,
		u.Role.String(), u.Status.String(), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `lower(email) = lower($1)`, email)
}

func (r *UserRepo) getOne(ctx context.Context, cond, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+cond, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update actualiza perfil, rol y estado.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET full_name = $2, phone = $3, department = $4, designation = $5, role = $6, status = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.FullName, u.Phone, u.Department, u.Designation, u.Role.String(), u.Status.String(), u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista el equipo por nombre.
func (r *UserRepo) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, int, error) {
	var w where
	if filter.Role != nil {
		w.add("role = $%[1]d", filter.Role.String())
	}
	if filter.Status != nil {
		w.add("status = $%[1]d", filter.Status.String())
	}
	w.search(filter.Search, "full_name", "email")

	total, err := w.count(ctx, r.q, "users")
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY full_name`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Count total de usuarios registrados.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// Delete elimina un usuario. Los documentos que creó conservan created_by en NULL.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role, status string
	if err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Department, &u.Designation,
		&role, &status, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if u.Role, err = entity.ParseRole(role); err != nil {
		return nil, err
	}
	if u.Status, err = entity.ParseUserStatus(status); err != nil {
		return nil, err
	}
	return &u, nil
}
