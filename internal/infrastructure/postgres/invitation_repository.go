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

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

const invitationColumns = `id, email, role, department, designation, token, COALESCE(invited_by::text, ''),
	expires_at, status, accepted_at, created_at, updated_at`

// InvitationRepo implementación de InvitationRepository sobre team_invitations.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

// Create persiste una invitación.
func (r *InvitationRepo) Create(ctx context.Context, inv *entity.TeamInvitation) error {
	query := `
		INSERT INTO team_invitations (id, email, role, department, designation, token, invited_by,
		                              expires_at, status, accepted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Email, inv.Role.String(), inv.Department, inv.Designation, inv.Token, nullIfEmpty(inv.InvitedBy),
		inv.ExpiresAt, inv.Status.String(), inv.AcceptedAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invitación pendiente para %s", domain.ErrConflict, inv.Email)
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByID obtiene una invitación por ID.
func (r *InvitationRepo) GetByID(ctx context.Context, id string) (*entity.TeamInvitation, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByToken obtiene una invitación por token.
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (*entity.TeamInvitation, error) {
	return r.getOne(ctx, `token = $1`, token)
}

// GetPendingByEmail obtiene la invitación pendiente del email, vigente o vencida.
func (r *InvitationRepo) GetPendingByEmail(ctx context.Context, email string) (*entity.TeamInvitation, error) {
	return r.getOne(ctx, `lower(email) = lower($1) AND status = 'pending'`, email)
}

func (r *InvitationRepo) getOne(ctx context.Context, cond, arg string) (*entity.TeamInvitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx, `SELECT `+invitationColumns+` FROM team_invitations WHERE `+cond, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}

// Update guarda token, vigencia y estado.
func (r *InvitationRepo) Update(ctx context.Context, inv *entity.TeamInvitation) error {
	query := `
		UPDATE team_invitations
		SET token = $2, expires_at = $3, status = $4, accepted_at = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, inv.ID, inv.Token, inv.ExpiresAt, inv.Status.String(), inv.AcceptedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista invitaciones, más recientes primero. Pending y expired se distinguen contra filter.Now.
func (r *InvitationRepo) List(ctx context.Context, filter repository.InvitationFilter) ([]*entity.TeamInvitation, int, error) {
	var w where
	if filter.Status != nil {
		switch *filter.Status {
		case entity.InvitationPending:
			w.add("status = 'pending' AND expires_at > $%[1]d", filter.Now)
		case entity.InvitationExpired:
			w.add("status = 'pending' AND expires_at <= $%[1]d", filter.Now)
		default:
			w.add("status = $%[1]d", filter.Status.String())
		}
	}

	total, err := w.count(ctx, r.q, "team_invitations")
	if err != nil {
		return nil, 0, fmt.Errorf("count invitations: %w", err)
	}
	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+invitationColumns+` FROM team_invitations`+w.String()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	var list []*entity.TeamInvitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}

func scanInvitation(row pgx.Row) (*entity.TeamInvitation, error) {
	var inv entity.TeamInvitation
	var role, status string
	if err := row.Scan(
		&inv.ID, &inv.Email, &role, &inv.Department, &inv.Designation, &inv.Token, &inv.InvitedBy,
		&inv.ExpiresAt, &status, &inv.AcceptedAt, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if inv.Role, err = entity.ParseRole(role); err != nil {
		return nil, err
	}
	if inv.Status, err = entity.ParseInvitationStatus(status); err != nil {
		return nil, err
	}
	return &inv, nil
}
