package repository

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// InvitationFilter criterios de listado de invitaciones.
// Status InvitationExpired se resuelve contra Now (pending con expires_at <= Now).
type InvitationFilter struct {
	Status *entity.InvitationStatus
	Now    time.Time
	Limit  int
	Offset int
}

// InvitationRepository define el puerto de persistencia para TeamInvitation.
type InvitationRepository interface {
	Create(ctx context.Context, inv *entity.TeamInvitation) error
	GetByID(ctx context.Context, id string) (*entity.TeamInvitation, error)
	GetByToken(ctx context.Context, token string) (*entity.TeamInvitation, error)
	// GetPendingByEmail devuelve la invitación pendiente (vigente o no) para el email.
	GetPendingByEmail(ctx context.Context, email string) (*entity.TeamInvitation, error)
	Update(ctx context.Context, inv *entity.TeamInvitation) error
	List(ctx context.Context, filter InvitationFilter) ([]*entity.TeamInvitation, int, error)
}
