package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/domain/session"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// DefaultInvitationTTL vigencia de una invitación si la configuración no indica otra.
const DefaultInvitationTTL = 7 * 24 * time.Hour

// InvitationUseCase invitaciones al equipo. Crear, reenviar y cancelar requieren admin.
type InvitationUseCase struct {
	repo     repository.InvitationRepository
	userRepo repository.UserRepository
	validate *validation.Validator
	ttl      time.Duration
	log      *logger.Logger
	now      func() time.Time
}

// NewInvitationUseCase construye el caso de uso. ttl <= 0 usa DefaultInvitationTTL.
func NewInvitationUseCase(
	repo repository.InvitationRepository,
	userRepo repository.UserRepository,
	validate *validation.Validator,
	ttl time.Duration,
	log *logger.Logger,
) *InvitationUseCase {
	if ttl <= 0 {
		ttl = DefaultInvitationTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InvitationUseCase{
		repo:     repo,
		userRepo: userRepo,
		validate: validate,
		ttl:      ttl,
		log:      log.Named("invitations"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvitationUseCase) WithClock(now func() time.Time) *InvitationUseCase {
	uc.now = now
	return uc
}

// Create invita un email con un rol. Rechaza emails ya registrados o con una invitación vigente.
// Una invitación pendiente pero vencida se cancela y se reemplaza.
func (uc *InvitationUseCase) Create(ctx context.Context, sess session.Session, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := uc.now()
	prev, err := uc.repo.GetPendingByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		if prev.CanAccept(now) {
			return nil, fmt.Errorf("%w: ya existe una invitación pendiente para %s", domain.ErrConflict, email)
		}
		prev.Status = entity.InvitationCancelled
		prev.UpdatedAt = now
		if err := uc.repo.Update(ctx, prev); err != nil {
			return nil, err
		}
	}

	inv := &entity.TeamInvitation{
		ID:          uuid.New().String(),
		Email:       email,
		Role:        role,
		Department:  in.Department,
		Designation: in.Designation,
		Token:       uuid.New().String(),
		InvitedBy:   sess.UserID,
		ExpiresAt:   now.Add(uc.ttl),
		Status:      entity.InvitationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("invitation_id", inv.ID).Str("email", email).Str("role", role.String()).Msg("invitación creada")
	return toInvitationResponse(inv, now, true), nil
}

// Resend renueva token y vigencia de una invitación pendiente o vencida.
func (uc *InvitationUseCase) Resend(ctx context.Context, sess session.Session, id string) (*dto.InvitationResponse, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	inv, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != entity.InvitationPending {
		return nil, fmt.Errorf("%w: la invitación está %s", domain.ErrConflict, inv.Status)
	}
	now := uc.now()
	inv.Token = uuid.New().String()
	inv.ExpiresAt = now.Add(uc.ttl)
	inv.UpdatedAt = now
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("invitation_id", inv.ID).Msg("invitación reenviada")
	return toInvitationResponse(inv, now, true), nil
}

// Cancel cancela una invitación pendiente.
func (uc *InvitationUseCase) Cancel(ctx context.Context, sess session.Session, id string) error {
	if !sess.IsAdmin() {
		return domain.ErrForbidden
	}
	inv, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != entity.InvitationPending {
		return fmt.Errorf("%w: la invitación está %s", domain.ErrConflict, inv.Status)
	}
	inv.Status = entity.InvitationCancelled
	inv.UpdatedAt = uc.now()
	return uc.repo.Update(ctx, inv)
}

// List lista invitaciones; el filtro expired devuelve pendientes ya vencidas.
func (uc *InvitationUseCase) List(ctx context.Context, sess session.Session, in dto.InvitationListRequest) (*dto.InvitationListResponse, error) {
	if !sess.CanManage() {
		return nil, domain.ErrForbidden
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	now := uc.now()
	filter := repository.InvitationFilter{Now: now, Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		s, err := entity.ParseInvitationStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &s
	}
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.InvitationListResponse{
		Items: make([]dto.InvitationResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, inv := range list {
		out.Items = append(out.Items, *toInvitationResponse(inv, now, false))
	}
	return out, nil
}

func (uc *InvitationUseCase) find(ctx context.Context, id string) (*entity.TeamInvitation, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func toInvitationResponse(inv *entity.TeamInvitation, now time.Time, withToken bool) *dto.InvitationResponse {
	out := &dto.InvitationResponse{
		ID:          inv.ID,
		Email:       inv.Email,
		Role:        inv.Role.String(),
		Department:  inv.Department,
		Designation: inv.Designation,
		Status:      inv.EffectiveStatus(now).String(),
		InvitedBy:   inv.InvitedBy,
		ExpiresAt:   inv.ExpiresAt,
		CreatedAt:   inv.CreatedAt,
	}
	if withToken {
		out.Token = inv.Token
	}
	return out
}
