package entity

import "time"

// TeamInvitation invitación a un correo para unirse al equipo con un rol.
type TeamInvitation struct {
	ID          string
	Email       string
	Role        Role
	Department  string
	Designation string
	Token       string
	InvitedBy   string
	ExpiresAt   time.Time
	Status      InvitationStatus // nunca InvitationExpired en base de datos
	AcceptedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectiveStatus estado visible: una invitación pendiente vencida se reporta como expired.
func (inv *TeamInvitation) EffectiveStatus(now time.Time) InvitationStatus {
	if inv.Status == InvitationPending && !now.Before(inv.ExpiresAt) {
		return InvitationExpired
	}
	return inv.Status
}

// CanAccept indica si la invitación sigue pendiente y vigente.
func (inv *TeamInvitation) CanAccept(now time.Time) bool {
	return inv.EffectiveStatus(now) == InvitationPending
}
