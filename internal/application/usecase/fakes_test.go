package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

type memProducts struct {
	byID map[string]*entity.Product
}

func newMemProducts() *memProducts { return &memProducts{byID: map[string]*entity.Product{}} }

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProducts) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range m.byID {
		if f.ActiveOnly && !p.Active {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

// invalidations registra los IDs invalidados en la caché del catálogo.
type invalidations []string

func (i *invalidations) Invalidate(id string) { *i = append(*i, id) }

type memUsers struct {
	byID map[string]*entity.User
}

func newMemUsers(us ...*entity.User) *memUsers {
	m := &memUsers{byID: map[string]*entity.User{}}
	for _, u := range us {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) List(_ context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range m.byID {
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		if f.Status != nil && u.Status != *f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(u.Email, f.Search) && !strings.Contains(u.FullName, f.Search) {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *memUsers) Count(context.Context) (int, error) { return len(m.byID), nil }

func (m *memUsers) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memInvitations struct {
	byID map[string]*entity.TeamInvitation
}

func newMemInvitations() *memInvitations {
	return &memInvitations{byID: map[string]*entity.TeamInvitation{}}
}

func (m *memInvitations) Create(_ context.Context, inv *entity.TeamInvitation) error {
	cp := *inv
	m.byID[inv.ID] = &cp
	return nil
}

func (m *memInvitations) GetByID(_ context.Context, id string) (*entity.TeamInvitation, error) {
	inv, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *memInvitations) GetByToken(_ context.Context, token string) (*entity.TeamInvitation, error) {
	for _, inv := range m.byID {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memInvitations) GetPendingByEmail(_ context.Context, email string) (*entity.TeamInvitation, error) {
	for _, inv := range m.byID {
		if inv.Email == email && inv.Status == entity.InvitationPending {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memInvitations) Update(_ context.Context, inv *entity.TeamInvitation) error {
	cp := *inv
	m.byID[inv.ID] = &cp
	return nil
}

func (m *memInvitations) List(_ context.Context, f repository.InvitationFilter) ([]*entity.TeamInvitation, int, error) {
	var out []*entity.TeamInvitation
	for _, inv := range m.byID {
		if f.Status != nil && inv.EffectiveStatus(f.Now) != *f.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, len(out), nil
}

func (m *memInvitations) pendingFor(email string) []*entity.TeamInvitation {
	var out []*entity.TeamInvitation
	for _, inv := range m.byID {
		if inv.Email == email && inv.Status == entity.InvitationPending {
			out = append(out, inv)
		}
	}
	return out
}

// clock reloj manual para los tests de vigencia.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
