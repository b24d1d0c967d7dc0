package entity_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

func TestParseEnums_ValoresValidos(t *testing.T) {
	qs, err := entity.ParseQuotationStatus("Accepted")
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationAccepted, qs)

	is, err := entity.ParseInvoiceStatus("overdue")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceOverdue, is)

	f, err := entity.ParseFrequency("half-yearly")
	require.NoError(t, err)
	assert.Equal(t, entity.FrequencyHalfYearly, f)

	pm, err := entity.ParsePaymentMethod(" bank-transfer ")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentBankTransfer, pm)

	r, err := entity.ParseRole("manager")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, r)

	us, err := entity.ParseUserStatus("suspended")
	require.NoError(t, err)
	assert.Equal(t, entity.UserSuspended, us)

	cs, err := entity.ParseCustomerStatus("inactive")
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerInactive, cs)

	inv, err := entity.ParseInvitationStatus("expired")
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationExpired, inv)
}

func TestParseEnums_ValorInvalidoEsErrInvalidInput(t *testing.T) {
	_, err := entity.ParseQuotationStatus("archived")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = entity.ParseRole("superuser")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = entity.ParsePaymentMethod("")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEnums_StringIdaYVuelta(t *testing.T) {
	for _, s := range []entity.QuotationStatus{entity.QuotationDraft, entity.QuotationSent, entity.QuotationAccepted, entity.QuotationRejected} {
		got, err := entity.ParseQuotationStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, f := range []entity.Frequency{entity.FrequencyOneTime, entity.FrequencyMonthly, entity.FrequencyQuarterly, entity.FrequencyHalfYearly, entity.FrequencyAnnually, entity.FrequencyCustom} {
		got, err := entity.ParseFrequency(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	assert.Equal(t, "unknown", entity.Role(99).String())
}

func TestEnums_JSON(t *testing.T) {
	type payload struct {
		Status entity.InvoiceStatus `json:"status"`
		Method entity.PaymentMethod `json:"payment_method"`
	}

	b, err := json.Marshal(payload{Status: entity.InvoicePaid, Method: entity.PaymentUPI})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"paid","payment_method":"upi"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"status":"overdue","payment_method":"cash"}`), &p))
	assert.Equal(t, entity.InvoiceOverdue, p.Status)
	assert.Equal(t, entity.PaymentCash, p.Method)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"void"}`), &p))
}

func TestTeamInvitation_EffectiveStatus(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	pending := &entity.TeamInvitation{Status: entity.InvitationPending, ExpiresAt: now.Add(time.Hour)}
	assert.Equal(t, entity.InvitationPending, pending.EffectiveStatus(now))
	assert.True(t, pending.CanAccept(now))

	expired := &entity.TeamInvitation{Status: entity.InvitationPending, ExpiresAt: now.Add(-time.Minute)}
	assert.Equal(t, entity.InvitationExpired, expired.EffectiveStatus(now))
	assert.False(t, expired.CanAccept(now))

	cancelled := &entity.TeamInvitation{Status: entity.InvitationCancelled, ExpiresAt: now.Add(time.Hour)}
	assert.Equal(t, entity.InvitationCancelled, cancelled.EffectiveStatus(now))
	assert.False(t, cancelled.CanAccept(now))
}

func TestInvoice_IsOverdue(t *testing.T) {
	today := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	due := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	inv := &entity.Invoice{Status: entity.InvoiceUnpaid, DueDate: due}
	assert.True(t, inv.IsOverdue(today))

	inv.DueDate = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.False(t, inv.IsOverdue(today), "vence hoy: aún no está vencida")

	inv.DueDate = due
	inv.Status = entity.InvoicePaid
	assert.False(t, inv.IsOverdue(today))
}
