package domain_test

import (
	"testing"

	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func baseInvoice(status domain.InvoiceStatus) domain.Invoice {
	return domain.Invoice{
		InvoiceID:  "inv-1",
		BuyerEmail: "b@x.com",
		CreatedBy:  "msme-1",
		Status:     status,
	}
}

func TestAllowedTransitions_PendingBuyer(t *testing.T) {
	inv := baseInvoice(domain.StatusPending)
	buyer := domain.Actor{UserID: "buyer-1", Email: "b@x.com", Role: domain.RoleBuyer}

	got := domain.AllowedTransitions(buyer, inv)
	assert.ElementsMatch(t, []domain.Transition{domain.TransitionApprove, domain.TransitionDecline}, got)
}

func TestAllowedTransitions_PendingWrongBuyerEmail(t *testing.T) {
	inv := baseInvoice(domain.StatusPending)
	stranger := domain.Actor{UserID: "buyer-2", Email: "other@x.com", Role: domain.RoleBuyer}

	assert.Empty(t, domain.AllowedTransitions(stranger, inv))
}

func TestAllowedTransitions_AcknowledgedMSME(t *testing.T) {
	inv := baseInvoice(domain.StatusAcknowledged)
	inv.BuyerAcknowledged = true
	owner := domain.Actor{UserID: "msme-1", Email: "m@x.com", Role: domain.RoleMSME}
	otherMSME := domain.Actor{UserID: "msme-2", Email: "m2@x.com", Role: domain.RoleMSME}

	assert.Equal(t, []domain.Transition{domain.TransitionList}, domain.AllowedTransitions(owner, inv))
	assert.Empty(t, domain.AllowedTransitions(otherMSME, inv))
}

func TestAllowedTransitions_AcknowledgedWithoutFlag(t *testing.T) {
	// status=Acknowledged with buyer_acknowledged=false must never allow listing.
	inv := baseInvoice(domain.StatusAcknowledged)
	owner := domain.Actor{UserID: "msme-1", Email: "m@x.com", Role: domain.RoleMSME}

	assert.Empty(t, domain.AllowedTransitions(owner, inv))
}

func TestAllowedTransitions_TokenizedInvestor(t *testing.T) {
	inv := baseInvoice(domain.StatusTokenized)
	investor := domain.Actor{UserID: "inv-9", Email: "i@x.com", Role: domain.RoleInvestor}
	msme := domain.Actor{UserID: "msme-1", Email: "m@x.com", Role: domain.RoleMSME}

	assert.Equal(t, []domain.Transition{domain.TransitionPurchase}, domain.AllowedTransitions(investor, inv))
	assert.Empty(t, domain.AllowedTransitions(msme, inv))
}

func TestAllowedTransitions_SoldBuyerRepays(t *testing.T) {
	inv := baseInvoice(domain.StatusSold)
	buyer := domain.Actor{UserID: "buyer-1", Email: "b@x.com", Role: domain.RoleBuyer}
	investor := domain.Actor{UserID: "inv-9", Email: "i@x.com", Role: domain.RoleInvestor}

	assert.Equal(t, []domain.Transition{domain.TransitionRepay}, domain.AllowedTransitions(buyer, inv))
	assert.Empty(t, domain.AllowedTransitions(investor, inv))
}

func TestAllowedTransitions_TerminalStates(t *testing.T) {
	buyer := domain.Actor{UserID: "buyer-1", Email: "b@x.com", Role: domain.RoleBuyer}
	for _, status := range []domain.InvoiceStatus{domain.StatusWithdrawn, domain.StatusPaid} {
		inv := baseInvoice(status)
		assert.Empty(t, domain.AllowedTransitions(buyer, inv), "status %s must be terminal", status)
	}
}

func TestCanTransition(t *testing.T) {
	inv := baseInvoice(domain.StatusPending)
	buyer := domain.Actor{UserID: "buyer-1", Email: "b@x.com", Role: domain.RoleBuyer}

	assert.True(t, domain.CanTransition(buyer, inv, domain.TransitionApprove))
	assert.False(t, domain.CanTransition(buyer, inv, domain.TransitionRepay))
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, domain.StatusPaid.IsTerminal())
	assert.True(t, domain.StatusWithdrawn.IsTerminal())
	assert.False(t, domain.StatusTokenized.IsTerminal())

	assert.True(t, domain.StatusTokenized.IsOnChain())
	assert.True(t, domain.StatusSold.IsOnChain())
	assert.True(t, domain.StatusPaid.IsOnChain())
	assert.False(t, domain.StatusAcknowledged.IsOnChain())
}
