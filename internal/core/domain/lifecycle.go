package domain

// Transition names a lifecycle action on an invoice.
type Transition string

const (
	TransitionApprove  Transition = "approve"
	TransitionDecline  Transition = "decline"
	TransitionList     Transition = "list"
	TransitionPurchase Transition = "purchase"
	TransitionRepay    Transition = "repay"
)

// AllowedTransitions returns the set of transitions the given actor may
// perform on the invoice in its current state. This is the single
// authorization function for all role-gated branching: the state machine is
// Pending -> {Acknowledged, Withdrawn} -> Tokenized -> Sold -> Paid, with
// Withdrawn and Paid terminal, no skipped and no backward transitions.
func AllowedTransitions(actor Actor, inv Invoice) []Transition {
	if inv.Status.IsTerminal() {
		return nil
	}

	var out []Transition
	switch inv.Status {
	case StatusPending:
		// Only the matching buyer may acknowledge or decline.
		if actor.Role == RoleBuyer && actor.Email == inv.BuyerEmail {
			out = append(out, TransitionApprove, TransitionDecline)
		}
	case StatusAcknowledged:
		// Only the uploading MSME may list, and only after acknowledgement.
		if actor.Role == RoleMSME && actor.UserID == inv.CreatedBy && inv.BuyerAcknowledged {
			out = append(out, TransitionList)
		}
	case StatusTokenized:
		if actor.Role == RoleInvestor {
			out = append(out, TransitionPurchase)
		}
	case StatusSold:
		if actor.Role == RoleBuyer && actor.Email == inv.BuyerEmail {
			out = append(out, TransitionRepay)
		}
	}
	return out
}

// CanTransition reports whether the actor may perform t on the invoice.
func CanTransition(actor Actor, inv Invoice, t Transition) bool {
	for _, allowed := range AllowedTransitions(actor, inv) {
		if allowed == t {
			return true
		}
	}
	return false
}
