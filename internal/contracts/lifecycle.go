package contracts

import "github.com/digitalagency-id/agency_be/internal/models"

type Action string

const (
	ActionSign     Action = "sign"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionRenew    Action = "renew"
)

// transitions is the single definition of contract status legality. Both the
// HTTP guards and the action lists sent to the UI derive from it, so the two
// can never disagree.
var transitions = map[models.ContractStatus][]Action{
	models.ContractDraft:     {ActionSign, ActionCancel},
	models.ContractActive:    {ActionComplete, ActionCancel, ActionRenew},
	models.ContractRenewed:   {ActionComplete, ActionCancel, ActionRenew},
	models.ContractCompleted: {},
	models.ContractCancelled: {},
}

// AllowedActions is a pure function of status.
func AllowedActions(status models.ContractStatus) []Action {
	actions, ok := transitions[status]
	if !ok {
		return nil
	}
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

func CanTransition(status models.ContractStatus, action Action) bool {
	for _, a := range transitions[status] {
		if a == action {
			return true
		}
	}
	return false
}

func IsTerminal(status models.ContractStatus) bool {
	return len(transitions[status]) == 0
}
