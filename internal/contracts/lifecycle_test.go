package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/digitalagency-id/agency_be/internal/models"
)

func TestAllowedActions(t *testing.T) {
	tests := []struct {
		status models.ContractStatus
		want   []Action
	}{
		{models.ContractDraft, []Action{ActionSign, ActionCancel}},
		{models.ContractActive, []Action{ActionComplete, ActionCancel, ActionRenew}},
		{models.ContractRenewed, []Action{ActionComplete, ActionCancel, ActionRenew}},
		{models.ContractCompleted, []Action{}},
		{models.ContractCancelled, []Action{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedActions(tt.status))
		})
	}

	assert.Nil(t, AllowedActions(models.ContractStatus("bogus")))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.ContractDraft, ActionSign))
	assert.True(t, CanTransition(models.ContractDraft, ActionCancel))
	assert.False(t, CanTransition(models.ContractDraft, ActionComplete))
	assert.False(t, CanTransition(models.ContractDraft, ActionRenew))

	// sign is a draft-only action
	assert.False(t, CanTransition(models.ContractActive, ActionSign))
	assert.False(t, CanTransition(models.ContractRenewed, ActionSign))

	// terminal states allow nothing
	for _, a := range []Action{ActionSign, ActionComplete, ActionCancel, ActionRenew} {
		assert.False(t, CanTransition(models.ContractCompleted, a))
		assert.False(t, CanTransition(models.ContractCancelled, a))
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(models.ContractDraft))
	assert.False(t, IsTerminal(models.ContractActive))
	assert.False(t, IsTerminal(models.ContractRenewed))
	assert.True(t, IsTerminal(models.ContractCompleted))
	assert.True(t, IsTerminal(models.ContractCancelled))
}
