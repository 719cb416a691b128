package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/client-go/internal/client/api"
	"github.com/nutrilog/client-go/internal/client/models"
	"github.com/nutrilog/client-go/internal/common"
)

// fakeAPI implements api.Client for tests, recording calls.
type fakeAPI struct {
	loginToken   string
	loginProfile *models.Profile
	loginErr     error
	loginCalls   int

	currentProfile *models.Profile
	currentErr     error
	currentCalls   int

	updatePatches []api.ProfilePatch
	updateErr     error
}

func (f *fakeAPI) Login(_ context.Context, _ string, _ []byte) (string, *models.Profile, error) {
	f.loginCalls++
	return f.loginToken, cloneProfile(f.loginProfile), f.loginErr
}

func (f *fakeAPI) CurrentUser(_ context.Context, _ string) (*models.Profile, error) {
	f.currentCalls++
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return cloneProfile(f.currentProfile), nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, _ string, patch api.ProfilePatch) (*models.Profile, error) {
	f.updatePatches = append(f.updatePatches, patch)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p := cloneProfile(f.currentProfile)
	if p == nil {
		p = &models.Profile{}
	}
	if patch.ProfileSetupComplete != nil {
		p.ProfileSetupComplete = *patch.ProfileSetupComplete
	}
	return p, nil
}

func cloneProfile(p *models.Profile) *models.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func TestReconcile_ServerTrueEvaluatorIncomplete_WritesFalse(t *testing.T) {
	f := &fakeAPI{}
	p := &models.Profile{Email: "a@x.com", FirstName: "Ann", LastName: "Lee", ProfileSetupComplete: true}
	f.currentProfile = p

	r := NewReconciler(f, nil)
	got := r.Reconcile(context.Background(), "tok", p, Evaluate(p))

	require.Len(t, f.updatePatches, 1)
	require.NotNil(t, f.updatePatches[0].ProfileSetupComplete)
	assert.False(t, *f.updatePatches[0].ProfileSetupComplete)
	assert.False(t, got.ProfileSetupComplete)
}

func TestReconcile_ServerFalseEvaluatorComplete_NoWrite(t *testing.T) {
	f := &fakeAPI{}
	p := completeProfile()
	p.ProfileSetupComplete = false

	r := NewReconciler(f, nil)
	got := r.Reconcile(context.Background(), "tok", p, Evaluate(p))

	assert.Empty(t, f.updatePatches, "reconciler must never raise the flag")
	assert.False(t, got.ProfileSetupComplete)
}

func TestReconcile_Agreement_NoWrite(t *testing.T) {
	f := &fakeAPI{}
	p := completeProfile()
	p.ProfileSetupComplete = true

	r := NewReconciler(f, nil)
	r.Reconcile(context.Background(), "tok", p, Evaluate(p))
	assert.Empty(t, f.updatePatches)
}

func TestReconcile_WriteFailure_LocalVerdictStillTrusted(t *testing.T) {
	f := &fakeAPI{updateErr: errors.New("network down")}
	p := &models.Profile{FirstName: "Ann", LastName: "Lee", ProfileSetupComplete: true}

	r := NewReconciler(f, nil)
	got := r.Reconcile(context.Background(), "tok", p, Evaluate(p))

	require.NotNil(t, got)
	assert.False(t, got.ProfileSetupComplete)
}

func TestFinalizeOnboarding_IncompleteRejected(t *testing.T) {
	f := &fakeAPI{}
	p := &models.Profile{FirstName: "Ann", LastName: "Lee"}

	r := NewReconciler(f, nil)
	_, err := r.FinalizeOnboarding(context.Background(), "tok", p)
	assert.ErrorIs(t, err, common.ErrOnboardingIncomplete)
	assert.Empty(t, f.updatePatches)
}

func TestFinalizeOnboarding_CompleteWritesTrue(t *testing.T) {
	p := completeProfile()
	f := &fakeAPI{currentProfile: p}

	r := NewReconciler(f, nil)
	got, err := r.FinalizeOnboarding(context.Background(), "tok", p)
	require.NoError(t, err)

	require.Len(t, f.updatePatches, 1)
	require.NotNil(t, f.updatePatches[0].ProfileSetupComplete)
	assert.True(t, *f.updatePatches[0].ProfileSetupComplete)
	assert.True(t, got.ProfileSetupComplete)
}
