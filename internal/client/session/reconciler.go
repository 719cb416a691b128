package session

import (
	"context"

	"github.com/nutrilog/client-go/internal/client/api"
	"github.com/nutrilog/client-go/internal/client/models"
	"github.com/nutrilog/client-go/internal/common"
	"github.com/nutrilog/client-go/internal/logging"
)

// Reconciler keeps the server's coarse ProfileSetupComplete flag aligned with
// the evaluator's fine-grained verdict.
//
// It only ever writes the flag to false: lowering a wrongly-raised flag is a
// safe correction, while raising it belongs to the explicit finalization
// action a user triggers by completing the last step — never to a passive
// load, which might be acting on an inconsistent partial read.
type Reconciler struct {
	api api.Client
	log logging.Logger
}

func NewReconciler(apiClient api.Client, log logging.Logger) *Reconciler {
	if log == nil {
		log = logging.Nop()
	}
	return &Reconciler{api: apiClient, log: log}
}

// Reconcile compares the freshly fetched profile's flag against the verdict
// and issues a correcting write when the server claims completion the
// evaluator disproves. The write is best-effort: on failure the evaluator's
// verdict is still trusted locally and the returned profile carries the
// corrected flag.
func (r *Reconciler) Reconcile(ctx context.Context, token string, profile *models.Profile, verdict Verdict) *models.Profile {
	if profile == nil {
		return nil
	}

	if profile.ProfileSetupComplete && !verdict.Complete() {
		r.log.Info(ctx, "server flag disagrees with evaluated steps, correcting",
			"completed", len(verdict.CompletedSteps))

		complete := false
		updated, err := r.api.UpdateProfile(ctx, token, api.ProfilePatch{ProfileSetupComplete: &complete})
		if err != nil {
			r.log.Warn(ctx, "flag correction write failed, trusting local verdict", "error", err)
			profile.ProfileSetupComplete = false
			return profile
		}
		return updated
	}

	// Server incomplete + evaluator complete is left alone here: finalization
	// is user-triggered via FinalizeOnboarding.
	return profile
}

// FinalizeOnboarding raises the server flag after the user completes the
// final step. Rejected when the evaluator disagrees that every step is
// satisfied. Unlike Reconcile this write is not best-effort: the caller needs
// to know whether onboarding actually ended.
func (r *Reconciler) FinalizeOnboarding(ctx context.Context, token string, profile *models.Profile) (*models.Profile, error) {
	if !Evaluate(profile).Complete() {
		return nil, common.ErrOnboardingIncomplete
	}

	complete := true
	return r.api.UpdateProfile(ctx, token, api.ProfilePatch{ProfileSetupComplete: &complete})
}
