package session

import (
	"strings"

	"github.com/nutrilog/client-go/internal/client/models"
)

// Step is one of the ordered onboarding milestones. Completion is always a
// prefix of the order: a later step counts only when every earlier one does.
type Step int

const (
	StepName Step = iota
	StepStats
	StepDiet
	StepGoals
)

// Steps lists all onboarding steps in order.
var Steps = []Step{StepName, StepStats, StepDiet, StepGoals}

func (s Step) String() string {
	switch s {
	case StepName:
		return "name"
	case StepStats:
		return "stats"
	case StepDiet:
		return "diet"
	case StepGoals:
		return "goals"
	default:
		return "unknown"
	}
}

// Verdict is the evaluator's result: the completed prefix of Steps.
type Verdict struct {
	CompletedSteps []Step
}

// Complete reports whether every onboarding step is satisfied.
func (v Verdict) Complete() bool {
	return len(v.CompletedSteps) == len(Steps)
}

// LastCompleted returns the furthest satisfied step, if any.
func (v Verdict) LastCompleted() (Step, bool) {
	if len(v.CompletedSteps) == 0 {
		return 0, false
	}
	return v.CompletedSteps[len(v.CompletedSteps)-1], true
}

// Evaluate computes which onboarding steps the profile satisfies. It is a
// projection purely of the profile's own field values; the server-declared
// ProfileSetupComplete flag is never consulted. Evaluation short-circuits at
// the first unsatisfied step, which is what enforces the prefix property.
func Evaluate(p *models.Profile) Verdict {
	if p == nil {
		return Verdict{}
	}

	var completed []Step
	for _, step := range Steps {
		if !stepSatisfied(p, step) {
			break
		}
		completed = append(completed, step)
	}
	return Verdict{CompletedSteps: completed}
}

func stepSatisfied(p *models.Profile, step Step) bool {
	switch step {
	case StepName:
		return strings.TrimSpace(p.FirstName) != "" && strings.TrimSpace(p.LastName) != ""
	case StepStats:
		return p.HeightCm > 0 && p.WeightKg > 0 && strings.TrimSpace(p.DateOfBirth) != ""
	case StepDiet:
		return len(p.DietaryPreferences) > 0 && strings.TrimSpace(p.ActivityLevel) != ""
	case StepGoals:
		if len(p.FitnessGoals) == 0 {
			return false
		}
		for _, g := range p.FitnessGoals {
			if strings.TrimSpace(g) == "" {
				return false
			}
		}
		return true
	default:
		return false
	}
}
