package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutrilog/client-go/internal/client/models"
)

func completeProfile() *models.Profile {
	return &models.Profile{
		Email:              "a@x.com",
		FirstName:          "Ann",
		LastName:           "Lee",
		HeightCm:           170,
		WeightKg:           61,
		DateOfBirth:        "1992-04-01",
		DietaryPreferences: []string{"vegetarian"},
		ActivityLevel:      "moderate",
		FitnessGoals:       []string{"lose weight"},
	}
}

func TestEvaluate_AllStepsComplete(t *testing.T) {
	v := Evaluate(completeProfile())
	assert.True(t, v.Complete())
	assert.Equal(t, []Step{StepName, StepStats, StepDiet, StepGoals}, v.CompletedSteps)

	last, ok := v.LastCompleted()
	assert.True(t, ok)
	assert.Equal(t, StepGoals, last)
}

func TestEvaluate_NameOnly(t *testing.T) {
	p := &models.Profile{FirstName: "Ann", LastName: "Lee"}
	v := Evaluate(p)

	assert.Equal(t, []Step{StepName}, v.CompletedSteps)
	last, ok := v.LastCompleted()
	assert.True(t, ok)
	assert.Equal(t, StepName, last)
	assert.False(t, v.Complete())
}

func TestEvaluate_PrefixMonotonicity(t *testing.T) {
	// Later-step fields populated while an earlier step is unsatisfied must
	// never surface the later step.
	p := completeProfile()
	p.FirstName = ""

	v := Evaluate(p)
	assert.Empty(t, v.CompletedSteps)

	_, ok := v.LastCompleted()
	assert.False(t, ok)
}

func TestEvaluate_StatsGateDiet(t *testing.T) {
	p := completeProfile()
	p.WeightKg = 0

	v := Evaluate(p)
	assert.Equal(t, []Step{StepName}, v.CompletedSteps)
}

func TestEvaluate_GoalsRejectBlankElements(t *testing.T) {
	p := completeProfile()
	p.FitnessGoals = []string{"lose weight", "  "}

	v := Evaluate(p)
	assert.Equal(t, []Step{StepName, StepStats, StepDiet}, v.CompletedSteps)
}

func TestEvaluate_IgnoresServerFlag(t *testing.T) {
	// The server-declared flag is not an input; an empty profile with the
	// flag raised still evaluates to zero steps.
	p := &models.Profile{ProfileSetupComplete: true}
	v := Evaluate(p)
	assert.Empty(t, v.CompletedSteps)
}

func TestEvaluate_NilProfile(t *testing.T) {
	v := Evaluate(nil)
	assert.Empty(t, v.CompletedSteps)
	assert.False(t, v.Complete())
}

func TestEvaluate_EveryPrefixReachable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Profile)
		want   []Step
	}{
		{"nothing", func(p *models.Profile) { *p = models.Profile{} }, nil},
		{"name", func(p *models.Profile) { p.HeightCm = 0 }, []Step{StepName}},
		{"name+stats", func(p *models.Profile) { p.ActivityLevel = "" }, []Step{StepName, StepStats}},
		{"name+stats+diet", func(p *models.Profile) { p.FitnessGoals = nil }, []Step{StepName, StepStats, StepDiet}},
		{"all", func(p *models.Profile) {}, []Step{StepName, StepStats, StepDiet, StepGoals}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := completeProfile()
			tc.mutate(p)
			assert.Equal(t, tc.want, Evaluate(p).CompletedSteps)
		})
	}
}
