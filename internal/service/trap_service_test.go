package service

import (
	"testing"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTrapService(t *testing.T) (*TrapService, *ProgressionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	progression := newProgression(db)
	return NewTrapService(repository.NewTrapRepository(db), progression), progression, db
}

func TestTrapStartUnknownType(t *testing.T) {
	svc, _, _ := newTrapService(t)

	_, err := svc.Start(1, "ponzi")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestTrapStartSnapshotsScenario(t *testing.T) {
	svc, _, db := newTrapService(t)

	result, err := svc.Start(1, "scam")
	require.NoError(t, err)
	assert.Equal(t, "The Investment Opportunity", result.Title)
	assert.Equal(t, 1, result.Step.Step)
	assert.Equal(t, 3, result.Step.Total)
	assert.NotEmpty(t, result.Step.Choices)

	var scenario model.TrapScenario
	require.NoError(t, db.First(&scenario, result.ScenarioID).Error)
	assert.Len(t, scenario.Data.Steps, 3, "full tree is snapshotted into the row")
}

func TestTrapAllSafeChoicesSurvive(t *testing.T) {
	svc, progression, _ := newTrapService(t)

	start, err := svc.Start(1, "impulse")
	require.NoError(t, err)

	var final *TrapChooseResult
	for i := 0; i < 3; i++ {
		final, err = svc.Choose(1, start.ScenarioID, 1)
		require.NoError(t, err)
	}
	assert.True(t, final.Finished)
	assert.Equal(t, model.TrapSurvived, final.Outcome)
	assert.Equal(t, 30, final.XPEarned)

	stats, err := progression.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, 30, stats.TotalXP, "trap XP goes through the ledger")
}

func TestTrapOneUnsafeChoiceTraps(t *testing.T) {
	svc, progression, _ := newTrapService(t)

	start, err := svc.Start(1, "impulse")
	require.NoError(t, err)

	choices := []int{0, 1, 1}
	var final *TrapChooseResult
	for _, choice := range choices {
		final, err = svc.Choose(1, start.ScenarioID, choice)
		require.NoError(t, err)
	}
	assert.Equal(t, model.TrapTrapped, final.Outcome)
	assert.Equal(t, 10, final.XPEarned)

	stats, err := progression.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalXP)
}

func TestTrapIntermediateStepReturnsNext(t *testing.T) {
	svc, _, _ := newTrapService(t)

	start, err := svc.Start(1, "scam")
	require.NoError(t, err)

	result, err := svc.Choose(1, start.ScenarioID, 2)
	require.NoError(t, err)
	assert.True(t, result.Safe)
	assert.False(t, result.Finished)
	require.NotNil(t, result.NextStep)
	assert.Equal(t, 2, result.NextStep.Step)
}

func TestTrapChooseGuards(t *testing.T) {
	svc, _, _ := newTrapService(t)

	_, err := svc.Choose(1, 999, 0)
	assert.ErrorIs(t, err, util.ErrNotFound)

	start, err := svc.Start(1, "scam")
	require.NoError(t, err)

	_, err = svc.Choose(2, start.ScenarioID, 0)
	assert.ErrorIs(t, err, util.ErrNotFound, "sessions are owner-scoped")

	_, err = svc.Choose(1, start.ScenarioID, 7)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	for i := 0; i < 3; i++ {
		_, err = svc.Choose(1, start.ScenarioID, 1)
		require.NoError(t, err)
	}
	_, err = svc.Choose(1, start.ScenarioID, 1)
	assert.ErrorIs(t, err, util.ErrInvalidState, "completed sessions reject choices")
}

func TestTrapListTypes(t *testing.T) {
	svc, _, _ := newTrapService(t)

	types := svc.ListTypes()
	require.Len(t, types, 4)
	assert.Equal(t, "scam", types[0].Type)
	for _, info := range types {
		assert.NotEmpty(t, info.Title)
		assert.NotEmpty(t, info.Intro)
	}
}
