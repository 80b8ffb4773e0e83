package service

import (
	"strings"
	"testing"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDuelService(t *testing.T) *DuelService {
	t.Helper()
	return NewDuelService(repository.NewDuelRepository(newTestDB(t)))
}

func TestDuelCreateClampsLevelAndSnapshotsQuestions(t *testing.T) {
	svc := newDuelService(t)

	duel, err := svc.Create(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, duel.Level, "levels above the bank clamp to 3")
	assert.Equal(t, model.DuelPending, duel.Status)
	assert.Len(t, duel.Questions, 5)
	assert.Len(t, duel.InviteCode, 8)

	low, err := svc.Create(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, low.Level)
}

func TestDuelQuestionSetsIdenticalPerLevel(t *testing.T) {
	svc := newDuelService(t)

	a, err := svc.Create(1, 2)
	require.NoError(t, err)
	b, err := svc.Create(2, 2)
	require.NoError(t, err)

	require.Equal(t, len(a.Questions), len(b.Questions))
	for i := range a.Questions {
		assert.Equal(t, a.Questions[i], b.Questions[i])
	}
}

func TestDuelJoin(t *testing.T) {
	svc := newDuelService(t)

	duel, err := svc.Create(1, 1)
	require.NoError(t, err)

	_, err = svc.Join(2, "NOPE1234")
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = svc.Join(1, duel.InviteCode)
	assert.ErrorIs(t, err, util.ErrInvalidAction, "challenger cannot join their own duel")

	joined, err := svc.Join(2, strings.ToLower(duel.InviteCode))
	require.NoError(t, err, "invite codes match case-insensitively")
	assert.Equal(t, model.DuelActive, joined.Status)
	require.NotNil(t, joined.OpponentID)
	assert.Equal(t, uint(2), *joined.OpponentID)

	_, err = svc.Join(3, duel.InviteCode)
	assert.ErrorIs(t, err, util.ErrInvalidState, "an active duel cannot be joined again")
}

func TestDuelSubmitWinnerSymmetry(t *testing.T) {
	svc := newDuelService(t)

	duel, err := svc.Create(1, 1)
	require.NoError(t, err)
	_, err = svc.Join(2, duel.InviteCode)
	require.NoError(t, err)

	_, err = svc.SubmitScore(3, duel.ID, 4)
	assert.ErrorIs(t, err, util.ErrForbidden)

	updated, err := svc.SubmitScore(1, duel.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, model.DuelActive, updated.Status, "one submission does not finish the duel")
	assert.True(t, updated.ChallengerSubmitted)

	updated, err = svc.SubmitScore(2, duel.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, model.DuelFinished, updated.Status)
	require.NotNil(t, updated.WinnerID)
	assert.Equal(t, uint(2), *updated.WinnerID)
	assert.NotNil(t, updated.FinishedAt)

	_, err = svc.SubmitScore(1, duel.ID, 99)
	assert.ErrorIs(t, err, util.ErrInvalidState, "finished duels reject further submissions")
}

func TestDuelZeroScoreStillFinishes(t *testing.T) {
	svc := newDuelService(t)

	duel, err := svc.Create(1, 1)
	require.NoError(t, err)
	_, err = svc.Join(2, duel.InviteCode)
	require.NoError(t, err)

	_, err = svc.SubmitScore(1, duel.ID, 0)
	require.NoError(t, err)
	updated, err := svc.SubmitScore(2, duel.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, model.DuelFinished, updated.Status, "two genuine zeros finish the duel")
	assert.Nil(t, updated.WinnerID, "a tie has no winner")
}

func TestDuelResubmissionOverwrites(t *testing.T) {
	svc := newDuelService(t)

	duel, err := svc.Create(1, 1)
	require.NoError(t, err)
	_, err = svc.Join(2, duel.InviteCode)
	require.NoError(t, err)

	_, err = svc.SubmitScore(1, duel.ID, 2)
	require.NoError(t, err)
	updated, err := svc.SubmitScore(1, duel.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.ChallengerScore)
	assert.Equal(t, model.DuelActive, updated.Status)
}

func TestDuelNegativeScoreRejected(t *testing.T) {
	svc := newDuelService(t)

	duel, err := svc.Create(1, 1)
	require.NoError(t, err)
	_, err = svc.SubmitScore(1, duel.ID, -1)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestDuelListMy(t *testing.T) {
	svc := newDuelService(t)

	mine, err := svc.Create(1, 1)
	require.NoError(t, err)
	other, err := svc.Create(2, 1)
	require.NoError(t, err)
	_, err = svc.Join(1, other.InviteCode)
	require.NoError(t, err)
	_, err = svc.Create(3, 1)
	require.NoError(t, err)

	duels, err := svc.ListMy(1)
	require.NoError(t, err)
	require.Len(t, duels, 2)
	ids := []uint{duels[0].ID, duels[1].ID}
	assert.Contains(t, ids, mine.ID)
	assert.Contains(t, ids, other.ID)
}
