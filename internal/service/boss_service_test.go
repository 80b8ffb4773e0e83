package service

import (
	"math/rand"
	"testing"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBossService(t *testing.T, seed int64) (*BossService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewBossService(repository.NewBossRepository(db), newProgression(db), rand.New(rand.NewSource(seed)))
	return svc, db
}

// correctAnswer reads the answer key for the battle's pending question.
func correctAnswer(t *testing.T, db *gorm.DB, battleID uint) int {
	t.Helper()
	var battle model.BossBattle
	require.NoError(t, db.First(&battle, battleID).Error)
	return model.BossQuestions[battle.CurrentQuestion].Answer
}

func TestBossStart(t *testing.T) {
	svc, _ := newBossService(t, 1)

	result, err := svc.Start(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Debt Golem", result.Battle.BossName)
	assert.Equal(t, 150, result.Battle.BossHP)
	assert.Equal(t, 100, result.Battle.PlayerHP)
	assert.Equal(t, model.BossActive, result.Battle.Status)
	assert.NotEmpty(t, result.Question.Question)
	assert.NotEmpty(t, result.Question.Options)
}

func TestBossStartUnknownLevelFallsBack(t *testing.T) {
	svc, _ := newBossService(t, 1)

	result, err := svc.Start(1, 42)
	require.NoError(t, err)
	assert.Equal(t, "Inflation Dragon", result.Battle.BossName)
	assert.Equal(t, 1, result.Battle.BossLevel)
	assert.Equal(t, 100, result.Battle.BossHP)
}

func TestBossTurnCorrectAnswerDamagesBoss(t *testing.T) {
	svc, db := newBossService(t, 7)

	start, err := svc.Start(1, 1)
	require.NoError(t, err)

	result, err := svc.Turn(1, start.Battle.ID, correctAnswer(t, db, start.Battle.ID))
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Zero(t, result.DamageTaken)
	assert.Equal(t, 100, result.PlayerHP)
	if result.Critical {
		assert.Equal(t, 40, result.DamageDealt)
	} else {
		assert.Equal(t, 20, result.DamageDealt)
	}
	assert.Equal(t, 100-result.DamageDealt, result.BossHP)
	require.NotNil(t, result.NextQuestion)
}

func TestBossTurnWrongAnswerHurtsPlayer(t *testing.T) {
	svc, db := newBossService(t, 7)

	start, err := svc.Start(1, 3)
	require.NoError(t, err)

	wrong := (correctAnswer(t, db, start.Battle.ID) + 1) % 4
	result, err := svc.Turn(1, start.Battle.ID, wrong)
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Zero(t, result.DamageDealt)
	assert.Equal(t, 25, result.DamageTaken, "Market Bear hits for 25")
	assert.Equal(t, 75, result.PlayerHP)
	assert.Equal(t, 200, result.BossHP)
}

func TestBossVictoryGrantsXP(t *testing.T) {
	svc, db := newBossService(t, 3)
	progression := newProgression(db)

	start, err := svc.Start(1, 1)
	require.NoError(t, err)

	var final *BossTurnResult
	for i := 0; i < 20; i++ {
		result, err := svc.Turn(1, start.Battle.ID, correctAnswer(t, db, start.Battle.ID))
		require.NoError(t, err)
		if result.Status == model.BossWon {
			final = result
			break
		}
	}
	require.NotNil(t, final, "all-correct play must defeat a 100hp boss")
	assert.Equal(t, 0, final.BossHP)
	assert.Equal(t, 100, final.XPAwarded)
	assert.Nil(t, final.NextQuestion)

	stats, err := progression.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.TotalXP, "victory XP lands in the ledger")

	_, err = svc.Turn(1, start.Battle.ID, 0)
	assert.ErrorIs(t, err, util.ErrInvalidState, "finished battles reject further turns")
}

func TestBossDefeatEndsBattle(t *testing.T) {
	svc, db := newBossService(t, 3)

	start, err := svc.Start(1, 5)
	require.NoError(t, err)

	// The Recession hits for 40: three wrong answers end it.
	var final *BossTurnResult
	for i := 0; i < 3; i++ {
		wrong := (correctAnswer(t, db, start.Battle.ID) + 1) % 4
		final, err = svc.Turn(1, start.Battle.ID, wrong)
		require.NoError(t, err)
	}
	assert.Equal(t, model.BossLost, final.Status)
	assert.Equal(t, 0, final.PlayerHP)
	assert.Zero(t, final.XPAwarded)
}

func TestBossTurnValidation(t *testing.T) {
	svc, _ := newBossService(t, 1)

	_, err := svc.Turn(1, 999, 0)
	assert.ErrorIs(t, err, util.ErrNotFound)

	start, err := svc.Start(1, 1)
	require.NoError(t, err)

	_, err = svc.Turn(2, start.Battle.ID, 0)
	assert.ErrorIs(t, err, util.ErrNotFound, "battles are scoped to their owner")

	_, err = svc.Turn(1, start.Battle.ID, 9)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestBossBattleLogGrows(t *testing.T) {
	svc, db := newBossService(t, 11)

	start, err := svc.Start(1, 2)
	require.NoError(t, err)

	_, err = svc.Turn(1, start.Battle.ID, correctAnswer(t, db, start.Battle.ID))
	require.NoError(t, err)
	wrong := (correctAnswer(t, db, start.Battle.ID) + 1) % 4
	_, err = svc.Turn(1, start.Battle.ID, wrong)
	require.NoError(t, err)

	var battle model.BossBattle
	require.NoError(t, db.First(&battle, start.Battle.ID).Error)
	require.Len(t, battle.BattleLog, 2)
	assert.Equal(t, 1, battle.BattleLog[0].Turn)
	assert.True(t, battle.BattleLog[0].Correct)
	assert.False(t, battle.BattleLog[1].Correct)
}
