package service

import (
	"testing"
	"time"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteLessonIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newProgression(db)
	lesson := seedLesson(t, db, 1, 1, 1)

	first, err := svc.CompleteLesson(1, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, first.XPEarned)
	assert.Equal(t, 20, first.TotalXP)
	assert.False(t, first.AlreadyCompleted)

	second, err := svc.CompleteLesson(1, lesson.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyCompleted)
	assert.Equal(t, 20, second.XPEarned)
	assert.Equal(t, 20, second.TotalXP, "repeat completion must not double XP")
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newProgression(db)

	_, err := svc.CompleteLesson(1, 999)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestXPPerLessonLevel(t *testing.T) {
	db := newTestDB(t)
	svc := newProgression(db)

	for level, want := range map[int]int{1: 20, 2: 30, 3: 40, 4: 45, 5: 50} {
		lesson := seedLesson(t, db, level, 1, 1)
		userID := uint(100 + level)

		result, err := svc.CompleteLesson(userID, lesson.ID)
		require.NoError(t, err)
		assert.Equal(t, want, result.XPEarned, "level %d", level)
	}
}

func TestTitleFollowsXPThresholds(t *testing.T) {
	db := newTestDB(t)
	svc := newProgression(db)

	stats, err := svc.GrantXP(1, 150)
	require.NoError(t, err)
	assert.Equal(t, "Beginner", stats.CurrentTitle)

	stats, err = svc.GrantXP(1, 50)
	require.NoError(t, err)
	assert.Equal(t, "Confident", stats.CurrentTitle)

	stats, err = svc.GrantXP(1, 1300)
	require.NoError(t, err)
	assert.Equal(t, "Master", stats.CurrentTitle)

	// titles never regress: zero-XP activity keeps the earned title
	stats, err = svc.GrantXP(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "Master", stats.CurrentTitle)
}

func TestStreakRules(t *testing.T) {
	db := newTestDB(t)
	svc := newProgression(db)
	repo := repository.NewProgressRepository(db)

	stats, err := svc.GrantXP(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StreakDays, "first activity starts the streak")

	// second grant on the same day leaves the streak alone
	stats, err = svc.GrantXP(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StreakDays)

	// pretend the last activity was yesterday
	yesterday := time.Now().AddDate(0, 0, -1)
	stats.LastActivityAt = &yesterday
	require.NoError(t, repo.SaveStats(stats))

	stats, err = svc.GrantXP(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.StreakDays, "consecutive day extends the streak")

	// a skipped day resets to 1
	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	stats.LastActivityAt = &threeDaysAgo
	require.NoError(t, repo.SaveStats(stats))

	stats, err = svc.GrantXP(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StreakDays)
}

func TestStreakCountsCalendarDaysNotEpochBuckets(t *testing.T) {
	loc := time.FixedZone("UTC-10", -10*3600)
	now := time.Date(2026, 8, 29, 5, 0, 0, 0, loc)

	// late-evening activity the previous local day lands in the same UTC
	// 24h bucket as now, but it is still yesterday on the calendar
	lastEvening := time.Date(2026, 8, 28, 22, 0, 0, 0, loc)
	stats := &model.UserStats{StreakDays: 3, LastActivityAt: &lastEvening}
	advanceStreak(stats, now)
	assert.Equal(t, 4, stats.StreakDays)

	// the same instant stored as UTC counts identically
	lastUTC := lastEvening.UTC()
	stats = &model.UserStats{StreakDays: 3, LastActivityAt: &lastUTC}
	advanceStreak(stats, now)
	assert.Equal(t, 4, stats.StreakDays)

	// early-morning activity today is a same-day no-op
	thisMorning := time.Date(2026, 8, 29, 0, 30, 0, 0, loc)
	stats = &model.UserStats{StreakDays: 4, LastActivityAt: &thisMorning}
	advanceStreak(stats, now)
	assert.Equal(t, 4, stats.StreakDays)
}

func TestLevelUnlocking(t *testing.T) {
	db := newTestDB(t)
	svc := newProgression(db)

	l1a := seedLesson(t, db, 1, 1, 1)
	l1b := seedLesson(t, db, 1, 1, 2)
	seedLesson(t, db, 2, 1, 1)

	unlocked, err := svc.LevelUnlocked(1, 1)
	require.NoError(t, err)
	assert.True(t, unlocked, "level 1 is always open")

	unlocked, err = svc.LevelUnlocked(1, 2)
	require.NoError(t, err)
	assert.False(t, unlocked, "level 2 locked until level 1 is done")

	_, err = svc.CompleteLesson(1, l1a.ID)
	require.NoError(t, err)
	unlocked, err = svc.LevelUnlocked(1, 2)
	require.NoError(t, err)
	assert.False(t, unlocked)

	_, err = svc.CompleteLesson(1, l1b.ID)
	require.NoError(t, err)
	unlocked, err = svc.LevelUnlocked(1, 2)
	require.NoError(t, err)
	assert.True(t, unlocked)

	// level 3 gates on level 2, which has one incomplete lesson
	unlocked, err = svc.LevelUnlocked(1, 3)
	require.NoError(t, err)
	assert.False(t, unlocked)

	// level 5 gates on level 4, which has no lessons at all
	unlocked, err = svc.LevelUnlocked(1, 5)
	require.NoError(t, err)
	assert.True(t, unlocked, "a level with zero lessons never blocks")
}

func TestDashboardSummary(t *testing.T) {
	db := newTestDB(t)
	svc := newProgression(db)

	l1 := seedLesson(t, db, 1, 1, 1)
	seedLesson(t, db, 1, 1, 2)

	_, err := svc.CompleteLesson(1, l1.ID)
	require.NoError(t, err)

	summary, err := svc.Summary(1)
	require.NoError(t, err)
	assert.Equal(t, 20, summary.TotalXP)
	assert.Equal(t, "Beginner", summary.CurrentTitle)
	require.NotNil(t, summary.NextTitle)
	assert.Equal(t, "Confident", *summary.NextTitle)
	require.NotNil(t, summary.XPToNextTitle)
	assert.Equal(t, 180, *summary.XPToNextTitle)
	assert.Equal(t, int64(1), summary.CompletedLessons)
	require.Len(t, summary.Levels, 5)
	assert.Equal(t, int64(2), summary.Levels[0].TotalLessons)
	assert.Equal(t, int64(1), summary.Levels[0].CompletedLessons)
	assert.InDelta(t, 50.0, summary.Levels[0].Percent, 0.01)
	require.Len(t, summary.Recent, 1)
	assert.Equal(t, l1.ID, summary.Recent[0].LessonID)
}
