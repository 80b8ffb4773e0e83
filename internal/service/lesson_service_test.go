package service

import (
	"context"
	"testing"

	"finverse_backend/internal/config"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLessonService(t *testing.T, completer Completer) (*LessonService, *ProgressionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	lessonRepo := repository.NewLessonRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	progression := NewProgressionService(progressRepo, lessonRepo)
	gateway := NewAIGatewayService(
		completer,
		repository.NewAIRepository(db),
		lessonRepo,
		progression,
		nil,
		config.AIConfig{UserWindowSec: 60, UserMaxCalls: 100},
	)
	return NewLessonService(lessonRepo, progressRepo, progression, gateway), progression, db
}

func TestLessonListGroupsAndLocks(t *testing.T) {
	svc, progression, db := newLessonService(t, &fakeCompleter{})

	l1 := seedLesson(t, db, 1, 1, 1)
	seedLesson(t, db, 1, 2, 1)
	seedLesson(t, db, 2, 1, 1)

	groups, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, 1, groups[0].Level)
	assert.True(t, groups[0].Unlocked)
	require.Len(t, groups[0].Modules, 2)
	assert.Equal(t, "Money & Basic Rules", groups[0].Modules[0].Title)
	assert.False(t, groups[1].Unlocked, "level 2 locked before level 1 is done")

	_, err = progression.CompleteLesson(1, l1.ID)
	require.NoError(t, err)

	groups, err = svc.List(1)
	require.NoError(t, err)
	assert.True(t, groups[0].Modules[0].Lessons[0].Completed)
	assert.False(t, groups[1].Unlocked, "one of two lessons is not enough")
}

func TestLessonGetRespectsLock(t *testing.T) {
	svc, progression, db := newLessonService(t, &fakeCompleter{})

	l1 := seedLesson(t, db, 1, 1, 1)
	l2 := seedLesson(t, db, 2, 1, 1)

	_, _, err := svc.Get(1, l2.ID)
	assert.ErrorIs(t, err, util.ErrForbidden)

	_, err = progression.CompleteLesson(1, l1.ID)
	require.NoError(t, err)

	lesson, content, err := svc.Get(1, l2.ID)
	require.NoError(t, err)
	assert.Equal(t, l2.ID, lesson.ID)
	assert.Nil(t, content, "no content generated yet")

	_, _, err = svc.Get(1, 999)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestLessonGenerateContentOnce(t *testing.T) {
	completer := &fakeCompleter{reply: lessonJSON}
	svc, _, db := newLessonService(t, completer)
	lesson := seedLesson(t, db, 1, 1, 1)

	content, err := svc.GenerateContent(context.Background(), 1, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)
	assert.NotEmpty(t, content.LessonText)

	again, err := svc.GenerateContent(context.Background(), 1, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls, "existing content is reused")
	assert.Equal(t, content.ID, again.ID)
}

func TestLessonContentLifecycle(t *testing.T) {
	completer := &fakeCompleter{reply: lessonJSON}
	svc, _, db := newLessonService(t, completer)
	lesson := seedLesson(t, db, 1, 1, 1)

	_, err := svc.GetContent(1, lesson.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = svc.GenerateContent(context.Background(), 1, lesson.ID)
	require.NoError(t, err)

	content, err := svc.GetContent(1, lesson.ID)
	require.NoError(t, err)
	require.Len(t, content.Flashcards, 1)

	require.NoError(t, svc.DeleteContent(lesson.ID))
	_, err = svc.GetContent(1, lesson.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)

	// regenerate drops and rebuilds in one step
	_, err = svc.Regenerate(context.Background(), 1, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, completer.calls)
	_, err = svc.GetContent(1, lesson.ID)
	assert.NoError(t, err)
}
