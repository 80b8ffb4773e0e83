package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"finverse_backend/internal/config"
	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeCompleter scripts upstream replies without a network.
type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newGateway(t *testing.T, completer Completer, maxCalls int) (*AIGatewayService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	gateway := NewAIGatewayService(
		completer,
		repository.NewAIRepository(db),
		repository.NewLessonRepository(db),
		newProgression(db),
		nil,
		config.AIConfig{UserWindowSec: 60, UserMaxCalls: maxCalls},
	)
	return gateway, db
}

const lessonJSON = `{"lesson_text": "# Inflation\nPrices rise over time.",
	"flashcards": [{"question": "What is inflation?", "answer": "A general rise in prices."}],
	"quiz": [{"question": "Inflation does what to purchasing power?",
		"options": ["Raises it", "Lowers it", "Nothing", "Doubles it"],
		"correct_index": 1, "explanation": "Money buys less."}]}`

func TestRateLimiterSlidingWindow(t *testing.T) {
	limiter := newUserRateLimiter(100*time.Millisecond, 2)

	assert.True(t, limiter.allow(1))
	assert.True(t, limiter.allow(1))
	assert.False(t, limiter.allow(1), "third call within the window is rejected")
	assert.True(t, limiter.allow(2), "limits are per user")

	time.Sleep(120 * time.Millisecond)
	assert.True(t, limiter.allow(1), "window slides past old calls")
}

func TestCoachChatPersistsExchange(t *testing.T) {
	completer := &fakeCompleter{reply: "Start by tracking your spending for a month."}
	gateway, db := newGateway(t, completer, 10)
	lesson := seedLesson(t, db, 1, 1, 1)

	reply, err := gateway.CoachChat(context.Background(), 1, lesson.ID, "How do I start budgeting?")
	require.NoError(t, err)
	assert.Equal(t, completer.reply, reply.Reply)

	var messages []model.ChatMessage
	require.NoError(t, db.Order("id").Find(&messages).Error)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "coach_v1", messages[1].PromptVersion)

	require.Len(t, reply.History, 2)
	assert.Equal(t, "user", reply.History[0].Role)
	assert.Equal(t, "assistant", reply.History[1].Role)
}

func TestCoachChatReturnsFullThread(t *testing.T) {
	completer := &fakeCompleter{reply: "Keep going."}
	gateway, db := newGateway(t, completer, 50)
	lesson := seedLesson(t, db, 1, 1, 1)

	// build a thread longer than the bounded prompt window
	repo := repository.NewAIRepository(db)
	for i := 0; i < 12; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		require.NoError(t, repo.CreateChatMessage(&model.ChatMessage{
			UserID: 1, LessonID: lesson.ID, Role: role, Content: "earlier",
		}))
	}

	reply, err := gateway.CoachChat(context.Background(), 1, lesson.ID, "Still with me?")
	require.NoError(t, err)
	require.Len(t, reply.History, 14, "history is the whole thread, not the prompt window")
	assert.Equal(t, "Still with me?", reply.History[12].Content)
	assert.Equal(t, "Keep going.", reply.History[13].Content)
}

func TestCoachChatFallsBackOnUpstreamFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("connection refused")}
	gateway, db := newGateway(t, completer, 10)
	lesson := seedLesson(t, db, 1, 1, 1)

	reply, err := gateway.CoachChat(context.Background(), 1, lesson.ID, "Help?")
	require.NoError(t, err, "coach degrades instead of failing")
	assert.Equal(t, CoachFallbackReply, reply.Reply)

	var messages []model.ChatMessage
	require.NoError(t, db.Order("id").Find(&messages).Error)
	require.Len(t, messages, 2)
	assert.Equal(t, "fallback", messages[1].PromptVersion)
}

func TestCoachChatRateLimited(t *testing.T) {
	completer := &fakeCompleter{reply: "ok"}
	gateway, db := newGateway(t, completer, 1)
	lesson := seedLesson(t, db, 1, 1, 1)

	_, err := gateway.CoachChat(context.Background(), 1, lesson.ID, "first")
	require.NoError(t, err)
	_, err = gateway.CoachChat(context.Background(), 1, lesson.ID, "second")
	assert.ErrorIs(t, err, util.ErrRateLimited)
}

func TestRegenParamsHashStable(t *testing.T) {
	a := RegenParamsHash(1, 2, map[string]string{"tone": "casual", "length": "short"})
	b := RegenParamsHash(1, 2, map[string]string{"length": "short", "tone": "casual"})
	assert.Equal(t, a, b, "parameter order does not matter")
	assert.Len(t, a, 16)

	c := RegenParamsHash(1, 2, map[string]string{"tone": "formal", "length": "short"})
	assert.NotEqual(t, a, c)
	d := RegenParamsHash(2, 2, map[string]string{"tone": "casual", "length": "short"})
	assert.NotEqual(t, a, d)
}

func TestRegenerateLessonCaches(t *testing.T) {
	completer := &fakeCompleter{reply: lessonJSON}
	gateway, db := newGateway(t, completer, 10)
	lesson := seedLesson(t, db, 1, 1, 1)

	params := map[string]string{"tone": "casual"}
	first, err := gateway.RegenerateLesson(context.Background(), 1, lesson.ID, params)
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)
	assert.Contains(t, first.LessonText, "Inflation")
	require.Len(t, first.Flashcards, 1)
	require.Len(t, first.Quiz, 1)
	assert.Equal(t, 1, first.Quiz[0].CorrectIndex)

	second, err := gateway.RegenerateLesson(context.Background(), 1, lesson.ID, params)
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls, "cache hit skips the upstream call")
	assert.Equal(t, first.ID, second.ID)
}

func TestRegenerateLessonUpstreamFailureSurfaces(t *testing.T) {
	// the real client wraps exhausted retries in ErrUpstreamFailure
	completer := &fakeCompleter{err: util.Wrap(util.ErrUpstreamFailure, "boom")}
	gateway, db := newGateway(t, completer, 10)
	lesson := seedLesson(t, db, 1, 1, 1)

	_, err := gateway.RegenerateLesson(context.Background(), 1, lesson.ID, nil)
	assert.ErrorIs(t, err, util.ErrUpstreamFailure)
}

func TestRegenerateLessonRejectsGarbage(t *testing.T) {
	completer := &fakeCompleter{reply: "not json at all"}
	gateway, db := newGateway(t, completer, 10)
	lesson := seedLesson(t, db, 1, 1, 1)

	_, err := gateway.RegenerateLesson(context.Background(), 1, lesson.ID, nil)
	assert.ErrorIs(t, err, util.ErrUpstreamFailure)
}

func TestDictionaryCacheBypassesRateLimiter(t *testing.T) {
	completer := &fakeCompleter{reply: `{"definition": "A general rise in prices.",
		"example": "Bread that cost $2 last year costs $2.10 now.",
		"mini_test": [{"question": "Inflation makes money worth...",
			"options": ["More", "Less", "Same", "Zero"], "correct_index": 1}]}`}
	gateway, _ := newGateway(t, completer, 1)

	first, err := gateway.LookupTerm(context.Background(), 1, "  Inflation ", nil)
	require.NoError(t, err)
	assert.Equal(t, "inflation", first.Term, "terms are normalized")
	assert.Equal(t, 1, completer.calls)

	// the limiter is exhausted, but the cache hit never consults it
	second, err := gateway.LookupTerm(context.Background(), 1, "INFLATION", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, first.ID, second.ID)

	// a brand-new term does hit the limiter
	_, err = gateway.LookupTerm(context.Background(), 1, "deflation", nil)
	assert.ErrorIs(t, err, util.ErrRateLimited)
}

func TestLifeExample(t *testing.T) {
	completer := &fakeCompleter{reply: "```json\n" + `{"story": "Maya noticed her rent went up 5% this year.",
		"takeaway": "Inflation erodes purchasing power.",
		"practice_questions": [{"question": "What happened to Maya's money?",
			"options": ["Grew", "Lost value", "Stayed equal", "Vanished"], "correct_index": 1}]}` + "\n```"}
	gateway, db := newGateway(t, completer, 10)
	lesson := seedLesson(t, db, 1, 1, 1)

	example, err := gateway.GenerateLifeExample(context.Background(), 1, lesson.ID)
	require.NoError(t, err, "fenced JSON is stripped before parsing")
	assert.Contains(t, example.Story, "Maya")
	require.Len(t, example.PracticeQuestions, 1)
}

func TestGenerateLessonContent(t *testing.T) {
	completer := &fakeCompleter{reply: lessonJSON}
	gateway, db := newGateway(t, completer, 10)
	lesson := seedLesson(t, db, 1, 1, 1)

	content, err := gateway.GenerateLessonContent(context.Background(), 1, lesson)
	require.NoError(t, err)
	assert.Equal(t, lesson.ID, content.LessonID)
	assert.NotEmpty(t, content.LessonText)

	var stored model.LessonContent
	require.NoError(t, db.Where("lesson_id = ?", lesson.ID).First(&stored).Error)
	require.Len(t, stored.Quiz, 1)
	assert.Equal(t, "Lowers it", stored.Quiz[0].Options[1])
}
