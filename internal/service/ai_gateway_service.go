package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"finverse_backend/internal/config"
	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"
	"finverse_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	chatHistoryLimit = 10
	redisCacheTTL    = 24 * time.Hour
)

// userRateLimiter is a per-user sliding window over gateway calls.
type userRateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	maxCalls int
	calls    map[uint][]time.Time
}

func newUserRateLimiter(window time.Duration, maxCalls int) *userRateLimiter {
	return &userRateLimiter{
		window:   window,
		maxCalls: maxCalls,
		calls:    map[uint][]time.Time{},
	}
}

// allow prunes expired timestamps and records the call if under the cap.
func (l *userRateLimiter) allow(userID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)
	kept := l.calls[userID][:0]
	for _, t := range l.calls[userID] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.maxCalls {
		l.calls[userID] = kept
		return false
	}
	l.calls[userID] = append(kept, now)
	return true
}

// AIGatewayService fronts the upstream text model: it rate-limits per user,
// renders versioned prompts, parses typed JSON replies and caches what can
// be cached (regenerations and dictionary lookups, DB plus a redis hot
// layer).
type AIGatewayService struct {
	client      Completer
	aiRepo      *repository.AIRepository
	lessonRepo  *repository.LessonRepository
	progression *ProgressionService
	redis       *redis.Client
	limiter     *userRateLimiter
}

func NewAIGatewayService(
	client Completer,
	aiRepo *repository.AIRepository,
	lessonRepo *repository.LessonRepository,
	progression *ProgressionService,
	redisClient *redis.Client,
	cfg config.AIConfig,
) *AIGatewayService {
	return &AIGatewayService{
		client:      client,
		aiRepo:      aiRepo,
		lessonRepo:  lessonRepo,
		progression: progression,
		redis:       redisClient,
		limiter:     newUserRateLimiter(time.Duration(cfg.UserWindowSec)*time.Second, cfg.UserMaxCalls),
	}
}

// courseLevel is the highest unlocked level, used to tune prompt difficulty.
func (s *AIGatewayService) courseLevel(userID uint) int {
	level := 1
	for l := 2; l <= 5; l++ {
		unlocked, err := s.progression.LevelUnlocked(userID, l)
		if err != nil || !unlocked {
			break
		}
		level = l
	}
	return level
}

func (s *AIGatewayService) checkLimit(userID uint) error {
	if !s.limiter.allow(userID) {
		return util.Wrap(util.ErrRateLimited, "too many AI requests, slow down")
	}
	return nil
}

// stripJSON trims markdown code fences models like to wrap JSON in.
func stripJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

type CoachReply struct {
	Reply   string              `json:"reply"`
	History []model.ChatMessage `json:"history"`
}

// CoachChat answers a lesson-scoped question. The exchange is always
// persisted; when the upstream model is down the reply degrades to a canned
// message rather than erroring.
func (s *AIGatewayService) CoachChat(ctx context.Context, userID, lessonID uint, message string) (*CoachReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, util.Wrap(util.ErrInvalidInput, "message must not be empty")
	}
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "lesson %d", lessonID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkLimit(userID); err != nil {
		return nil, err
	}

	history, err := s.aiRepo.RecentChatMessages(userID, lessonID, chatHistoryLimit)
	if err != nil {
		return nil, err
	}

	tmpl := prompt("coach")
	vars := map[string]string{
		"level_desc":   levelDescription(s.courseLevel(userID)),
		"lesson_title": lesson.Title,
	}
	system := tmpl.RenderSystem(vars)

	var transcript strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&transcript, "%s: %s\n", msg.Role, msg.Content)
	}
	fmt.Fprintf(&transcript, "user: %s", message)

	version := tmpl.Version
	start := time.Now()
	reply, err := s.client.Complete(ctx, system, transcript.String())
	latency := int(time.Since(start).Milliseconds())
	if err != nil {
		logger.Log.Warn("coach falling back to canned reply",
			zap.Uint("user_id", userID),
			zap.Error(err))
		reply = CoachFallbackReply
		version = "fallback"
	}

	userMsg := &model.ChatMessage{UserID: userID, LessonID: lessonID, Role: "user", Content: message, PromptVersion: version}
	if err := s.aiRepo.CreateChatMessage(userMsg); err != nil {
		return nil, err
	}
	assistantMsg := &model.ChatMessage{UserID: userID, LessonID: lessonID, Role: "assistant", Content: reply, PromptVersion: version, LatencyMS: latency}
	if err := s.aiRepo.CreateChatMessage(assistantMsg); err != nil {
		return nil, err
	}

	// the prompt window is bounded, but the client gets the whole thread
	full, err := s.aiRepo.AllChatMessages(userID, lessonID)
	if err != nil {
		return nil, err
	}
	return &CoachReply{Reply: reply, History: full}, nil
}

type lessonPayload struct {
	LessonText string               `json:"lesson_text"`
	Flashcards []model.Flashcard    `json:"flashcards"`
	Quiz       []model.QuizQuestion `json:"quiz"`
}

func parseLessonPayload(raw string) (*lessonPayload, error) {
	var payload lessonPayload
	if err := json.Unmarshal([]byte(stripJSON(raw)), &payload); err != nil {
		return nil, util.Wrap(util.ErrUpstreamFailure, "unparseable lesson payload: %v", err)
	}
	if payload.LessonText == "" {
		return nil, util.Wrap(util.ErrUpstreamFailure, "lesson payload missing text")
	}
	return &payload, nil
}

// GenerateLessonContent produces and persists the base content for a lesson.
func (s *AIGatewayService) GenerateLessonContent(ctx context.Context, userID uint, lesson *model.Lesson) (*model.LessonContent, error) {
	if err := s.checkLimit(userID); err != nil {
		return nil, err
	}

	tmpl := prompt("lesson_content")
	user := tmpl.Render(map[string]string{
		"lesson_title": lesson.Title,
		"level":        strconv.Itoa(lesson.Level),
		"topic_key":    lesson.TopicKey,
		"level_desc":   levelDescription(lesson.Level),
	})
	raw, err := s.client.Complete(ctx, tmpl.System, user)
	if err != nil {
		return nil, err
	}
	payload, err := parseLessonPayload(raw)
	if err != nil {
		return nil, err
	}

	content := &model.LessonContent{
		LessonID:   lesson.ID,
		LessonText: payload.LessonText,
		Flashcards: payload.Flashcards,
		Quiz:       payload.Quiz,
	}
	if err := s.lessonRepo.CreateContent(content); err != nil {
		return nil, err
	}
	return content, nil
}

// RegenParamsHash is the deterministic cache key for a regeneration request:
// sha256 over lesson id, level and the sorted key=value parameter list,
// truncated to 16 hex chars.
func RegenParamsHash(lessonID uint, userLevel int, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d", lessonID, userLevel)
	for _, k := range keys {
		fmt.Fprintf(&b, ":%s=%s", k, params[k])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}

// RegenerateLesson returns a customized rendition of a lesson. Results are
// cached per (lesson, level, params hash) in the DB with a redis hot layer;
// upstream failures surface to the caller.
func (s *AIGatewayService) RegenerateLesson(ctx context.Context, userID, lessonID uint, params map[string]string) (*model.RegeneratedContent, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "lesson %d", lessonID)
	}
	if err != nil {
		return nil, err
	}

	userLevel := s.courseLevel(userID)
	hash := RegenParamsHash(lessonID, userLevel, params)
	cacheKey := fmt.Sprintf("regen:%d:%d:%s", lessonID, userLevel, hash)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var content model.RegeneratedContent
			if json.Unmarshal([]byte(cached), &content) == nil {
				return &content, nil
			}
		}
	}

	cached, err := s.aiRepo.FindRegenerated(lessonID, userLevel, hash)
	if err == nil {
		s.cacheInRedis(ctx, cacheKey, cached)
		return cached, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.checkLimit(userID); err != nil {
		return nil, err
	}

	paramPairs := make([]string, 0, len(params))
	for k, v := range params {
		paramPairs = append(paramPairs, k+"="+v)
	}
	sort.Strings(paramPairs)

	tmpl := prompt("regenerate")
	user := tmpl.Render(map[string]string{
		"lesson_title": lesson.Title,
		"level_desc":   levelDescription(userLevel),
		"params":       strings.Join(paramPairs, ", "),
	})
	raw, err := s.client.Complete(ctx, tmpl.System, user)
	if err != nil {
		return nil, err
	}
	payload, err := parseLessonPayload(raw)
	if err != nil {
		return nil, err
	}

	content := &model.RegeneratedContent{
		LessonID:      lessonID,
		UserLevel:     userLevel,
		ParamsHash:    hash,
		LessonText:    payload.LessonText,
		Flashcards:    payload.Flashcards,
		Quiz:          payload.Quiz,
		PromptVersion: tmpl.Version,
	}
	if err := s.aiRepo.CreateRegenerated(content); err != nil {
		return nil, err
	}
	s.cacheInRedis(ctx, cacheKey, content)
	return content, nil
}

// LifeExample is a one-shot story generation; nothing to cache.
type LifeExample struct {
	Story             string                   `json:"story"`
	Takeaway          string                   `json:"takeaway"`
	PracticeQuestions []model.MiniTestQuestion `json:"practice_questions"`
}

func (s *AIGatewayService) GenerateLifeExample(ctx context.Context, userID, lessonID uint) (*LifeExample, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "lesson %d", lessonID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkLimit(userID); err != nil {
		return nil, err
	}

	tmpl := prompt("life_example")
	user := tmpl.Render(map[string]string{
		"lesson_title": lesson.Title,
		"level_desc":   levelDescription(s.courseLevel(userID)),
	})
	raw, err := s.client.Complete(ctx, tmpl.System, user)
	if err != nil {
		return nil, err
	}

	var example LifeExample
	if err := json.Unmarshal([]byte(stripJSON(raw)), &example); err != nil {
		return nil, util.Wrap(util.ErrUpstreamFailure, "unparseable life example: %v", err)
	}
	if example.Story == "" {
		return nil, util.Wrap(util.ErrUpstreamFailure, "life example missing story")
	}
	return &example, nil
}

type dictionaryPayload struct {
	Definition string                   `json:"definition"`
	Example    string                   `json:"example"`
	MiniTest   []model.MiniTestQuestion `json:"mini_test"`
}

// LookupTerm defines a financial term at the user's level. Cached per
// (normalized term, level); a cache hit does not count against the rate
// limit.
func (s *AIGatewayService) LookupTerm(ctx context.Context, userID uint, term string, lessonID *uint) (*model.DictionaryEntry, error) {
	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized == "" {
		return nil, util.Wrap(util.ErrInvalidInput, "term must not be empty")
	}

	userLevel := s.courseLevel(userID)
	cacheKey := fmt.Sprintf("dict:%s:%d", normalized, userLevel)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var entry model.DictionaryEntry
			if json.Unmarshal([]byte(cached), &entry) == nil {
				return &entry, nil
			}
		}
	}

	entry, err := s.aiRepo.FindDictionaryEntry(normalized, userLevel)
	if err == nil {
		s.cacheInRedis(ctx, cacheKey, entry)
		return entry, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.checkLimit(userID); err != nil {
		return nil, err
	}

	tmpl := prompt("dictionary")
	user := tmpl.Render(map[string]string{
		"term":       normalized,
		"level_desc": levelDescription(userLevel),
	})
	raw, err := s.client.Complete(ctx, tmpl.System, user)
	if err != nil {
		return nil, err
	}

	var payload dictionaryPayload
	if err := json.Unmarshal([]byte(stripJSON(raw)), &payload); err != nil {
		return nil, util.Wrap(util.ErrUpstreamFailure, "unparseable dictionary entry: %v", err)
	}
	if payload.Definition == "" {
		return nil, util.Wrap(util.ErrUpstreamFailure, "dictionary entry missing definition")
	}

	newEntry := &model.DictionaryEntry{
		Term:          normalized,
		UserLevel:     userLevel,
		LessonID:      lessonID,
		Definition:    payload.Definition,
		Example:       payload.Example,
		MiniTest:      payload.MiniTest,
		PromptVersion: tmpl.Version,
	}
	if err := s.aiRepo.CreateDictionaryEntry(newEntry); err != nil {
		return nil, err
	}
	s.cacheInRedis(ctx, cacheKey, newEntry)
	return newEntry, nil
}

func (s *AIGatewayService) cacheInRedis(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, redisCacheTTL).Err(); err != nil {
		logger.Log.Debug("redis cache write failed", zap.String("key", key), zap.Error(err))
	}
}
