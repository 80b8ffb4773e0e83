package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"gorm.io/gorm"
)

// BossService runs the single-player quiz combat loop. The rng is injected
// so critical hits and question draws are reproducible in tests.
type BossService struct {
	bossRepo    *repository.BossRepository
	progression *ProgressionService
	rng         *rand.Rand
}

func NewBossService(bossRepo *repository.BossRepository, progression *ProgressionService, rng *rand.Rand) *BossService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BossService{bossRepo: bossRepo, progression: progression, rng: rng}
}

// BossQuestionView is the client-facing question: the answer key stays
// server-side.
type BossQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type BossStartResult struct {
	Battle   *model.BossBattle `json:"battle"`
	Question BossQuestionView  `json:"question"`
}

// Start opens a battle against the boss for the given level; unknown levels
// fall back to the level-1 boss. One random question is emitted and its
// index persisted for answer validation on the next turn.
func (s *BossService) Start(userID uint, level int) (*BossStartResult, error) {
	info := model.BossForLevel(level)
	if _, ok := model.BossRoster[level]; !ok {
		level = 1
	}

	questionIdx := s.rng.Intn(len(model.BossQuestions))
	battle := &model.BossBattle{
		UserID:          userID,
		BossName:        info.Name,
		BossLevel:       level,
		Status:          model.BossActive,
		PlayerHP:        model.PlayerStartHP,
		BossHP:          info.HP,
		CurrentQuestion: questionIdx,
		BattleLog:       []model.BossTurn{},
	}
	if err := s.bossRepo.Create(battle); err != nil {
		return nil, err
	}

	q := model.BossQuestions[questionIdx]
	return &BossStartResult{
		Battle:   battle,
		Question: BossQuestionView{Question: q.Question, Options: q.Options},
	}, nil
}

type BossTurnResult struct {
	Correct      bool              `json:"correct"`
	Critical     bool              `json:"critical"`
	DamageDealt  int               `json:"damageDealt"`
	DamageTaken  int               `json:"damageTaken"`
	PlayerHP     int               `json:"playerHp"`
	BossHP       int               `json:"bossHp"`
	Status       model.BossStatus  `json:"status"`
	Message      string            `json:"message"`
	XPAwarded    int               `json:"xpAwarded"`
	NextQuestion *BossQuestionView `json:"nextQuestion"`
}

// Turn resolves one combat round. The submitted answer is checked against
// the answer key of the question the battle last emitted. A correct answer
// hits the boss (20% chance of a double critical); a wrong one lets the boss
// hit back. Boss death is checked before player death.
func (s *BossService) Turn(userID, battleID uint, answerIdx int) (*BossTurnResult, error) {
	battle, err := s.bossRepo.FindByIDAndUser(battleID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "battle %d", battleID)
	}
	if err != nil {
		return nil, err
	}
	if battle.Status != model.BossActive {
		return nil, util.Wrap(util.ErrInvalidState, "battle is %s", battle.Status)
	}

	question := model.BossQuestions[battle.CurrentQuestion]
	if answerIdx < 0 || answerIdx >= len(question.Options) {
		return nil, util.Wrap(util.ErrInvalidInput, "answer index %d out of range", answerIdx)
	}

	info := model.BossForLevel(battle.BossLevel)
	result := &BossTurnResult{Correct: answerIdx == question.Answer}

	if result.Correct {
		damage := model.PlayerBaseHit
		if s.rng.Float64() < model.CriticalChance {
			damage *= 2
			result.Critical = true
		}
		battle.BossHP -= damage
		if battle.BossHP < 0 {
			battle.BossHP = 0
		}
		result.DamageDealt = damage
		result.Message = fmt.Sprintf("Direct hit! You dealt %d damage to %s.", damage, battle.BossName)
		if result.Critical {
			result.Message = fmt.Sprintf("Critical hit! You dealt %d damage to %s.", damage, battle.BossName)
		}
	} else {
		battle.PlayerHP -= info.Damage
		if battle.PlayerHP < 0 {
			battle.PlayerHP = 0
		}
		result.DamageTaken = info.Damage
		result.Message = fmt.Sprintf("Wrong answer! %s hit you for %d damage.", battle.BossName, info.Damage)
	}

	battle.BattleLog = append(battle.BattleLog, model.BossTurn{
		Turn:        len(battle.BattleLog) + 1,
		QuestionIdx: battle.CurrentQuestion,
		AnswerIdx:   answerIdx,
		Correct:     result.Correct,
		DamageDealt: result.DamageDealt,
		DamageTaken: result.DamageTaken,
	})

	switch {
	case battle.BossHP <= 0:
		battle.Status = model.BossWon
		now := time.Now()
		battle.FinishedAt = &now
		result.XPAwarded = model.BossVictoryXPPerLevel * battle.BossLevel
		if _, err := s.progression.GrantXP(userID, result.XPAwarded); err != nil {
			return nil, err
		}
		result.Message = fmt.Sprintf("You defeated %s! +%d XP", battle.BossName, result.XPAwarded)
	case battle.PlayerHP <= 0:
		battle.Status = model.BossLost
		now := time.Now()
		battle.FinishedAt = &now
		result.Message = fmt.Sprintf("%s defeated you. Study up and try again!", battle.BossName)
	default:
		next := s.rng.Intn(len(model.BossQuestions))
		battle.CurrentQuestion = next
		q := model.BossQuestions[next]
		result.NextQuestion = &BossQuestionView{Question: q.Question, Options: q.Options}
	}

	if err := s.bossRepo.Save(battle); err != nil {
		return nil, err
	}

	result.PlayerHP = battle.PlayerHP
	result.BossHP = battle.BossHP
	result.Status = battle.Status
	return result, nil
}
