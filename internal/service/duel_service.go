package service

import (
	"errors"
	"time"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"gorm.io/gorm"
)

// DuelService drives the pending → active → finished duel state machine.
type DuelService struct {
	duelRepo *repository.DuelRepository
}

func NewDuelService(duelRepo *repository.DuelRepository) *DuelService {
	return &DuelService{duelRepo: duelRepo}
}

// Create opens a duel at the clamped level and snapshots its question set so
// both players answer identical material.
func (s *DuelService) Create(challengerID uint, level int) (*model.Duel, error) {
	if level < 1 {
		level = 1
	}
	if level > model.MaxDuelLevel {
		level = model.MaxDuelLevel
	}

	duel := &model.Duel{
		InviteCode:   model.NewInviteCode(),
		ChallengerID: challengerID,
		Level:        level,
		Status:       model.DuelPending,
		Questions:    model.DuelQuestionBank[level],
	}
	if err := s.duelRepo.Create(duel); err != nil {
		return nil, err
	}
	return duel, nil
}

func (s *DuelService) Join(opponentID uint, inviteCode string) (*model.Duel, error) {
	duel, err := s.duelRepo.FindByInviteCode(inviteCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "no duel with code %s", inviteCode)
	}
	if err != nil {
		return nil, err
	}
	if duel.Status != model.DuelPending {
		return nil, util.Wrap(util.ErrInvalidState, "duel is %s", duel.Status)
	}
	if duel.ChallengerID == opponentID {
		return nil, util.Wrap(util.ErrInvalidAction, "cannot join your own duel")
	}

	duel.OpponentID = &opponentID
	duel.Status = model.DuelActive
	if err := s.duelRepo.Save(duel); err != nil {
		return nil, err
	}
	return duel, nil
}

// SubmitScore records the caller's score into their slot. Re-submission
// overwrites. Once both slots are submitted the duel finishes and the winner
// is whoever scored strictly higher; a tie leaves WinnerID nil. Submitted
// flags, not score positivity, decide completion, so a genuine 0 counts.
func (s *DuelService) SubmitScore(userID, duelID uint, score int) (*model.Duel, error) {
	if score < 0 {
		return nil, util.Wrap(util.ErrInvalidInput, "score must be >= 0")
	}

	duel, err := s.duelRepo.FindByID(duelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "duel %d", duelID)
	}
	if err != nil {
		return nil, err
	}
	if duel.Status == model.DuelFinished {
		return nil, util.Wrap(util.ErrInvalidState, "duel already finished")
	}

	switch {
	case duel.ChallengerID == userID:
		duel.ChallengerScore = score
		duel.ChallengerSubmitted = true
	case duel.OpponentID != nil && *duel.OpponentID == userID:
		duel.OpponentScore = score
		duel.OpponentSubmitted = true
	default:
		return nil, util.Wrap(util.ErrForbidden, "not a participant in this duel")
	}

	if duel.ChallengerSubmitted && duel.OpponentSubmitted {
		duel.Status = model.DuelFinished
		now := time.Now()
		duel.FinishedAt = &now
		switch {
		case duel.ChallengerScore > duel.OpponentScore:
			duel.WinnerID = &duel.ChallengerID
		case duel.OpponentScore > duel.ChallengerScore:
			duel.WinnerID = duel.OpponentID
		}
	}

	if err := s.duelRepo.Save(duel); err != nil {
		return nil, err
	}
	return duel, nil
}

func (s *DuelService) ListMy(userID uint) ([]model.Duel, error) {
	return s.duelRepo.ListByUser(userID, 20)
}
