package service

import (
	"errors"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"gorm.io/gorm"
)

// TrapService runs branching "financial trap" walkthroughs. The full
// scenario tree is snapshotted at start; choices append to a log and the
// outcome is decided only once the final step is answered.
type TrapService struct {
	trapRepo    *repository.TrapRepository
	progression *ProgressionService
}

func NewTrapService(trapRepo *repository.TrapRepository, progression *ProgressionService) *TrapService {
	return &TrapService{trapRepo: trapRepo, progression: progression}
}

// TrapStepView hides the safe/trap partitions from the client.
type TrapStepView struct {
	Step    int      `json:"step"`
	Total   int      `json:"total"`
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

type TrapStartResult struct {
	ScenarioID uint         `json:"scenarioId"`
	Title      string       `json:"title"`
	Intro      string       `json:"intro"`
	Step       TrapStepView `json:"step"`
}

func (s *TrapService) Start(userID uint, scenarioType string) (*TrapStartResult, error) {
	data, ok := model.TrapLibrary[scenarioType]
	if !ok {
		return nil, util.Wrap(util.ErrInvalidInput, "unknown scenario type %q", scenarioType)
	}

	scenario := &model.TrapScenario{
		UserID:       userID,
		ScenarioType: scenarioType,
		Data:         data,
		Choices:      []model.TrapChoice{},
	}
	if err := s.trapRepo.Create(scenario); err != nil {
		return nil, err
	}

	first := data.Steps[0]
	return &TrapStartResult{
		ScenarioID: scenario.ID,
		Title:      data.Title,
		Intro:      data.Intro,
		Step: TrapStepView{
			Step:    1,
			Total:   len(data.Steps),
			Text:    first.Text,
			Choices: first.Choices,
		},
	}, nil
}

type TrapChooseResult struct {
	Safe     bool              `json:"safe"`
	Finished bool              `json:"finished"`
	Outcome  model.TrapOutcome `json:"outcome,omitempty"`
	XPEarned int               `json:"xpEarned"`
	NextStep *TrapStepView     `json:"nextStep"`
}

// Choose logs the pick for the current step. On the final step the outcome
// is survived only if every logged choice was safe; XP is granted through
// the ledger either way.
func (s *TrapService) Choose(userID, scenarioID uint, choice int) (*TrapChooseResult, error) {
	scenario, err := s.trapRepo.FindByIDAndUser(scenarioID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "scenario %d", scenarioID)
	}
	if err != nil {
		return nil, err
	}

	steps := scenario.Data.Steps
	stepIdx := len(scenario.Choices)
	if scenario.Outcome != "" || stepIdx >= len(steps) {
		return nil, util.Wrap(util.ErrInvalidState, "scenario already completed")
	}

	step := steps[stepIdx]
	if choice < 0 || choice >= len(step.Choices) {
		return nil, util.Wrap(util.ErrInvalidInput, "choice %d out of range", choice)
	}

	safe := step.IsSafe(choice)
	scenario.Choices = append(scenario.Choices, model.TrapChoice{
		Step:   stepIdx,
		Choice: choice,
		Safe:   safe,
	})

	result := &TrapChooseResult{Safe: safe}

	if len(scenario.Choices) == len(steps) {
		outcome := model.TrapSurvived
		for _, c := range scenario.Choices {
			if !c.Safe {
				outcome = model.TrapTrapped
				break
			}
		}
		xp := model.TrapSurvivedXP
		if outcome == model.TrapTrapped {
			xp = model.TrapTrappedXP
		}
		scenario.Outcome = outcome
		scenario.XPEarned = xp
		if _, err := s.progression.GrantXP(userID, xp); err != nil {
			return nil, err
		}
		result.Finished = true
		result.Outcome = outcome
		result.XPEarned = xp
	} else {
		next := steps[len(scenario.Choices)]
		result.NextStep = &TrapStepView{
			Step:    len(scenario.Choices) + 1,
			Total:   len(steps),
			Text:    next.Text,
			Choices: next.Choices,
		}
	}

	if err := s.trapRepo.Save(scenario); err != nil {
		return nil, err
	}
	return result, nil
}

type TrapTypeInfo struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Intro string `json:"intro"`
}

// ListTypes returns the playable scenario catalog in a stable order.
func (s *TrapService) ListTypes() []TrapTypeInfo {
	order := []string{"scam", "impulse", "pyramid", "bad_loan"}
	types := make([]TrapTypeInfo, 0, len(order))
	for _, key := range order {
		data, ok := model.TrapLibrary[key]
		if !ok {
			continue
		}
		types = append(types, TrapTypeInfo{Type: key, Title: data.Title, Intro: data.Intro})
	}
	return types
}
