package service

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"gorm.io/gorm"
)

// BudgetService deals budget scenarios and scores allocations exactly once.
type BudgetService struct {
	budgetRepo *repository.BudgetRepository
	rng        *rand.Rand
}

func NewBudgetService(budgetRepo *repository.BudgetRepository, rng *rand.Rand) *BudgetService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BudgetService{budgetRepo: budgetRepo, rng: rng}
}

type BudgetStartResult struct {
	ScenarioID    uint     `json:"scenarioId"`
	MonthlyIncome float64  `json:"monthlyIncome"`
	ScenarioText  string   `json:"scenarioText"`
	Categories    []string `json:"categories"`
}

func (s *BudgetService) Start(userID uint, income float64) (*BudgetStartResult, error) {
	if income <= 0 {
		return nil, util.Wrap(util.ErrInvalidInput, "monthly income must be positive")
	}

	text := model.BudgetScenarioTexts[s.rng.Intn(len(model.BudgetScenarioTexts))]
	text = strings.ReplaceAll(text, "${income}", fmt.Sprintf("%.0f", income))

	scenario := &model.BudgetScenario{
		UserID:        userID,
		MonthlyIncome: income,
		ScenarioText:  text,
	}
	if err := s.budgetRepo.Create(scenario); err != nil {
		return nil, err
	}
	return &BudgetStartResult{
		ScenarioID:    scenario.ID,
		MonthlyIncome: income,
		ScenarioText:  text,
		Categories:    model.BudgetCategories,
	}, nil
}

type BudgetSubmitResult struct {
	ScenarioID  uint               `json:"scenarioId"`
	Score       int                `json:"score"`
	Feedback    []string           `json:"feedback"`
	Allocations map[string]float64 `json:"allocations"`
}

// SubmitAllocation scores the allocation against the scenario's income. The
// score starts at 50 and moves on savings rate, rent share and whether the
// plan actually spends the income, clamped to [0, 100]. A scenario scores
// only once.
func (s *BudgetService) SubmitAllocation(userID, scenarioID uint, allocations map[string]float64) (*BudgetSubmitResult, error) {
	scenario, err := s.budgetRepo.FindByIDAndUser(scenarioID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "budget scenario %d", scenarioID)
	}
	if err != nil {
		return nil, err
	}
	if scenario.Score != nil {
		return nil, util.Wrap(util.ErrAlreadyDone, "scenario already scored")
	}
	if len(allocations) == 0 {
		return nil, util.Wrap(util.ErrInvalidInput, "allocations must not be empty")
	}
	for category, amount := range allocations {
		if amount < 0 {
			return nil, util.Wrap(util.ErrInvalidInput, "negative allocation for %s", category)
		}
	}

	income := scenario.MonthlyIncome
	score := 50
	var feedback []string

	var total float64
	for _, amount := range allocations {
		total += amount
	}

	savingsPct := allocations["Savings"] / income * 100
	switch {
	case savingsPct >= 15 && savingsPct <= 30:
		score += 20
	case savingsPct >= 10 && savingsPct < 15:
		score += 10
	case savingsPct < 5:
		score -= 10
	}

	rentPct := allocations["Rent"] / income * 100
	switch {
	case rentPct <= 30:
		score += 15
	case rentPct <= 40:
		score += 5
	default:
		score -= 10
	}

	if math.Abs(total-income) <= income*0.02 {
		score += 15
	} else {
		score -= 20
	}

	// feedback thresholds are fixed and independent of the score branches
	if savingsPct >= 20 {
		feedback = append(feedback, "Great savings rate! You're building a solid financial cushion.")
	} else if savingsPct < 10 {
		feedback = append(feedback, "Consider saving at least 10-20% of income for future security.")
	}
	if rentPct > 40 {
		feedback = append(feedback, "Rent is over 40% of income. Look for ways to reduce housing costs.")
	}
	if math.Abs(total-income) > income*0.05 {
		feedback = append(feedback, "Your budget doesn't balance! Make sure allocations match your income.")
	} else {
		feedback = append(feedback, "Budget balances well. Every dollar has a job.")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	scenario.Allocations = allocations
	scenario.Score = &score
	scenario.Feedback = strings.Join(feedback, " ")
	if err := s.budgetRepo.Save(scenario); err != nil {
		return nil, err
	}

	return &BudgetSubmitResult{
		ScenarioID:  scenarioID,
		Score:       score,
		Feedback:    feedback,
		Allocations: allocations,
	}, nil
}
