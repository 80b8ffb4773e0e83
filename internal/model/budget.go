package model

// BudgetScenario is a single-shot budget allocation exercise: the scenario
// is dealt at start, the allocation is scored exactly once on submit.
type BudgetScenario struct {
	BaseModel
	UserID        uint               `gorm:"not null;index" json:"userId"`
	MonthlyIncome float64            `gorm:"not null" json:"monthlyIncome"`
	ScenarioText  string             `gorm:"type:text" json:"scenarioText"`
	Allocations   map[string]float64 `gorm:"serializer:json;type:text" json:"allocations"`
	Score         *int               `json:"score"`
	Feedback      string             `gorm:"type:text" json:"feedback"`
}

func (BudgetScenario) TableName() string {
	return "budget_scenarios"
}

var BudgetScenarioTexts = []string{
	"You're a recent graduate earning ${income}/month. You just moved to a new city. " +
		"Allocate your budget across: Rent, Food, Transport, Savings, Entertainment, Utilities, Clothing.",
	"You got a 20% raise! Your new income is ${income}/month. But your landlord raised rent by $200. " +
		"Re-allocate wisely across: Rent, Food, Transport, Savings, Entertainment, Utilities, Insurance.",
	"Unexpected expense! Your car broke down. Repair costs $800. With ${income}/month income, " +
		"plan your budget: Rent, Food, Transport, Savings, Emergency, Utilities, Debt Repayment.",
}

var BudgetCategories = []string{"Rent", "Food", "Transport", "Savings", "Entertainment", "Utilities", "Other"}
