package model

type TrapOutcome string

const (
	TrapSurvived TrapOutcome = "survived"
	TrapTrapped  TrapOutcome = "trapped"
)

// XP grants on trap completion.
const (
	TrapSurvivedXP = 30
	TrapTrappedXP  = 10
)

// TrapStep is one decision point. Safe and Trap partition the choice
// indexes into prudent and risky options.
type TrapStep struct {
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
	Safe    []int    `json:"safe"`
	Trap    []int    `json:"trap"`
}

func (s TrapStep) IsSafe(choice int) bool {
	for _, idx := range s.Safe {
		if idx == choice {
			return true
		}
	}
	return false
}

type TrapData struct {
	Title string     `json:"title"`
	Intro string     `json:"intro"`
	Steps []TrapStep `json:"steps"`
}

type TrapChoice struct {
	Step   int  `json:"step"`
	Choice int  `json:"choice"`
	Safe   bool `json:"safe"`
}

// TrapScenario is one play-through of a branching trap narrative. The full
// scenario is snapshotted into Data at start; Choices is an append-only log
// and Outcome is set only once the last step is answered.
type TrapScenario struct {
	BaseModel
	UserID       uint         `gorm:"not null;index" json:"userId"`
	ScenarioType string       `gorm:"size:50;not null" json:"scenarioType"`
	Data         TrapData     `gorm:"serializer:json;type:text" json:"-"`
	Choices      []TrapChoice `gorm:"serializer:json;type:text" json:"choices"`
	Outcome      TrapOutcome  `gorm:"size:20" json:"outcome"`
	XPEarned     int          `gorm:"default:0" json:"xpEarned"`
}

func (TrapScenario) TableName() string {
	return "trap_scenarios"
}

// TrapLibrary holds the fixed scenario trees, three steps each.
var TrapLibrary = map[string]TrapData{
	"scam": {
		Title: "The Investment Opportunity",
		Intro: "A friend tells you about an 'amazing investment' that guarantees 50% monthly returns.",
		Steps: []TrapStep{
			{
				Text:    "Your friend says: 'I've already made $5,000 in 2 months! Just invest $1,000 to start.'",
				Choices: []string{"Invest $1,000 right away", "Ask for more details first", "Decline politely"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
			{
				Text:    "They show you a fancy website with testimonials and a 'Bloomberg featured' badge.",
				Choices: []string{"Sign up immediately", "Check if Bloomberg actually featured them", "Ask: 'Where does the money come from?'"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
			{
				Text:    "They pressure you: 'The offer closes tonight! Don't miss out!'",
				Choices: []string{"Rush to invest before deadline", "Recognize this as a pressure tactic", "Say you need to sleep on it"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
		},
	},
	"impulse": {
		Title: "The Flash Sale Trap",
		Intro: "Your favorite store announces a '70% OFF — TODAY ONLY!' sale.",
		Steps: []TrapStep{
			{
				Text:    "The sale page shows items you've been wanting. A jacket for $200 → $60!",
				Choices: []string{"Add everything to cart immediately", "Check if you actually need these items", "Compare prices on other sites first"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
			{
				Text:    "Cart total: $340. The site says: 'Spend $400 to get FREE shipping ($30 value)!'",
				Choices: []string{"Add more items to reach $400", "Calculate if free shipping is actually worth $60 more", "Stick with what you need"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
			{
				Text:    "At checkout: 'Apply for our credit card and get extra 15% off!'",
				Choices: []string{"Apply for the credit card", "Realize store cards have high APR (25%+)", "Pay with your debit card"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
		},
	},
	"pyramid": {
		Title: "The MLM Opportunity",
		Intro: "A colleague invites you to a 'business opportunity' seminar.",
		Steps: []TrapStep{
			{
				Text:    "At the seminar, they talk about 'financial freedom' and show luxury cars.",
				Choices: []string{"Sign up to become a 'distributor'", "Ask: 'What product do you actually sell?'", "Notice the focus is on recruiting, not products"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
			{
				Text:    "The starter kit costs $500. They say: 'Think of it as an investment in yourself!'",
				Choices: []string{"Pay $500 for the starter kit", "Ask about the return policy", "Research the company's income disclosure"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
			{
				Text:    "They say: 'The real money is in building your team. Recruit 5 people!'",
				Choices: []string{"Start recruiting friends and family", "Realize this is a pyramid structure", "Ask what percentage of members actually profit"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
		},
	},
	"bad_loan": {
		Title: "The Easy Loan Trap",
		Intro: "You need $2,000 urgently. A payday lender offers 'instant approval, no credit check!'",
		Steps: []TrapStep{
			{
				Text:    "The payday lender says: 'Just $50 fee per $500 borrowed. Pay back in 2 weeks!'",
				Choices: []string{"Take the loan — only $200 in fees!", "Calculate the actual APR (260%!)", "Explore alternatives first"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
			{
				Text:    "You can't pay back in 2 weeks. They offer to 'roll over' for another $200 fee.",
				Choices: []string{"Roll over the loan", "Borrow from another lender to pay this one", "Ask about a payment plan or seek credit counseling"},
				Safe:    []int{2}, Trap: []int{0, 1},
			},
			{
				Text:    "After 3 roll-overs, you owe $2,800 on a $2,000 loan.",
				Choices: []string{"Take another payday loan from a different lender", "Contact a credit counselor for help", "Set up a strict repayment plan"},
				Safe:    []int{1, 2}, Trap: []int{0},
			},
		},
	},
}
