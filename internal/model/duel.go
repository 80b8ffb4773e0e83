package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type DuelStatus string

const (
	DuelPending  DuelStatus = "pending"
	DuelActive   DuelStatus = "active"
	DuelFinished DuelStatus = "finished"
)

type DuelQuestion struct {
	Question string   `json:"q"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

// Duel is a two-player asynchronous quiz match. The question set is
// snapshotted at creation so both players answer the same material even if
// the bank changes later. Submitted flags track each slot explicitly: a
// legitimate score of zero still finishes the duel.
type Duel struct {
	BaseModel
	InviteCode          string         `gorm:"size:16;uniqueIndex;not null" json:"inviteCode"`
	ChallengerID        uint           `gorm:"not null;index" json:"challengerId"`
	OpponentID          *uint          `gorm:"index" json:"opponentId"`
	Level               int            `gorm:"not null;default:1" json:"level"`
	Status              DuelStatus     `gorm:"size:20;not null;default:'pending'" json:"status"`
	ChallengerScore     int            `gorm:"default:0" json:"challengerScore"`
	OpponentScore       int            `gorm:"default:0" json:"opponentScore"`
	ChallengerSubmitted bool           `gorm:"default:false" json:"challengerSubmitted"`
	OpponentSubmitted   bool           `gorm:"default:false" json:"opponentSubmitted"`
	WinnerID            *uint          `json:"winnerId"`
	Questions           []DuelQuestion `gorm:"serializer:json;type:text" json:"questions"`
	FinishedAt          *time.Time     `json:"finishedAt"`
}

func (Duel) TableName() string {
	return "duels"
}

// NewInviteCode returns an 8-char opaque code, stored uppercase and matched
// case-insensitively.
func NewInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// DuelQuestionBank holds the fixed 5-question set per duel level. Duels
// created at the same level snapshot identical sets.
var DuelQuestionBank = map[int][]DuelQuestion{
	1: {
		{Question: "What does the 50/30/20 rule refer to?", Options: []string{"Investing", "Budgeting", "Tax brackets", "Interest rates"}, Answer: 1},
		{Question: "What is inflation?", Options: []string{"Stock growth", "Decrease in money's value", "Bank fee", "Loan interest"}, Answer: 1},
		{Question: "An emergency fund should cover…", Options: []string{"1 week", "1 month", "3-6 months", "2 years"}, Answer: 2},
		{Question: "What is an asset?", Options: []string{"A debt you owe", "Something that loses value", "Something that generates income", "A monthly expense"}, Answer: 2},
		{Question: "Which is a 'pay yourself first' habit?", Options: []string{"Pay bills first", "Save before spending", "Invest everything", "Borrow to save"}, Answer: 1},
	},
	2: {
		{Question: "APR stands for…", Options: []string{"Annual Profit Return", "Annual Percentage Rate", "Average Payment Ratio", "Asset Performance Report"}, Answer: 1},
		{Question: "Snowball method pays off debt by…", Options: []string{"Highest balance first", "Smallest balance first", "Highest interest first", "Random order"}, Answer: 1},
		{Question: "Good debt is used to…", Options: []string{"Buy luxury items", "Build assets or income", "Pay other debts", "Cover daily expenses"}, Answer: 1},
		{Question: "A pyramid scheme…", Options: []string{"Is a safe investment", "Pays old investors with new money", "Is regulated by banks", "Guarantees returns"}, Answer: 1},
		{Question: "Insurance helps you…", Options: []string{"Make money", "Transfer financial risk", "Avoid taxes", "Increase salary"}, Answer: 1},
	},
	3: {
		{Question: "Compound interest is often called…", Options: []string{"The 6th wonder", "The 8th wonder", "A myth", "A scam"}, Answer: 1},
		{Question: "ETF stands for…", Options: []string{"Electronic Transfer Fee", "Exchange-Traded Fund", "Earnings Tax Form", "Equity Trading Formula"}, Answer: 1},
		{Question: "Diversification means…", Options: []string{"All in one stock", "Spreading investments", "Borrowing more", "Selling everything"}, Answer: 1},
		{Question: "Lifestyle inflation is when…", Options: []string{"Prices go up", "Spending rises with income", "You get a raise", "You invest more"}, Answer: 1},
		{Question: "What drives impulse buying?", Options: []string{"Logic", "Emotions", "Research", "Planning"}, Answer: 1},
	},
}

// MaxDuelLevel is the highest level with a question bank; create requests
// above it are clamped down.
const MaxDuelLevel = 3
