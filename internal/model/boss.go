package model

import "time"

type BossStatus string

const (
	BossActive BossStatus = "active"
	BossWon    BossStatus = "won"
	BossLost   BossStatus = "lost"
)

// BossTurn is one entry in a battle's turn log.
type BossTurn struct {
	Turn        int  `json:"turn"`
	QuestionIdx int  `json:"question_idx"`
	AnswerIdx   int  `json:"answer_idx"`
	Correct     bool `json:"correct"`
	DamageDealt int  `json:"damage_dealt"`
	DamageTaken int  `json:"damage_taken"`
}

// BossBattle is a single-player turn-based fight driven by quiz answers.
// CurrentQuestion records the index of the question last emitted to the
// player; the next turn's answer is validated against that question's key.
type BossBattle struct {
	BaseModel
	UserID          uint       `gorm:"not null;index" json:"userId"`
	BossName        string     `gorm:"size:100;not null" json:"bossName"`
	BossLevel       int        `gorm:"default:1" json:"bossLevel"`
	Status          BossStatus `gorm:"size:20;default:'active'" json:"status"`
	PlayerHP        int        `gorm:"default:100" json:"playerHp"`
	BossHP          int        `gorm:"default:100" json:"bossHp"`
	CurrentQuestion int        `gorm:"default:0" json:"-"`
	BattleLog       []BossTurn `gorm:"serializer:json;type:text" json:"battleLog"`
	FinishedAt      *time.Time `json:"finishedAt"`
}

func (BossBattle) TableName() string {
	return "boss_battles"
}

type BossInfo struct {
	Name   string
	HP     int
	Damage int
}

// BossRoster maps boss level to the opponent's HP/damage profile. Unknown
// levels fall back to level 1.
var BossRoster = map[int]BossInfo{
	1: {Name: "Inflation Dragon", HP: 100, Damage: 15},
	2: {Name: "Debt Golem", HP: 150, Damage: 20},
	3: {Name: "Market Bear", HP: 200, Damage: 25},
	4: {Name: "Scam Sorcerer", HP: 250, Damage: 30},
	5: {Name: "Final Boss: The Recession", HP: 300, Damage: 40},
}

func BossForLevel(level int) BossInfo {
	if info, ok := BossRoster[level]; ok {
		return info
	}
	return BossRoster[1]
}

// Player constants for boss battles.
const (
	PlayerStartHP         = 100
	PlayerBaseHit         = 20
	CriticalChance        = 0.2
	BossVictoryXPPerLevel = 100
)

type BossQuestion struct {
	Question string   `json:"q"`
	Options  []string `json:"opts"`
	Answer   int      `json:"-"`
}

// BossQuestions is the shared quiz pool for all boss fights. Answer keys
// stay server-side; only question text and options are sent to the client.
var BossQuestions = []BossQuestion{
	{Question: "What happens to purchasing power during inflation?", Options: []string{"Increases", "Decreases", "Stays same", "Doubles"}, Answer: 1},
	{Question: "A bear market means prices are...", Options: []string{"Rising", "Falling", "Stable", "Volatile"}, Answer: 1},
	{Question: "Which is safer (usually)?", Options: []string{"Penny stocks", "Government bonds", "Crypto", "Lottery"}, Answer: 1},
	{Question: "Compound interest helps you...", Options: []string{"Lose money", "Grow wealth exponentially", "Pay more taxes", "Decrease debt"}, Answer: 1},
	{Question: "A budget helps you...", Options: []string{"Spend more", "Track expenses", "Ignore bills", "Borrow money"}, Answer: 1},
}
