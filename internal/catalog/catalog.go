// Package catalog holds the read-only reference dataset: hymns with their
// verses and lessons, achievements, daily micro-actions, quests, ethical
// challenges, and daily quotes. The data is embedded at build time and never
// mutated — learner state lives entirely in the session store.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/*.json
var dataFS embed.FS

var (
	hymns           []Hymn
	hymnByID        map[int]*Hymn
	achievements    []Achievement
	achievementByID map[string]*Achievement
	microActions    []MicroAction
	microActionByID map[string]*MicroAction
	quests          []EnvironmentalQuest
	questByID       map[string]*EnvironmentalQuest
	challenges      []EthicalChallenge
	challengeByID   map[string]*EthicalChallenge
	quotes          []Quote
)

func init() {
	mustLoad("data/hymns.json", &hymns)
	mustLoad("data/achievements.json", &achievements)
	mustLoad("data/micro_actions.json", &microActions)
	mustLoad("data/environmental_quests.json", &quests)
	mustLoad("data/ethical_challenges.json", &challenges)
	mustLoad("data/quotes.json", &quotes)

	hymnByID = make(map[int]*Hymn, len(hymns))
	for i := range hymns {
		hymnByID[hymns[i].ID] = &hymns[i]
	}
	achievementByID = make(map[string]*Achievement, len(achievements))
	for i := range achievements {
		achievementByID[achievements[i].ID] = &achievements[i]
	}
	microActionByID = make(map[string]*MicroAction, len(microActions))
	for i := range microActions {
		microActionByID[microActions[i].ID] = &microActions[i]
	}
	questByID = make(map[string]*EnvironmentalQuest, len(quests))
	for i := range quests {
		questByID[quests[i].ID] = &quests[i]
	}
	challengeByID = make(map[string]*EthicalChallenge, len(challenges))
	for i := range challenges {
		challengeByID[challenges[i].ID] = &challenges[i]
	}
}

func mustLoad(path string, dst interface{}) {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("catalog: read %s: %v", path, err))
	}
	if err := json.Unmarshal(data, dst); err != nil {
		panic(fmt.Sprintf("catalog: parse %s: %v", path, err))
	}
}

// Hymns returns all hymns in catalog order.
func Hymns() []Hymn { return hymns }

// HymnByID returns the hymn with the given id, or nil.
func HymnByID(id int) *Hymn { return hymnByID[id] }

// Achievements returns all achievement definitions in catalog order.
func Achievements() []Achievement { return achievements }

// AchievementByID returns the achievement with the given id, or nil.
func AchievementByID(id string) *Achievement { return achievementByID[id] }

// MicroActions returns all daily micro-actions.
func MicroActions() []MicroAction { return microActions }

// MicroActionByID returns the micro-action with the given id, or nil.
func MicroActionByID(id string) *MicroAction { return microActionByID[id] }

// EnvironmentalQuests returns all environmental quests.
func EnvironmentalQuests() []EnvironmentalQuest { return quests }

// EnvironmentalQuestByID returns the quest with the given id, or nil.
func EnvironmentalQuestByID(id string) *EnvironmentalQuest { return questByID[id] }

// EthicalChallenges returns all ethical challenges.
func EthicalChallenges() []EthicalChallenge { return challenges }

// EthicalChallengeByID returns the challenge with the given id, or nil.
func EthicalChallengeByID(id string) *EthicalChallenge { return challengeByID[id] }

// Quotes returns all daily quotes.
func Quotes() []Quote { return quotes }
