package catalog

// Verse is a single verse of a hymn. Audio names the pre-recorded clip id;
// the pronunciation endpoint falls back to synthesis when no clip exists.
type Verse struct {
	ID              int    `json:"id"`
	Sanskrit        string `json:"sanskrit"`
	Transliteration string `json:"transliteration"`
	Meaning         string `json:"meaning"`
	Audio           string `json:"audio"`
}

// Lesson groups a hymn's verses into a teachable unit. Verses holds 1-based
// indices into the hymn's verse list; indices that point past the list are
// tolerated and simply resolve to nothing.
type Lesson struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Verses []int  `json:"verses"`
}

type Hymn struct {
	ID              int      `json:"id"`
	Number          string   `json:"number"`
	Deity           string   `json:"deity"`
	Title           string   `json:"title"`
	Verses          []Verse  `json:"verses"`
	Lessons         []Lesson `json:"lessons"`
	CulturalContext string   `json:"cultural_context"`
	MicroAction     string   `json:"micro_action"`
	Difficulty      string   `json:"difficulty"`
}

// LessonByID returns the hymn's lesson with the given id, or nil.
func (h *Hymn) LessonByID(id int) *Lesson {
	for i := range h.Lessons {
		if h.Lessons[i].ID == id {
			return &h.Lessons[i]
		}
	}
	return nil
}

// ResolveVerses maps a lesson's verse indices to the hymn's verses,
// dropping indices with no matching verse.
func (h *Hymn) ResolveVerses(l *Lesson) []Verse {
	var out []Verse
	for _, idx := range l.Verses {
		if idx >= 1 && idx <= len(h.Verses) {
			out = append(out, h.Verses[idx-1])
		}
	}
	return out
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	XP          int    `json:"xp"`
}

type MicroAction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	XP          int    `json:"xp"`
}

type EnvironmentalQuest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deity       string `json:"deity"`
	XP          int    `json:"xp"`
}

// EthicalOption is one answer to an ethical challenge. Rita marks the
// option as aligned with cosmic order — the correctness predicate.
type EthicalOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Rita bool   `json:"rita"`
}

type EthicalChallenge struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Options     []EthicalOption `json:"options"`
	XP          int             `json:"xp"`
}

// OptionByID returns the challenge option with the given id, or nil.
func (c *EthicalChallenge) OptionByID(id string) *EthicalOption {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i]
		}
	}
	return nil
}

type Quote struct {
	Sanskrit        string `json:"sanskrit"`
	Transliteration string `json:"transliteration"`
	Meaning         string `json:"meaning"`
	Reference       string `json:"reference"`
}
