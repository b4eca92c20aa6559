package catalog

import "testing"

func TestCatalogLoaded(t *testing.T) {
	if len(Hymns()) == 0 {
		t.Fatal("no hymns loaded")
	}
	if len(Achievements()) == 0 {
		t.Fatal("no achievements loaded")
	}
	if len(MicroActions()) == 0 {
		t.Fatal("no micro-actions loaded")
	}
	if len(EnvironmentalQuests()) == 0 {
		t.Fatal("no environmental quests loaded")
	}
	if len(EthicalChallenges()) == 0 {
		t.Fatal("no ethical challenges loaded")
	}
	if len(Quotes()) == 0 {
		t.Fatal("no quotes loaded")
	}
}

func TestHymnLookup(t *testing.T) {
	h := HymnByID(1)
	if h == nil {
		t.Fatal("hymn 1 missing")
	}
	if h.Deity != "Agni" {
		t.Errorf("Deity = %q, want Agni", h.Deity)
	}
	if HymnByID(999) != nil {
		t.Error("lookup of unknown hymn returned a value")
	}
}

func TestLessonByID(t *testing.T) {
	h := HymnByID(1)
	if h.LessonByID(1) == nil {
		t.Error("lesson 1 missing from hymn 1")
	}
	if h.LessonByID(99) != nil {
		t.Error("lookup of unknown lesson returned a value")
	}
}

func TestResolveVersesDropsBadIndices(t *testing.T) {
	h := HymnByID(1)

	got := h.ResolveVerses(h.LessonByID(1))
	if len(got) != 2 {
		t.Errorf("lesson 1 resolved %d verses, want 2", len(got))
	}

	// Lesson 2 points at verses 3 and 4; the hymn has 2.
	got = h.ResolveVerses(h.LessonByID(2))
	if len(got) != 0 {
		t.Errorf("lesson 2 resolved %d verses, want 0", len(got))
	}
}

func TestEveryHymnLessonHasVerseRefs(t *testing.T) {
	for _, h := range Hymns() {
		if len(h.Lessons) == 0 {
			t.Errorf("hymn %d has no lessons", h.ID)
		}
		for _, l := range h.Lessons {
			if len(l.Verses) == 0 {
				t.Errorf("hymn %d lesson %d references no verses", h.ID, l.ID)
			}
		}
	}
}

func TestEthicalChallengesHaveAlignedOption(t *testing.T) {
	for _, c := range EthicalChallenges() {
		aligned := false
		for _, opt := range c.Options {
			if opt.Rita {
				aligned = true
			}
		}
		if !aligned {
			t.Errorf("challenge %s has no rita-aligned option", c.ID)
		}
	}
}

func TestAchievementLookup(t *testing.T) {
	a := AchievementByID("first_hymn")
	if a == nil {
		t.Fatal("first_hymn missing")
	}
	if a.XP <= 0 {
		t.Errorf("first_hymn XP = %d, want positive", a.XP)
	}
	if AchievementByID("no_such") != nil {
		t.Error("lookup of unknown achievement returned a value")
	}
}
