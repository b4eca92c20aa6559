package progress

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestExportRoundTrip(t *testing.T) {
	svc := newTestService()
	hymn := mustHymn(t, 1)
	svc.CompleteLesson("s1", hymn, hymn.LessonByID(1))
	svc.TouchStreak("s1")
	svc.UnlockAchievement("s1", "first_hymn")
	svc.CompleteMicroAction("s1", "deep_breaths")

	doc := svc.Export("s1")
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}

	applied, err := svc.Import("s2", raw)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(applied) != 5 {
		t.Errorf("applied = %v, want all five records", applied)
	}

	if !svc.Progress("s2").HasLessonKey("1-1") {
		t.Error("progress not reproduced on target session")
	}
	if svc.XP("s2").CurrentXP != svc.XP("s1").CurrentXP {
		t.Error("xp not reproduced on target session")
	}
	got := svc.Achievements("s2")
	if len(got) != 1 || got[0] != "first_hymn" {
		t.Errorf("achievements = %v, want [first_hymn]", got)
	}
	if len(svc.MicroActions("s2")) != 1 {
		t.Error("micro-action log not reproduced on target session")
	}
}

func TestExportDefaultsForFreshSession(t *testing.T) {
	svc := newTestService()

	doc := svc.Export("untouched")
	if doc.Progress == nil || doc.Streak == nil || doc.XP == nil {
		t.Fatal("export missing record fields")
	}
	if doc.XP.CurrentLevel != 1 || doc.XP.XPToNextLevel != 100 {
		t.Errorf("xp = %+v, want level 1 defaults", doc.XP)
	}
	if doc.Achievements == nil || doc.MicroActions == nil {
		t.Error("export must carry empty collections, not nulls")
	}
	if _, err := time.Parse(time.RFC3339, doc.ExportDate); err != nil {
		t.Errorf("exportDate %q not RFC3339: %v", doc.ExportDate, err)
	}
}

func TestExportFilename(t *testing.T) {
	svc := newTestServiceAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	want := "rigveda-progress-2026-03-10.json"
	if got := svc.ExportFilename(); got != want {
		t.Errorf("ExportFilename() = %q, want %q", got, want)
	}
}

func TestImportPartialDocument(t *testing.T) {
	svc := newTestService()
	svc.AwardXP("s1", 40)

	// Only the xp field; everything else stays as is.
	raw := []byte(`{"xp":{"currentXP":10,"currentLevel":3,"xpToNextLevel":225}}`)
	applied, err := svc.Import("s1", raw)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(applied) != 1 || applied[0] != "xp" {
		t.Errorf("applied = %v, want [xp]", applied)
	}

	xp := svc.XP("s1")
	if xp.CurrentLevel != 3 || xp.CurrentXP != 10 {
		t.Errorf("xp = %+v, want imported record", xp)
	}

	// Progress was not in the document.
	if svc.Progress("s1").XPTotal != 40 {
		t.Error("progress record was touched by a document without it")
	}
}

func TestImportIgnoresUnknownFields(t *testing.T) {
	svc := newTestService()

	raw := []byte(`{"xp":{"currentXP":5,"currentLevel":1,"xpToNextLevel":100},"futureField":{"a":1}}`)
	if _, err := svc.Import("s1", raw); err != nil {
		t.Fatalf("import with unknown field: %v", err)
	}
	if svc.XP("s1").CurrentXP != 5 {
		t.Error("known field not applied alongside unknown one")
	}
}

func TestImportMalformed(t *testing.T) {
	svc := newTestService()

	for _, raw := range []string{"", "not json", `[1,2,3]`, `"progress"`} {
		_, err := svc.Import("s1", []byte(raw))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("Import(%q) err = %v, want ErrMalformedDocument", raw, err)
		}
	}
}
