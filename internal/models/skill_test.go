package models

import "testing"

func TestValidCategory(t *testing.T) {
	for _, cat := range SkillCategories {
		if !ValidCategory(cat) {
			t.Errorf("%s should be valid", cat)
		}
	}
	if ValidCategory("Cooking") {
		t.Error("unknown category should be invalid")
	}
	if ValidCategory("technology") {
		t.Error("category check is case sensitive")
	}
}

func TestValidExperienceLevel(t *testing.T) {
	for _, l := range []ExperienceLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert} {
		if !ValidExperienceLevel(l) {
			t.Errorf("%s should be valid", l)
		}
	}
	if ValidExperienceLevel("Master") {
		t.Error("unknown level should be invalid")
	}
}

func TestValidUrgency(t *testing.T) {
	for _, u := range []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh} {
		if !ValidUrgency(u) {
			t.Errorf("%s should be valid", u)
		}
	}
	if ValidUrgency("urgent") {
		t.Error("unknown urgency should be invalid")
	}
}
