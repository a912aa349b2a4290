package learn

import "testing"

func TestStageProgression(t *testing.T) {
	c := NewContext()
	if c.Stage() != StageAuth {
		t.Fatalf("expected StageAuth, got %v", c.Stage())
	}

	c.SetUser(&User{UID: "u1", Username: "dev"})
	if c.Stage() != StagePersona {
		t.Fatalf("expected StagePersona after sign-in, got %v", c.Stage())
	}

	c.SetPersona(PersonaFresher)
	if c.Stage() != StageReady {
		t.Fatalf("expected StageReady after persona pick, got %v", c.Stage())
	}

	c.ClearPersona()
	if c.Stage() != StagePersona {
		t.Fatalf("expected StagePersona after clearing, got %v", c.Stage())
	}
}

func TestAddXPAccumulates(t *testing.T) {
	c := NewContext()
	if c.XP != SeedXP {
		t.Fatalf("expected seed XP %d, got %d", SeedXP, c.XP)
	}

	for _, award := range []int{50, 25, 100} {
		c.AddXP(award)
	}
	if c.XP != SeedXP+175 {
		t.Fatalf("expected %d XP, got %d", SeedXP+175, c.XP)
	}
}

func TestAddXPIgnoresNonPositive(t *testing.T) {
	c := NewContext()
	c.AddXP(0)
	c.AddXP(-10)
	if c.XP != SeedXP {
		t.Fatalf("XP changed by non-positive award: %d", c.XP)
	}
}

func TestXPHookFiresWithAmount(t *testing.T) {
	c := NewContext()
	var got []int
	c.OnXPAward = func(amount int) { got = append(got, amount) }

	c.AddXP(50)
	c.AddXP(0) // ignored, no hook
	c.AddXP(25)

	if len(got) != 2 || got[0] != 50 || got[1] != 25 {
		t.Fatalf("unexpected hook amounts: %v", got)
	}
}

func TestHydrateOnlyOverwritesDefinedFields(t *testing.T) {
	c := NewContext()
	persona := PersonaExperienced

	c.Hydrate(-1, -1, nil)
	if c.XP != SeedXP || c.Streak != SeedStreak || c.Persona != nil {
		t.Fatal("hydrate with no defined fields changed state")
	}

	c.Hydrate(2000, -1, &persona)
	if c.XP != 2000 {
		t.Fatalf("expected XP 2000, got %d", c.XP)
	}
	if c.Streak != SeedStreak {
		t.Fatalf("streak overwritten by undefined field: %d", c.Streak)
	}
	if c.Persona == nil || *c.Persona != PersonaExperienced {
		t.Fatalf("persona not hydrated: %v", c.Persona)
	}
}

func TestHydrateDoesNotFireHooks(t *testing.T) {
	c := NewContext()
	fired := false
	c.OnPersonaChange = func(*Persona) { fired = true }
	c.OnXPAward = func(int) { fired = true }

	p := PersonaStudent
	c.Hydrate(9000, 9, &p)
	if fired {
		t.Fatal("hydrate fired a sync hook")
	}
}

func TestLogoutResetsToSeeds(t *testing.T) {
	c := NewContext()
	c.SetUser(&User{UID: "u1"})
	c.SetPersona(PersonaStudent)
	c.AddXP(500)
	c.SetLanguage("Hindi")

	c.Logout()
	if c.User != nil || c.Persona != nil {
		t.Fatal("logout kept identity state")
	}
	if c.XP != SeedXP || c.Streak != SeedStreak {
		t.Fatalf("logout kept progress: xp=%d streak=%d", c.XP, c.Streak)
	}
	if c.Language != DefaultLanguage {
		t.Fatalf("logout kept language %q", c.Language)
	}
}

func TestParsePersona(t *testing.T) {
	for _, p := range Personas {
		got, err := ParsePersona(string(p))
		if err != nil || got != p {
			t.Fatalf("round-trip failed for %q: %v", p, err)
		}
	}
	if _, err := ParsePersona("Wizard"); err == nil {
		t.Fatal("expected error for unknown persona")
	}
}

func TestNextLanguageCycles(t *testing.T) {
	seen := map[string]bool{}
	lang := DefaultLanguage
	for range Languages {
		seen[lang] = true
		lang = NextLanguage(lang)
	}
	if lang != DefaultLanguage {
		t.Fatalf("cycle did not wrap, ended on %q", lang)
	}
	if len(seen) != len(Languages) {
		t.Fatalf("cycle skipped languages: saw %d of %d", len(seen), len(Languages))
	}

	if NextLanguage("Klingon") != DefaultLanguage {
		t.Fatal("unknown language should restart at default")
	}
}
