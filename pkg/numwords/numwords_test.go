package numwords

import "testing"

func TestSpellFrench(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "zéro"},
		{1, "un"},
		{16, "seize"},
		{17, "dix-sept"},
		{21, "vingt et un"},
		{22, "vingt-deux"},
		{70, "soixante-dix"},
		{71, "soixante et onze"},
		{72, "soixante-douze"},
		{80, "quatre-vingts"},
		{81, "quatre-vingt-un"},
		{91, "quatre-vingt-onze"},
		{100, "cent"},
		{101, "cent un"},
		{200, "deux cents"},
		{201, "deux cent un"},
		{300, "trois cents"},
		{999, "neuf cent quatre-vingt-dix-neuf"},
		{1000, "mille"},
		{1080, "mille quatre-vingts"},
		{1980, "mille neuf cent quatre-vingts"},
		{2000, "deux mille"},
		{80000, "quatre-vingt mille"},
		{200000, "deux cent mille"},
		{1000000, "un million"},
		{80000000, "quatre-vingts millions"},
		{200000000, "deux cents millions"},
		{2500000, "deux millions cinq cent mille"},
		{1000000000, "un milliard"},
	}

	for _, tc := range cases {
		got, err := Spell("fr", tc.n)
		if err != nil {
			t.Fatalf("Spell(fr, %d): %v", tc.n, err)
		}
		if got != tc.want {
			t.Errorf("Spell(fr, %d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestSpellEnglish(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{42, "forty-two"},
		{115, "one hundred fifteen"},
		{300, "three hundred"},
		{1080, "one thousand eighty"},
		{2500000, "two million five hundred thousand"},
	}

	for _, tc := range cases {
		got, err := Spell("en", tc.n)
		if err != nil {
			t.Fatalf("Spell(en, %d): %v", tc.n, err)
		}
		if got != tc.want {
			t.Errorf("Spell(en, %d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestSpellRange(t *testing.T) {
	if _, err := Spell("fr", -1); err == nil {
		t.Error("expected error for negative input")
	}
	if _, err := Spell("fr", 1_000_000_000_000); err == nil {
		t.Error("expected error above supported range")
	}
}

func TestSpellUnknownLanguageFallsBackToFrench(t *testing.T) {
	got, err := Spell("ar", 21)
	if err != nil {
		t.Fatal(err)
	}
	if got != "vingt et un" {
		t.Errorf("got %q, want French fallback", got)
	}
}
