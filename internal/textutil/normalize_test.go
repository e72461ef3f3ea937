package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "Pink Floyd", "pink floyd"},
		{"trim", "  The Wall \t\n", "the wall"},
		{"full width colon", "Re：Zero", "re:zero"},
		{"en dash", "Café – Best Of", "café - best of"},
		{"em dash", "Live—1975", "live-1975"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"non ascii upper", "ÉDITH PIAF", "édith piaf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeCaseInsensitive(t *testing.T) {
	a := Normalize("Café – Best Of")
	b := Normalize("café - best of")
	if a != b {
		t.Fatalf("expected %q and %q to normalize equally", a, b)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Café – Best Of",
		"  Sigur Rós — ( )  ",
		"Re：Zero",
		"İstanbul",
		"ΣΊΣΥΦΟΣ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
