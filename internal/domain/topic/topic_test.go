package topic

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"plain", "operating systems", "operating systems"},
		{"word order collapses", "os notes", "notes os"},
		{"stopwords dropped", "Notes for OS", "notes os"},
		{"mixed case and trailing stopword", "OS NOTES for", "notes os"},
		{"punctuation stripped", "c++ & networks!", "c networks"},
		{"digits kept", "math 101", "101 math"},
		{"all stopwords", "for the and of", ""},
		{"only punctuation", "?!...", ""},
		{"empty", "", ""},
		{"collapses whitespace", "  dbms \t internals \n", "dbms internals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.query); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	queries := []string{
		"Notes for OS",
		"advanced DBMS internals",
		"math 101",
		"",
		"for the and of",
	}
	for _, q := range queries {
		once := Normalize(q)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", q, once, twice)
		}
	}
}

func TestNormalizeEquivalentPhrasings(t *testing.T) {
	want := "notes os"
	for _, q := range []string{"Notes for OS", "os notes", "OS NOTES for"} {
		if got := Normalize(q); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", q, got, want)
		}
	}
}
