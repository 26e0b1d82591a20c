package dropdown

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestOptionsVocabulary(t *testing.T) {
	want := []Option{"SS", "SK", "શિવમ", "નવી", "અન્ય."}
	got := Options()
	if len(got) != len(want) {
		t.Fatalf("Options() has %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Options()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Callers get a copy.
	got[0] = "XX"
	if Options()[0] != OptionSS {
		t.Error("Options() exposed the package slice")
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		in   Option
		want string
	}{
		{OptionSS, "SS"},
		{OptionSK, "SK"},
		{OptionShivam, "શિવમ"},
		{OptionNavi, "નવી"},
		{OptionOther, "અન્ય."},
		{"ss", "SS"},
		{"straße", "STRASSE"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := tt.in.Display(); got != tt.want {
			t.Errorf("Option(%q).Display() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseOption(t *testing.T) {
	for _, o := range Options() {
		got, err := ParseOption(string(o))
		if err != nil || got != o {
			t.Errorf("ParseOption(%q) = %q, %v", o, got, err)
		}
	}

	if got, err := ParseOption("sk"); err == nil {
		t.Errorf("ParseOption(sk) = %q, want error (not a literal or display form)", got)
	}

	_, err := ParseOption("nope")
	if !errors.Is(err, ErrUnknownOption) {
		t.Errorf("ParseOption(nope) err = %v, want ErrUnknownOption", err)
	}
}

func TestIsSelection(t *testing.T) {
	if !IsSelection("અન્ય.") {
		t.Error("display form should be a selection")
	}
	if IsSelection("") || IsSelection("ss") {
		t.Error("only display forms are selections")
	}
}

func TestRenderOptionBlankRow(t *testing.T) {
	row := renderOption(rowState{option: "", width: 4})

	if w := lipgloss.Width(row); w != 4+rowPadding {
		t.Errorf("blank row width = %d, want %d", w, 4+rowPadding)
	}
	if strings.TrimSpace(ansi.Strip(row)) != "" {
		t.Errorf("blank row rendered text %q", ansi.Strip(row))
	}
}

func TestRenderOptionTruncates(t *testing.T) {
	row := renderOption(rowState{option: "abcdefgh", width: 4})
	text := strings.TrimSpace(ansi.Strip(row))

	if text != "ABC…" {
		t.Errorf("truncated label = %q, want ABC…", text)
	}
	if w := lipgloss.Width(row); w != 4+rowPadding {
		t.Errorf("row width = %d, want %d", w, 4+rowPadding)
	}
}

func TestRenderOptionIsPure(t *testing.T) {
	st := rowState{option: OptionSK, width: 6, hovered: true}
	if renderOption(st) != renderOption(st) {
		t.Error("renderOption should be deterministic for equal inputs")
	}
}
