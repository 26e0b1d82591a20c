package dropdown

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Option is one selectable mark.
type Option string

// The fixed vocabulary, in display order.
const (
	OptionSS     Option = "SS"
	OptionSK     Option = "SK"
	OptionShivam Option = "શિવમ"
	OptionNavi   Option = "નવી"
	OptionOther  Option = "અન્ય."
)

// Placeholder is the toggle label shown before anything is committed.
const Placeholder = "માર્કો"

var options = []Option{OptionSS, OptionSK, OptionShivam, OptionNavi, OptionOther}

// Options returns the fixed vocabulary in display order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// Display returns the upper-cased form written into form state.
// Scripts without case (Gujarati) come back unchanged.
func (o Option) Display() string {
	return cases.Upper(language.Und).String(string(o))
}

func (o Option) String() string {
	return string(o)
}

// ErrUnknownOption is returned by ParseOption for values outside the vocabulary.
var ErrUnknownOption = errors.New("unknown option")

// ParseOption matches s against the vocabulary by literal or display form.
func ParseOption(s string) (Option, error) {
	for _, o := range options {
		if string(o) == s || o.Display() == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOption, s)
}

// IsSelection reports whether s is the display form of some option.
func IsSelection(s string) bool {
	for _, o := range options {
		if o.Display() == s {
			return true
		}
	}
	return false
}
