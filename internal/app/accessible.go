package app

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/marcus/markselect/internal/form"
	"github.com/marcus/markselect/pkg/dropdown"
)

// accessibleSource tags patches produced by the plain prompt flow.
const accessibleSource = "accessible"

// lineReader hands out at most one input line per Read. Each accessible
// prompt scans its own answer from the shared input, so a prompt must not
// be able to buffer the lines meant for the prompts after it.
type lineReader struct {
	r       *bufio.Reader
	pending []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.r.ReadBytes('\n')
		if len(line) == 0 {
			return 0, err
		}
		l.pending = line
	}
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

// markOptions returns the select options for the prompt flow, labelled and
// valued with the committed display form.
func markOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(dropdown.Options()))
	for _, o := range dropdown.Options() {
		opts = append(opts, huh.NewOption(o.Display(), o.Display()))
	}
	return opts
}

// accessibleForm builds the line-based prompt for screen readers. Values are
// written into name and mark.
func accessibleForm(name, mark *string, in io.Reader, out io.Writer) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				CharLimit(64).
				Value(name),
			huh.NewSelect[string]().
				Title(dropdown.Placeholder).
				Options(markOptions()...).
				Value(mark),
		),
	).
		WithAccessible(true).
		WithInput(newLineReader(in)).
		WithOutput(out)
}

// RunAccessible asks for the form values with plain line prompts instead of
// the full-screen view. The answers go through the same store as the
// interactive screen.
func RunAccessible(ctx context.Context, cfg Config, in io.Reader, out io.Writer) (Result, error) {
	initial := map[form.Field]string{}
	if cfg.Preset != "" {
		initial[form.SelectedMarkOption] = cfg.Preset
	}
	store := form.NewStore(form.NewState(initial))

	name := ""
	mark := cfg.Preset
	if err := accessibleForm(&name, &mark, in, out).RunWithContext(ctx); err != nil {
		return Result{}, fmt.Errorf("run prompts: %w", err)
	}

	patch := form.Patch{}
	if name != "" {
		patch[form.Name] = name
	}
	if mark != "" {
		patch[form.SelectedMarkOption] = mark
	}
	store.Apply(form.PatchMsg{Source: accessibleSource, Patch: patch})

	if cfg.Logger != nil {
		cfg.Logger.Info("form: submitted", "mode", accessibleSource, "fields", len(patch))
	}
	return Result{State: store.Snapshot(), Submitted: true}, nil
}
