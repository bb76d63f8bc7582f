package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/typeahead/internal/widget"
)

// RunModel starts the interactive prompt for the given widget and blocks
// until it exits. Width/height of 0 auto-detect the terminal size. Extra
// ProgramOptions (e.g., custom IO) can be provided to mirror tea.NewProgram.
func RunModel(w *widget.Widget, width, height int, noColor bool, opts ...tea.ProgramOption) error {
	m := NewModel(w, noColor)

	if width > 0 || height > 0 {
		runW := width
		runH := height
		if runW <= 0 || runH <= 0 {
			if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if runW <= 0 {
					runW = tw
				}
				if runH <= 0 {
					runH = th
				}
			}
		}
		if runW <= 0 {
			runW = 80
		}
		if runH <= 0 {
			runH = 24
		}
		m.width = runW
		m.height = runH
		opts = append(opts, tea.WithWindowSize(runW, runH))
	}

	prog := tea.NewProgram(m, opts...)
	_, err := prog.Run()
	return err
}
