package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/typeahead/internal/fragment"
)

const maxVisibleOptions = 8

// View renders the prompt, the dropdown when open, and a one-line status.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	st := m.widget.State()
	if st.Open {
		b.WriteString(m.renderDropdown(st.Options, st.Selected))
	}
	b.WriteString(m.renderStatus())

	return tea.NewView(b.String())
}

func (m *Model) renderDropdown(options []fragment.Option, selected int) string {
	marker := "❯ "
	blank := "  "

	selStyle := lipgloss.NewStyle()
	disStyle := lipgloss.NewStyle()
	if !m.noColor {
		selStyle = selStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
		disStyle = disStyle.Foreground(lipgloss.Color("240"))
	}

	labelWidth := m.width - 4
	if labelWidth < 10 {
		labelWidth = 10
	}

	start, end := visibleWindow(len(options), selected, maxVisibleOptions)

	var b strings.Builder
	for i := start; i < end; i++ {
		opt := options[i]
		label := runewidth.Truncate(opt.Label, labelWidth, "…")

		line := blank + label
		switch {
		case i == selected:
			line = selStyle.Render(marker + label)
		case opt.Disabled:
			line = disStyle.Render(blank + label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if end < len(options) {
		b.WriteString(disStyle.Render(fmt.Sprintf("  … %d more", len(options)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	style := lipgloss.NewStyle()
	switch {
	case m.lastErr != nil:
		if !m.noColor {
			style = style.Foreground(lipgloss.Color("9")).Bold(true)
		}
		return style.Render("error: "+m.lastErr.Error()) + "\n"
	case m.loading:
		if !m.noColor {
			style = style.Foreground(lipgloss.Color("11"))
		}
		return style.Render("fetching suggestions…") + "\n"
	case m.widget.CommittedValue() != "":
		if !m.noColor {
			style = style.Foreground(lipgloss.Color("10"))
		}
		return style.Render("value: "+m.widget.CommittedValue()) + "\n"
	}
	return ""
}

// visibleWindow clamps the dropdown to height rows, keeping the selection in
// view.
func visibleWindow(n, selected, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := start + height
	if end > n {
		end = n
		start = end - height
	}
	return start, end
}
