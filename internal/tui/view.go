package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quizdesk/quizdesk/internal/bank"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	promptStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
)

func (m Model) View() string {
	if m.snap.Ended {
		return m.viewScore()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Question %d of %d", m.snap.Index+1, m.snap.Total)))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render(m.snap.Prompt))
	b.WriteString("\n\n")

	chosen := map[int]bool{}
	for _, n := range m.snap.Selection {
		chosen[n] = true
	}
	for i, option := range m.snap.Options {
		n := i + 1
		marker := "( )"
		if m.snap.Kind == bank.KindMulti {
			marker = "[ ]"
			if chosen[n] {
				marker = "[x]"
			}
		} else if chosen[n] {
			marker = "(x)"
		}
		line := fmt.Sprintf("  %s %d. %s", marker, n, option)
		if chosen[n] {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := okStyle
		if m.bad {
			style = badStyle
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n")

	if m.jumping {
		b.WriteString("Jump to: " + m.jump.View() + "\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) helpLine() string {
	if m.snap.Kind == bank.KindMulti {
		return "1-5 toggle · enter confirm · ←/→ navigate · j jump · q quit"
	}
	return "1-4 answer · ←/→ navigate · j jump · q quit"
}

func (m Model) viewScore() string {
	rep, ok := m.sess.Report()
	if !ok {
		return "finishing up...\n"
	}
	var b strings.Builder
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Quiz complete. Score: %d/%d", rep.CorrectCount, rep.TotalQuestions)))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("press any key to exit"))
	b.WriteString("\n")
	return b.String()
}
