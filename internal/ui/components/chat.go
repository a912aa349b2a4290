package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/ui/theme"
)

// Transcript renders a conversation as alternating bubbles, newest at
// the bottom, trimmed to fit the given height.
type Transcript struct {
	Messages []learn.Message
	Thinking bool
}

// View renders the transcript into a width x height box.
func (t Transcript) View(width, height int) string {
	var lines []string
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = width
	}

	for _, msg := range t.Messages {
		lines = append(lines, renderBubble(msg, width, bubbleWidth)...)
		lines = append(lines, "")
	}
	if t.Thinking {
		lines = append(lines, theme.Hint.Render("  …thinking"))
	}

	// Keep the tail of the conversation visible.
	if height > 0 && len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

func renderBubble(msg learn.Message, width, bubbleWidth int) []string {
	style := theme.ModelBubble
	align := lipgloss.Left
	if msg.Role == learn.RoleUser {
		style = theme.UserBubble
		align = lipgloss.Right
	}

	body := style.Width(bubbleWidth).Render(msg.Content)
	if len(msg.Citations) > 0 {
		var refs []string
		for i, c := range msg.Citations {
			refs = append(refs, fmt.Sprintf("[%d] %s", i+1, c.Title))
		}
		body += "\n" + theme.Hint.Width(bubbleWidth).Render(strings.Join(refs, "  "))
	}
	if len(msg.Audio) > 0 {
		body += "\n" + theme.Hint.Render("♪ audio reply")
	}

	placed := lipgloss.NewStyle().Width(width).Align(align).Render(body)
	return strings.Split(placed, "\n")
}
