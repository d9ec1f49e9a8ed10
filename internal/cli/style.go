package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/lazypower/tended/internal/health"
	"github.com/lazypower/tended/internal/model"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

var expressionFaces = map[health.Expression]string{
	health.ExpressionHappy:    "😊",
	health.ExpressionContent:  "🙂",
	health.ExpressionWorried:  "😟",
	health.ExpressionSleeping: "😴",
	health.ExpressionExcited:  "🤩",
	health.ExpressionWinking:  "😉",
}

// statusText renders a status label in its palette color.
func statusText(s health.Status) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color())).Render(s.Label())
}

func face(s health.Status) string {
	return expressionFaces[health.ExpressionFor(s)]
}

func tierText(t model.Tier) string {
	return fmt.Sprintf("%d · %s", int(t), t.Label())
}

func rolesText(roles []model.Role) string {
	if len(roles) == 0 {
		return "-"
	}
	labels := make([]string, len(roles))
	for i, r := range roles {
		labels[i] = r.Label()
	}
	return strings.Join(labels, ", ")
}

// reciprocityText describes who tends to reach out.
func reciprocityText(ratio *float64) string {
	if ratio == nil {
		return "not enough data yet"
	}
	pct := int(*ratio*100 + 0.5)
	switch {
	case *ratio > 0.7:
		return fmt.Sprintf("mostly you (%d%%)", pct)
	case *ratio < 0.3:
		return fmt.Sprintf("mostly them (%d%% you)", pct)
	default:
		return fmt.Sprintf("balanced (%d%% you)", pct)
	}
}

func ago(t time.Time) string {
	return humanize.Time(t)
}

func plantText(a model.Appearance) string {
	return fmt.Sprintf("%s in a %s %s pot",
		strings.ReplaceAll(string(a.Species), "_", " "), a.PotColor, a.PotStyle)
}
