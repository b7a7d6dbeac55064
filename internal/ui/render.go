package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"starstream/internal/media"
	"starstream/internal/news"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).MarginTop(1)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ratingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	barFull      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// displayName shows the original title next to a translated one.
func displayName(t media.Title) string {
	if t.OriginalTitle != "" && t.OriginalTitle != t.Title {
		return t.Title + " / " + t.OriginalTitle
	}
	return t.Title
}

// TitleLabel is the one-line label used in pickers.
func TitleLabel(t media.Title) string {
	return fmt.Sprintf("%s (%s) [%s] %s", displayName(t), t.Year, t.Kind, strings.Join(t.Genre, ", "))
}

// RenderRow renders a heading followed by one line per title.
func RenderRow(heading string, titles []media.Title) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(heading))
	b.WriteByte('\n')
	if len(titles) == 0 {
		b.WriteString(dimStyle.Render("  nothing here yet"))
		b.WriteByte('\n')
		return b.String()
	}
	for _, t := range titles {
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			titleStyle.Render(displayName(t)),
			dimStyle.Render(t.Year+" · "+t.Duration),
			ratingStyle.Render(fmt.Sprintf("★ %.1f", t.Rating)),
			dimStyle.Render("["+t.ID+"]"),
		)
	}
	return b.String()
}

// RenderProgress renders progress records with a small bar each.
func RenderProgress(records []media.ProgressRecord) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Continue Watching"))
	b.WriteByte('\n')
	if len(records) == 0 {
		b.WriteString(dimStyle.Render("  nothing in progress"))
		b.WriteByte('\n')
		return b.String()
	}
	for _, r := range records {
		name := r.Title
		if name == "" {
			name = r.TitleID
		}
		fmt.Fprintf(&b, "  %s %s %3d%% %s\n",
			miniBar(r.Progress, 20),
			titleStyle.Render(name),
			r.Progress,
			dimStyle.Render(r.Timestamp.Local().Format("2006-01-02 15:04")),
		)
	}
	return b.String()
}

// RenderNews renders a heading followed by each item's headline and summary.
func RenderNews(heading string, items []news.Item) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(heading))
	b.WriteByte('\n')
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  no news"))
		b.WriteByte('\n')
		return b.String()
	}
	for _, it := range items {
		fmt.Fprintf(&b, "  %s %s\n    %s\n",
			titleStyle.Render(it.Title),
			dimStyle.Render(it.Date+" ["+it.ID+"]"),
			it.Summary,
		)
	}
	return b.String()
}

// RenderArticle renders one news item in full.
func RenderArticle(it news.Item) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(it.Title))
	b.WriteByte('\n')
	meta := it.Date
	if it.Source != "" {
		meta += " · " + it.Source
	}
	b.WriteString(dimStyle.Render(meta))
	b.WriteString("\n\n")
	b.WriteString(it.Content)
	b.WriteByte('\n')
	return b.String()
}

func miniBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	return barFull.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}
