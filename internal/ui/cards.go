package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abelbrown/bestiary/internal/catalog"
)

const (
	maxCardMoves = 3
	maxCardStats = 3

	// Below this width the grid collapses to one column.
	twoColumnMinWidth = 60
	minCardWidth      = 24
)

func columns(width int) int {
	if width < twoColumnMinWidth {
		return 1
	}
	return 2
}

func columnWidth(width int) int {
	return max(width/columns(width), minCardWidth)
}

// grid arranges rendered cards left to right, top to bottom.
func grid(cards []string, width int) string {
	cols := columns(width)
	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// titleCase upper-cases the first letter and leaves the rest as is.
func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.English).String(string(r)) + s[size:]
}

// moveLabel replaces the first hyphen of a move name with a space.
func moveLabel(name string) string {
	return strings.Replace(name, "-", " ", 1)
}

// renderCard renders one creature. Sections with no data are omitted.
func renderCard(it catalog.Item, width int) string {
	inner := max(width-4, 8)

	var lines []string
	lines = append(lines, CardName.Render(truncateRunes(titleCase(it.Name), inner-6))+" "+CardID.Render(fmt.Sprintf("#%03d", it.ID)))

	if len(it.Categories) > 0 {
		badges := make([]string, 0, len(it.Categories))
		for _, c := range it.Categories {
			badges = append(badges, CategoryBadge.Render(c.Name))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, badges...))
	}

	// Missing artwork keeps its line so cards in a row line up.
	if it.Artwork != "" {
		lines = append(lines, CardArtwork.Render(truncateRunes(it.Artwork, inner)))
	} else {
		lines = append(lines, "")
	}

	if len(it.Moves) > 0 {
		lines = append(lines, "", CardSection.Render("MOVES"))
		for _, m := range it.Moves[:min(len(it.Moves), maxCardMoves)] {
			lines = append(lines, CardText.Render(truncateRunes(moveLabel(m.Name), inner)))
		}
	}

	if len(it.Stats) > 0 {
		lines = append(lines, "", CardSection.Render("STATS"))
		for _, s := range it.Stats[:min(len(it.Stats), maxCardStats)] {
			lines = append(lines, CardText.Render(truncateRunes(fmt.Sprintf("%s: %d", s.Name, s.Value), inner)))
		}
	}

	return Card.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderCards renders items in a grid sized to width.
func renderCards(items []catalog.Item, width int) string {
	cardWidth := columnWidth(width)
	cards := make([]string, len(items))
	for i, it := range items {
		cards[i] = renderCard(it, cardWidth)
	}
	return grid(cards, width)
}
