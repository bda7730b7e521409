package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorAccent    = lipgloss.Color("196") // Red, the catalog's brand colour
	colorCardEdge  = lipgloss.Color("238")
)

// Skeleton shimmer endpoints, blended by opacity.
const (
	skeletonBase = "#1f2937" // card background
	skeletonFill = "#e5e7eb" // placeholder block
)

// Header style for the banner line.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorAccent).
	Padding(0, 1)

// HeaderSub style for the banner's right-hand text.
var HeaderSub = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// Card style for a loaded creature.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorCardEdge).
	Padding(0, 1)

// CardName style for the creature name.
var CardName = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// CardID style for the dex number.
var CardID = lipgloss.NewStyle().
	Foreground(colorMuted)

// CardArtwork style for the artwork reference line.
var CardArtwork = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Underline(true)

// CardSection style for the MOVES / STATS headings.
var CardSection = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// CardText style for move and stat lines.
var CardText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// CategoryBadge style for type tags on a card.
var CategoryBadge = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// FilterBar style for the search and type rows.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// FilterBarPrompt style for the "/" prompt.
var FilterBarPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// FilterBarLabel style for inactive filter labels.
var FilterBarLabel = lipgloss.NewStyle().
	Foreground(colorSecondary)

// FilterBarValue style for the selected type.
var FilterBarValue = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Bold(true)

// LoadMoreButton style for the actionable load-more row.
var LoadMoreButton = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorAccent).
	Padding(0, 2)

// LoadMoreBusy style while a page is loading.
var LoadMoreBusy = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorMuted).
	Padding(0, 2)

// EmptyState style for "no results".
var EmptyState = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(1, 2)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true)

// Picker style for the category modal.
var Picker = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorAccent).
	Padding(1, 2)

// PickerHint style for the modal's key hints.
var PickerHint = lipgloss.NewStyle().
	Foreground(colorMuted)

// DebugPanel style for the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle for section headers in the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)
