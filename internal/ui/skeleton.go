package ui

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Shimmer timing: opacity eases between the two levels, one leg per 800ms.
const (
	shimmerFPS     = 30
	shimmerLeg     = 800 * time.Millisecond
	shimmerLow     = 0.6
	shimmerHigh    = 1.0
	framesPerLeg   = int(shimmerLeg * shimmerFPS / time.Second)
	skeletonHeight = 7
)

var lastShimmerID atomic.Int64

func nextShimmerID() int {
	return int(lastShimmerID.Add(1))
}

// shimmer animates the opacity of loading placeholders. Each shimmer owns
// an id; ticks carrying another id are ignored, so restarting the animation
// orphans the previous tick chain.
type shimmer struct {
	id      int
	spring  harmonica.Spring
	opacity float64
	vel     float64
	target  float64
	frame   int
}

func newShimmer() shimmer {
	return shimmer{
		id:      nextShimmerID(),
		spring:  harmonica.NewSpring(harmonica.FPS(shimmerFPS), 6.0, 1.0),
		opacity: shimmerHigh,
		target:  shimmerLow,
	}
}

// tick schedules the next frame.
func (s shimmer) tick() tea.Cmd {
	id := s.id
	return tea.Tick(time.Second/shimmerFPS, func(time.Time) tea.Msg {
		return skeletonTick{ID: id}
	})
}

// advance steps the animation by one frame. It reports false for ticks that
// belong to another shimmer.
func (s shimmer) advance(msg skeletonTick) (shimmer, bool) {
	if msg.ID != s.id {
		return s, false
	}
	s.frame++
	if s.frame%framesPerLeg == 0 {
		if s.target == shimmerLow {
			s.target = shimmerHigh
		} else {
			s.target = shimmerLow
		}
	}
	s.opacity, s.vel = s.spring.Update(s.opacity, s.vel, s.target)
	s.opacity = min(max(s.opacity, shimmerLow), shimmerHigh)
	return s, true
}

// color blends the placeholder fill over the card background.
func (s shimmer) color() lipgloss.Color {
	base, err := colorful.Hex(skeletonBase)
	if err != nil {
		return lipgloss.Color(skeletonFill)
	}
	fill, err := colorful.Hex(skeletonFill)
	if err != nil {
		return lipgloss.Color(skeletonFill)
	}
	return lipgloss.Color(base.BlendRgb(fill, s.opacity).Clamped().Hex())
}

// renderSkeletons lays out n placeholder cards in the same grid as real cards.
func renderSkeletons(n, width int, s shimmer) string {
	if n <= 0 {
		return ""
	}
	cardWidth := columnWidth(width)
	block := lipgloss.NewStyle().Foreground(s.color())
	inner := max(cardWidth-4, 4)

	bar := func(frac float64) string {
		return block.Render(strings.Repeat("▇", max(int(float64(inner)*frac), 1)))
	}
	body := strings.Join([]string{
		bar(0.5),
		"",
		bar(1.0),
		bar(0.8),
		bar(0.6),
	}, "\n")
	card := Card.Width(cardWidth - 2).Height(skeletonHeight - 2).Render(body)

	cards := make([]string, n)
	for i := range cards {
		cards[i] = card
	}
	return grid(cards, width)
}
