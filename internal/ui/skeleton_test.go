package ui

import (
	"strings"
	"testing"
)

func TestShimmerStaysInRange(t *testing.T) {
	s := newShimmer()
	for i := 0; i < framesPerLeg*4; i++ {
		var ok bool
		s, ok = s.advance(skeletonTick{ID: s.id})
		if !ok {
			t.Fatal("own tick rejected")
		}
		if s.opacity < shimmerLow || s.opacity > shimmerHigh {
			t.Fatalf("frame %d: opacity %v out of range", i, s.opacity)
		}
	}
}

func TestShimmerAlternatesTarget(t *testing.T) {
	s := newShimmer()
	if s.target != shimmerLow {
		t.Fatalf("initial target = %v, want %v", s.target, shimmerLow)
	}
	for i := 0; i < framesPerLeg; i++ {
		s, _ = s.advance(skeletonTick{ID: s.id})
	}
	if s.target != shimmerHigh {
		t.Errorf("target after one leg = %v, want %v", s.target, shimmerHigh)
	}
	for i := 0; i < framesPerLeg; i++ {
		s, _ = s.advance(skeletonTick{ID: s.id})
	}
	if s.target != shimmerLow {
		t.Errorf("target after two legs = %v, want %v", s.target, shimmerLow)
	}
}

func TestShimmerApproachesLow(t *testing.T) {
	s := newShimmer()
	for i := 0; i < framesPerLeg-1; i++ {
		s, _ = s.advance(skeletonTick{ID: s.id})
	}
	if s.opacity > 0.7 {
		t.Errorf("opacity after one leg = %v, want near %v", s.opacity, shimmerLow)
	}
}

func TestShimmerIDsAreUnique(t *testing.T) {
	a, b := newShimmer(), newShimmer()
	if a.id == b.id {
		t.Error("shimmers should get distinct ids")
	}
	if _, ok := a.advance(skeletonTick{ID: b.id}); ok {
		t.Error("a shimmer should reject another shimmer's tick")
	}
}

func TestShimmerColorFollowsOpacity(t *testing.T) {
	s := newShimmer()
	bright := s.color()
	s.opacity = shimmerLow
	dim := s.color()

	if bright == dim {
		t.Error("color should change with opacity")
	}
	if string(bright) != skeletonFill {
		t.Errorf("full opacity color = %s, want %s", bright, skeletonFill)
	}
}

func TestRenderSkeletons(t *testing.T) {
	if got := renderSkeletons(0, 80, newShimmer()); got != "" {
		t.Errorf("zero placeholders should render nothing, got %q", got)
	}

	out := renderSkeletons(4, 100, newShimmer())
	if lines := strings.Count(out, "\n") + 1; lines != 2*skeletonHeight {
		t.Errorf("4 placeholders in two columns = %d lines, want %d", lines, 2*skeletonHeight)
	}
}
