// Package ui provides the Bubble Tea TUI for bestiary.
package ui

import (
	"github.com/abelbrown/bestiary/internal/catalog"
	"github.com/abelbrown/bestiary/internal/session"
)

// PageLoaded is sent when a page fetch issued by the session finishes.
type PageLoaded struct {
	Req  session.Request
	Page catalog.Page
	Err  error
}

// skeletonTick advances the placeholder shimmer. ID ties it to one shimmer
// so stale tick chains die out.
type skeletonTick struct {
	ID int
}
