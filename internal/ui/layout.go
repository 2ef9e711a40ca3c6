package ui

import "time"

// LayoutCompactWidth is the width below which the header and status line
// drop optional segments.
const LayoutCompactWidth = 100

// Overlay sizes.
const (
	// OverlayMaxWidth caps the search and bookmark overlays.
	OverlayMaxWidth = 90

	// HelpWidth is the width of the help overlay.
	HelpWidth = 48
)

// Timing constants.
const (
	// DefaultUIInterval is how often the model checks for reloaded content.
	DefaultUIInterval = time.Second

	// DefaultNotification is how long status notices stay visible.
	DefaultNotification = 3 * time.Second
)
