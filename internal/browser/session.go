package browser

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDriverInit is returned when the headless browser process cannot
	// start, e.g. a missing Chrome binary or a broken sandbox.
	ErrDriverInit = errors.New("browser driver failed to start")

	// ErrNavigation is returned when a page load or scroll fails.
	ErrNavigation = errors.New("page navigation failed")
)

// ImageElement is a raw <img> element as reported by the page DOM.
// Width and Height come from the element attributes; unset attributes
// are reported as 0.
type ImageElement struct {
	Src     string `json:"src"`
	DataSrc string `json:"dataSrc"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Session is a live headless browser page.
type Session interface {
	// Navigate loads the given URL
	Navigate(ctx context.Context, url string) error

	// ScrollToBottom repeatedly scrolls the page, pausing between scrolls,
	// until the page height stabilizes or maxScrolls is reached
	ScrollToBottom(ctx context.Context, pause time.Duration, maxScrolls int) error

	// ImageElements returns every <img> element currently in the DOM,
	// in document order
	ImageElements(ctx context.Context) ([]ImageElement, error)

	// Close terminates the browser process. Safe to call more than once
	// and after a prior failure.
	Close() error
}

// Launcher opens a new Session. Production code uses NewLauncher; tests
// substitute their own.
type Launcher func(ctx context.Context) (Session, error)
