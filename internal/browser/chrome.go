package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Options configures the Chrome process backing a session.
type Options struct {
	Headless   bool
	DisableGPU bool
	NoSandbox  bool
	UserAgent  string
	NavTimeout time.Duration
}

// chromeSession drives a dedicated headless Chrome process via chromedp.
type chromeSession struct {
	browserCtx      context.Context
	browserCancel   context.CancelFunc
	allocatorCancel context.CancelFunc
	navTimeout      time.Duration
	closeOnce       sync.Once
}

// NewLauncher returns a Launcher that starts one Chrome process per session.
func NewLauncher(opts Options) Launcher {
	return func(ctx context.Context) (Session, error) {
		return open(ctx, opts)
	}
}

func open(ctx context.Context, opts Options) (Session, error) {
	allocatorOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", opts.DisableGPU),
		chromedp.Flag("no-sandbox", opts.NoSandbox),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.UserAgent != "" {
		allocatorOpts = append(allocatorOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(ctx, allocatorOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)

	// Startup probe. Surfaces a missing binary or permission failure before
	// the caller commits to the session.
	probeCtx, probeCancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer probeCancel()
	if err := chromedp.Run(probeCtx, chromedp.Navigate("about:blank")); err != nil {
		browserCancel()
		allocatorCancel()
		return nil, fmt.Errorf("%w: %v", ErrDriverInit, err)
	}

	return &chromeSession{
		browserCtx:      browserCtx,
		browserCancel:   browserCancel,
		allocatorCancel: allocatorCancel,
		navTimeout:      opts.NavTimeout,
	}, nil
}

// run executes actions against the session's browser context. The caller's
// context is only consulted for early cancellation; chromedp actions must
// run on the context chain created by the allocator.
func (s *chromeSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx := s.browserCtx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(s.browserCtx, timeout)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, s.navTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	return nil
}

func (s *chromeSession) ScrollToBottom(ctx context.Context, pause time.Duration, maxScrolls int) error {
	var lastHeight int64
	if err := s.run(ctx, 0, chromedp.Evaluate(`document.body.scrollHeight`, &lastHeight)); err != nil {
		return fmt.Errorf("%w: measuring page height: %v", ErrNavigation, err)
	}

	for i := 0; i < maxScrolls; i++ {
		err := s.run(ctx, 0,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(pause),
		)
		if err != nil {
			return fmt.Errorf("%w: scrolling: %v", ErrNavigation, err)
		}

		var height int64
		if err := s.run(ctx, 0, chromedp.Evaluate(`document.body.scrollHeight`, &height)); err != nil {
			return fmt.Errorf("%w: measuring page height: %v", ErrNavigation, err)
		}
		if height == lastHeight {
			break
		}
		lastHeight = height
	}
	return nil
}

// imageElementsJS mirrors the ImageElement JSON shape. Dimensions come from
// the element attributes, not the rendered size, so lazy placeholders report 0.
const imageElementsJS = `Array.from(document.getElementsByTagName('img')).map(function(img) {
	return {
		src: img.getAttribute('src') || '',
		dataSrc: img.getAttribute('data-src') || '',
		width: parseInt(img.getAttribute('width') || '0', 10) || 0,
		height: parseInt(img.getAttribute('height') || '0', 10) || 0
	};
})`

func (s *chromeSession) ImageElements(ctx context.Context) ([]ImageElement, error) {
	var elements []ImageElement
	if err := s.run(ctx, 0, chromedp.Evaluate(imageElementsJS, &elements)); err != nil {
		return nil, fmt.Errorf("querying image elements: %w", err)
	}
	return elements, nil
}

func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.browserCancel()
		s.allocatorCancel()
	})
	return nil
}
