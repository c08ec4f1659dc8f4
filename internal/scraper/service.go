package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hleung/imagehound/internal/browser"
	"github.com/hleung/imagehound/internal/domain"
	"github.com/hleung/imagehound/internal/logger"
	"github.com/hleung/imagehound/internal/storage"
)

// Config holds configuration for the scrape service.
type Config struct {
	DefaultNumImages  int
	MinWidth          int
	MinHeight         int
	SettleDelay       time.Duration
	ScrollPause       time.Duration
	MaxScrolls        int
	MaxConcurrentJobs int
	// JobTTL evicts terminal job records after this duration; 0 keeps them
	// for the process lifetime
	JobTTL         time.Duration
	SearchEndpoint string
}

// Service owns the job table and runs the scraping pipeline. All access to
// job records goes through its methods; background pipelines hold only a
// job ID, never a reference into the table.
type Service struct {
	cfg      *Config
	launcher browser.Launcher
	fetcher  Fetcher
	store    storage.ImageStore

	mu   sync.RWMutex
	jobs map[string]*domain.ScrapeJob

	// slots bounds the number of concurrently running pipelines; jobs past
	// the bound queue as pending
	slots chan struct{}

	stop     chan struct{}
	stopOnce sync.Once
}

// NewService creates a new scrape service.
func NewService(launcher browser.Launcher, fetcher Fetcher, store storage.ImageStore, cfg *Config) *Service {
	maxJobs := cfg.MaxConcurrentJobs
	if maxJobs < 1 {
		maxJobs = 1
	}

	s := &Service{
		cfg:      cfg,
		launcher: launcher,
		fetcher:  fetcher,
		store:    store,
		jobs:     make(map[string]*domain.ScrapeJob),
		slots:    make(chan struct{}, maxJobs),
		stop:     make(chan struct{}),
	}

	if cfg.JobTTL > 0 {
		go s.reapLoop()
	}

	return s
}

// Close stops background housekeeping. Running pipelines finish on their own.
func (s *Service) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Create registers a new pending job and schedules its pipeline in the
// background. The destination folder is created synchronously so a storage
// failure surfaces to the caller before any scraping starts.
func (s *Service) Create(ctx context.Context, searchTerm string, numImages int, folderName string) (*domain.ScrapeJob, error) {
	if numImages <= 0 {
		numImages = s.cfg.DefaultNumImages
	}
	if folderName == "" {
		folderName = "scraped_images_" + time.Now().Format("20060102_150405")
	}

	folderPath, err := s.store.EnsureFolder(folderName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	job := &domain.ScrapeJob{
		ID:          uuid.New().String(),
		SearchTerm:  searchTerm,
		Status:      domain.JobStatusPending,
		TotalImages: numImages,
		FolderPath:  folderPath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Snapshot before the pipeline goroutine can touch the record.
	snapshot := job.Clone()

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	logger.FromContext(ctx).WithFields(logger.Fields{
		logger.FieldJobID:      job.ID,
		logger.FieldSearchTerm: searchTerm,
		logger.FieldCount:      numImages,
	}).Info("Created scrape job")

	go s.runPipeline(job.ID, searchTerm, numImages, folderPath)

	return snapshot, nil
}

// Status returns a snapshot of the job record.
func (s *Service) Status(jobID string) (*domain.ScrapeJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return job.Clone(), nil
}

// Cancel transitions a pending job to cancelled. Jobs that already started
// cannot be cancelled.
func (s *Service) Cancel(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if job.Status != domain.JobStatusPending {
		return fmt.Errorf("%w: status is %s", domain.ErrInvalidState, job.Status)
	}
	job.Status = domain.JobStatusCancelled
	job.UpdatedAt = time.Now()
	return nil
}

// runPipeline is the background unit of work bound to one job.
func (s *Service) runPipeline(jobID, searchTerm string, numImages int, folderPath string) {
	s.slots <- struct{}{}
	defer func() { <-s.slots }()

	ctx := logger.WithFields(context.Background(), logger.Fields{
		logger.FieldJobID:      jobID,
		logger.FieldSearchTerm: searchTerm,
		logger.FieldComponent:  "scraper",
	})

	if !s.begin(jobID) {
		logger.CtxInfo(ctx, "Job cancelled before start, skipping")
		return
	}

	if err := s.scrape(ctx, jobID, searchTerm, numImages, folderPath); err != nil {
		logger.CtxError(ctx, "Scrape job failed: %v", err)
		s.fail(jobID, err)
		return
	}
	s.complete(jobID)
}

func (s *Service) scrape(ctx context.Context, jobID, searchTerm string, numImages int, folderPath string) error {
	session, err := s.launcher(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	searchURL := fmt.Sprintf("%s?q=%s&tbm=isch", s.cfg.SearchEndpoint, url.QueryEscape(searchTerm))
	if err := session.Navigate(ctx, searchURL); err != nil {
		return err
	}

	// Let the first page of results render before scrolling.
	time.Sleep(s.cfg.SettleDelay)

	if err := session.ScrollToBottom(ctx, s.cfg.ScrollPause, s.cfg.MaxScrolls); err != nil {
		return err
	}

	elements, err := session.ImageElements(ctx)
	if err != nil {
		return err
	}

	candidates := ExtractCandidates(elements, s.cfg.MinWidth, s.cfg.MinHeight)
	if len(candidates) > numImages {
		candidates = candidates[:numImages]
	}
	logger.CtxInfo(ctx, "Extracted %d candidates from %d image elements", len(candidates), len(elements))

	for i, candidate := range candidates {
		// Cancellation is cooperative: checked once per image, so an
		// in-flight fetch always completes.
		if !s.active(jobID) {
			logger.CtxInfo(ctx, "Job no longer active, stopping after %d images", i)
			return nil
		}

		name := fmt.Sprintf("%s_%d", searchTerm, i+1)
		if err := s.fetcher.Fetch(ctx, candidate.URL, folderPath, name); err != nil {
			if errors.Is(err, ErrSave) {
				return err
			}
			logger.CtxWarn(ctx, "Skipping image %s: %v", name, err)
			continue
		}
		s.advance(jobID)
	}
	return nil
}

// begin transitions pending to running. Returns false when the job was
// cancelled while queued or the record is gone.
func (s *Service) begin(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok || job.Status != domain.JobStatusPending {
		return false
	}
	job.Status = domain.JobStatusRunning
	job.UpdatedAt = time.Now()
	return true
}

// active reports whether the pipeline should keep processing candidates.
func (s *Service) active(jobID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	return ok && job.Status == domain.JobStatusRunning
}

func (s *Service) advance(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok || job.Status != domain.JobStatusRunning {
		return
	}
	if job.ImagesScraped < job.TotalImages {
		job.ImagesScraped++
	}
	job.UpdatedAt = time.Now()
}

func (s *Service) complete(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok || job.Status != domain.JobStatusRunning {
		return
	}
	job.Status = domain.JobStatusCompleted
	job.UpdatedAt = time.Now()
}

func (s *Service) fail(jobID string, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok || job.Status.Terminal() {
		return
	}
	job.Status = domain.JobStatusFailed
	job.ErrorLog = cause.Error()
	job.UpdatedAt = time.Now()
}

// reapLoop evicts terminal job records older than the configured TTL.
func (s *Service) reapLoop() {
	interval := s.cfg.JobTTL
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.reap(time.Now())
		}
	}
}

func (s *Service) reap(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, job := range s.jobs {
		if job.Status.Terminal() && now.Sub(job.UpdatedAt) > s.cfg.JobTTL {
			delete(s.jobs, id)
		}
	}
}
