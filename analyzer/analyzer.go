package analyzer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/seo-optimizer/geoaudit/models"
	"github.com/seo-optimizer/geoaudit/stats"
)

var (
	// ErrFetchFailed wraps every error returned by the Fetcher.
	ErrFetchFailed = errors.New("failed to fetch")
	// ErrNoStore is returned by report lookups when the analyzer runs
	// without persistence.
	ErrNoStore = errors.New("report storage is not configured")
)

const analysisTimeout = 30 * time.Second

// Fetcher supplies the content record for a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*models.ContentRecord, error)
}

// ReportStore persists audit reports
type ReportStore interface {
	SaveReport(ctx context.Context, report *models.AuditReport) error
	GetByID(ctx context.Context, id int64) (*models.AuditReport, error)
	GetByURL(ctx context.Context, url string) (*models.AuditReport, error)
	List(ctx context.Context, limit, offset int) ([]*models.AuditReport, error)
}

// Options tunes the analysis cache and suggestion strategy
type Options struct {
	CacheTTL        time.Duration
	MaxCacheSize    int
	CleanupInterval time.Duration
	Strategy        SuggestionStrategy
}

// DefaultOptions returns the options used by the server
func DefaultOptions() Options {
	return Options{
		CacheTTL:        30 * time.Minute,
		MaxCacheSize:    1000,
		CleanupInterval: 5 * time.Minute,
		Strategy:        StaticCatalogue{},
	}
}

// Analysis is everything produced for one URL
type Analysis struct {
	Record     *models.ContentRecord
	Report     models.AuditReport
	Visibility models.AiVisibilityAssessment
}

// Cache entry with expiration
type cacheEntry struct {
	analysis  *Analysis
	timestamp time.Time
}

// CacheStats provides statistics about the analyzer's cache
type CacheStats struct {
	Entries        int           `json:"entries"`
	MaxEntries     int           `json:"maxEntries"`
	CacheHits      int           `json:"cacheHits"`
	CacheMisses    int           `json:"cacheMisses"`
	FetchSuccesses int           `json:"fetchSuccesses"`
	FetchFailures  int           `json:"fetchFailures"`
	CacheTTL       time.Duration `json:"cacheTTL"`
}

// Analyzer fetches pages, audits them and keeps recent analyses in memory
type Analyzer struct {
	fetcher         Fetcher
	store           ReportStore
	strategy        SuggestionStrategy
	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
	stats           *stats.Storage
	done            chan struct{}
	shutdownOnce    sync.Once
}

// New creates a new Analyzer. store and statsStorage may be nil.
func New(fetcher Fetcher, store ReportStore, statsStorage *stats.Storage, opts Options) *Analyzer {
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 5 * time.Minute
	}
	if opts.Strategy == nil {
		opts.Strategy = StaticCatalogue{}
	}

	a := &Analyzer{
		fetcher:         fetcher,
		store:           store,
		strategy:        opts.Strategy,
		cache:           make(map[string]cacheEntry),
		cacheTTL:        opts.CacheTTL,
		maxCacheSize:    opts.MaxCacheSize,
		cleanupInterval: opts.CleanupInterval,
		lastCleanup:     time.Now(),
		stats:           statsStorage,
		done:            make(chan struct{}),
	}

	go a.periodicCleanup()

	return a
}

// periodicCleanup removes expired entries until Shutdown
func (a *Analyzer) periodicCleanup() {
	ticker := time.NewTicker(a.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.cleanup()
		case <-a.done:
			return
		}
	}
}

// cleanup removes expired entries and enforces the size limit
func (a *Analyzer) cleanup() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cleanupLocked(time.Now())
}

func (a *Analyzer) cleanupLocked(now time.Time) {
	for key, entry := range a.cache {
		if now.Sub(entry.timestamp) > a.cacheTTL {
			delete(a.cache, key)
		}
	}

	if a.maxCacheSize > 0 && len(a.cache) > a.maxCacheSize {
		type aged struct {
			key       string
			timestamp time.Time
		}
		entries := make([]aged, 0, len(a.cache))
		for key, entry := range a.cache {
			entries = append(entries, aged{key, entry.timestamp})
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})

		// Oldest first
		for i := 0; i < len(entries)-a.maxCacheSize; i++ {
			delete(a.cache, entries[i].key)
		}
	}

	a.lastCleanup = now
}

// SetMaxCacheSize sets the maximum number of cached analyses
func (a *Analyzer) SetMaxCacheSize(size int) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.maxCacheSize = size
	a.cleanupLocked(time.Now())
}

// SetCacheTTL sets the cache TTL
func (a *Analyzer) SetCacheTTL(ttl time.Duration) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cacheTTL = ttl
}

// ClearCache clears the analysis cache
func (a *Analyzer) ClearCache() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cache = make(map[string]cacheEntry)
}

// generateCacheKey creates a unique key for the URL
func generateCacheKey(url string) string {
	hash := md5.Sum([]byte(url))
	return hex.EncodeToString(hash[:])
}

// GetCacheStats returns statistics about the cache
func (a *Analyzer) GetCacheStats() CacheStats {
	var current stats.MonthlyStats
	if a.stats != nil {
		current = a.stats.GetCurrentStats()
	}

	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	return CacheStats{
		Entries:        len(a.cache),
		MaxEntries:     a.maxCacheSize,
		CacheHits:      current.AuditCacheHits,
		CacheMisses:    current.AuditCacheMisses,
		FetchSuccesses: current.FetchSuccesses,
		FetchFailures:  current.FetchFailures,
		CacheTTL:       a.cacheTTL,
	}
}

// GetStats returns the underlying stats storage, which may be nil
func (a *Analyzer) GetStats() *stats.Storage {
	return a.stats
}

// IsCached checks if a URL is in the cache and not expired
func (a *Analyzer) IsCached(url string) bool {
	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	entry, found := a.cache[generateCacheKey(url)]
	return found && time.Since(entry.timestamp) < a.cacheTTL
}

func (a *Analyzer) increment(hits, misses, successes, failures int) {
	if a.stats != nil {
		a.stats.IncrementStats(hits, misses, successes, failures)
	}
}

// Analyze fetches url, audits it, assesses AI visibility and persists the
// report. Fresh results are served from the cache.
func (a *Analyzer) Analyze(ctx context.Context, url string) (*Analysis, error) {
	a.cacheMutex.RLock()
	stale := time.Since(a.lastCleanup) > a.cleanupInterval
	a.cacheMutex.RUnlock()
	if stale {
		go a.cleanup()
	}

	cacheKey := generateCacheKey(url)
	a.cacheMutex.RLock()
	if entry, found := a.cache[cacheKey]; found && time.Since(entry.timestamp) < a.cacheTTL {
		a.cacheMutex.RUnlock()
		a.increment(1, 0, 0, 0)
		return entry.analysis, nil
	}
	a.cacheMutex.RUnlock()

	a.increment(0, 1, 0, 0)

	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	analysis, err := a.analyze(ctx, url)
	if err != nil {
		return nil, err
	}

	a.cacheMutex.Lock()
	a.cache[cacheKey] = cacheEntry{
		analysis:  analysis,
		timestamp: time.Now(),
	}
	if a.maxCacheSize > 0 && len(a.cache) > a.maxCacheSize {
		a.cleanupLocked(time.Now())
	}
	a.cacheMutex.Unlock()

	return analysis, nil
}

func (a *Analyzer) analyze(ctx context.Context, url string) (*Analysis, error) {
	record, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		a.increment(0, 0, 0, 1)
		log.Printf("Fetch failed for %s: %v", url, err)
		return nil, fmt.Errorf("%w %s: %w", ErrFetchFailed, url, err)
	}
	a.increment(0, 0, 1, 0)
	if record.URL == "" {
		record.URL = url
	}

	analysis := &Analysis{Record: record}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		analysis.Report = Audit(a.strategy, record)
	}()
	go func() {
		defer wg.Done()
		analysis.Visibility = AnalyzeAIPlatformVisibility(record)
	}()
	wg.Wait()

	if a.store != nil {
		if err := a.store.SaveReport(ctx, &analysis.Report); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
	}

	log.Printf("Audited %s: seo=%d geo=%d ai-visibility=%d",
		url, analysis.Report.SeoScore, analysis.Report.AiScore, analysis.Visibility.OverallScore)
	return analysis, nil
}

// Compare analyzes both URLs concurrently and diffs the results
func (a *Analyzer) Compare(ctx context.Context, urlA, urlB string) (*models.ComparisonResult, error) {
	var (
		wg                   sync.WaitGroup
		analysisA, analysisB *Analysis
		errA, errB           error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		analysisA, errA = a.Analyze(ctx, urlA)
	}()
	go func() {
		defer wg.Done()
		analysisB, errB = a.Analyze(ctx, urlB)
	}()
	wg.Wait()

	if errA != nil {
		return nil, fmt.Errorf("site A: %w", errA)
	}
	if errB != nil {
		return nil, fmt.Errorf("site B: %w", errB)
	}

	return &models.ComparisonResult{
		ReportA:       analysisA.Report,
		ReportB:       analysisB.Report,
		AIVisibilityA: analysisA.Visibility,
		AIVisibilityB: analysisB.Visibility,
		Differences: CompareWebsites(
			analysisA.Record, &analysisA.Report,
			analysisB.Record, &analysisB.Report,
			&analysisA.Visibility, &analysisB.Visibility,
		),
	}, nil
}

// Report returns a persisted report by id
func (a *Analyzer) Report(ctx context.Context, id int64) (*models.AuditReport, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	return a.store.GetByID(ctx, id)
}

// ReportByURL returns the persisted report for url
func (a *Analyzer) ReportByURL(ctx context.Context, url string) (*models.AuditReport, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	return a.store.GetByURL(ctx, url)
}

// RecentReports returns up to limit reports, most recent first
func (a *Analyzer) RecentReports(ctx context.Context, limit int) ([]*models.AuditReport, error) {
	if a.store == nil {
		return nil, ErrNoStore
	}
	return a.store.List(ctx, limit, 0)
}

// Shutdown stops the cleanup goroutine and flushes statistics
func (a *Analyzer) Shutdown() error {
	var err error
	a.shutdownOnce.Do(func() {
		close(a.done)
		if a.stats != nil {
			err = a.stats.Shutdown()
		}
	})
	return err
}
