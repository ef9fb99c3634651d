package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// RequestKind names the audit endpoints that are tracked
type RequestKind string

const (
	KindAnalyze    RequestKind = "analyze"
	KindVisibility RequestKind = "visibility"
	KindCompare    RequestKind = "compare"
)

// Statistics represents the collected usage statistics. UniqueVisitors maps
// an IP to its last visit; load times are in milliseconds.
type Statistics struct {
	UniqueVisitors map[string]time.Time `json:"uniqueVisitors"`
	TotalRequests  int                  `json:"totalRequests"`
	RequestsByKind map[RequestKind]int  `json:"requestsByKind"`
	ErrorCount     int                  `json:"errorCount"`
	PopularURLs    map[string]int       `json:"popularUrls"`

	AverageLoadTime float64   `json:"averageLoadTime"`
	TotalLoadTime   float64   `json:"-"`
	LastPersisted   time.Time `json:"lastPersisted"`
	filePath        string
	devMode         bool
	mutex           sync.RWMutex
}

// New creates statistics persisted at filePath and loads any previous state.
// devMode exposes popular URLs in GetStatistics.
func New(filePath string, devMode bool) *Statistics {
	s := &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		RequestsByKind: make(map[RequestKind]int),
		PopularURLs:    make(map[string]int),
		LastPersisted:  time.Now(),
		filePath:       filePath,
		devMode:        devMode,
	}

	if err := s.Load(); err != nil {
		log.Printf("Could not load existing statistics: %v", err)
	}
	return s
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// cleanURL reduces a target URL to scheme, host and path
func cleanURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return ""
	}

	// Don't track local targets
	if strings.Contains(u.Host, "localhost") || strings.Contains(u.Host, "127.0.0.1") {
		return ""
	}

	clean := u.Scheme + "://" + u.Host
	if u.Path != "" && u.Path != "/" {
		clean += u.Path
	}

	return strings.TrimSuffix(clean, "/")
}

// TrackRequest records one audit request against the given target URLs
func (s *Statistics) TrackRequest(kind RequestKind, targets []string, loadTime float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.TotalRequests++
	s.RequestsByKind[kind]++

	for _, target := range targets {
		if cleaned := cleanURL(target); cleaned != "" {
			s.PopularURLs[cleaned]++
		}
	}

	if hasError {
		s.ErrorCount++
	}

	s.TotalLoadTime += loadTime
	s.AverageLoadTime = s.TotalLoadTime / float64(s.TotalRequests)
}

// Requests returns the total number of tracked requests
func (s *Statistics) Requests() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.TotalRequests
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.uniqueVisitors()
}

func (s *Statistics) uniqueVisitors() int {
	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}
	return count
}

// GetPopularURLs returns the top n most audited URLs
func (s *Statistics) GetPopularURLs(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.popularURLs(n)
}

func (s *Statistics) popularURLs(n int) map[string]int {
	urls := make([]string, 0, len(s.PopularURLs))
	for u := range s.PopularURLs {
		urls = append(urls, u)
	}
	sort.Slice(urls, func(i, j int) bool {
		if s.PopularURLs[urls[i]] != s.PopularURLs[urls[j]] {
			return s.PopularURLs[urls[i]] > s.PopularURLs[urls[j]]
		}
		return urls[i] < urls[j]
	})
	if len(urls) > n {
		urls = urls[:n]
	}

	result := make(map[string]int, len(urls))
	for _, u := range urls {
		result[u] = s.PopularURLs[u]
	}
	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.errorRate()
}

func (s *Statistics) errorRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return (float64(s.ErrorCount) / float64(s.TotalRequests)) * 100
}

// Save persists the statistics to the configured file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	if dir := filepath.Dir(s.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create statistics directory: %w", err)
		}
	}

	file, err := os.Create(s.filePath)
	if err != nil {
		return fmt.Errorf("could not create statistics file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %w", err)
	}

	return nil
}

// Load reads the statistics from the configured file
func (s *Statistics) Load() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // nothing saved yet
		}
		return fmt.Errorf("could not open statistics file: %w", err)
	}
	defer file.Close()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := json.NewDecoder(file).Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %w", err)
	}
	if s.UniqueVisitors == nil {
		s.UniqueVisitors = make(map[string]time.Time)
	}
	if s.RequestsByKind == nil {
		s.RequestsByKind = make(map[RequestKind]int)
	}
	if s.PopularURLs == nil {
		s.PopularURLs = make(map[string]int)
	}
	s.TotalLoadTime = s.AverageLoadTime * float64(s.TotalRequests)

	return nil
}

// GetStatistics returns a summary of the statistics. Popular URLs are only
// included in development mode.
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	byKind := make(map[RequestKind]int, len(s.RequestsByKind))
	for k, v := range s.RequestsByKind {
		byKind[k] = v
	}

	result := map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitors(),
		"totalRequests":     s.TotalRequests,
		"requestsByKind":    byKind,
		"errorRate":         s.errorRate(),
		"averageLoadTime":   s.AverageLoadTime,
	}
	if s.devMode {
		result["popularUrls"] = s.popularURLs(5)
	}
	return result
}
