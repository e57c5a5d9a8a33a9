package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/minio/highwayhash"
	"gorm.io/gorm"

	"github.com/morfx-security/govulnscan/internal/engine/model"
)

// highwayKey is a fixed, arbitrary 32-byte key. The cache only needs a
// stable, fast content digest to detect file changes between runs, not a
// keyed MAC, so a constant key is fine here.
var highwayKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Digest returns the content digest used to detect whether a file changed
// since it was last scanned.
func Digest(content []byte) (string, error) {
	h, err := highwayhash.New64(highwayKey)
	if err != nil {
		return "", fmt.Errorf("store: initializing digest: %w", err)
	}
	if _, err := h.Write(content); err != nil {
		return "", fmt.Errorf("store: hashing content: %w", err)
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}

// Cache is the Result Cache: a GORM-backed store of per-file digests,
// their diagnostics, and function summaries. Writes are serialized behind
// a mutex and retried on "database is locked".
type Cache struct {
	db *gorm.DB
	mu sync.Mutex
}

// New wraps an already-connected and migrated *gorm.DB.
func New(db *gorm.DB) *Cache {
	return &Cache{db: db}
}

// ShouldScan reports whether path's current content digest or mtime
// differs from (or is absent from) the cache, meaning a fresh analysis is
// needed. Comparing mtime as well as digest means a file touched without
// changing its bytes (a checkout, a restored backup) still gets rescanned
// rather than silently trusting a possibly stale cached result.
func (c *Cache) ShouldScan(path, digest string, mtime int64) (bool, error) {
	var existing ScannedFile
	err := c.db.Where("path = ?", path).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: checking %s: %w", path, err)
	}
	return existing.Digest != digest || existing.Mtime != mtime, nil
}

// UpsertFile records path's current digest, mtime, and language.
func (c *Cache) UpsertFile(path, digest string, mtime int64, language string) error {
	return c.withRetry(func(tx *gorm.DB) error {
		return tx.Save(&ScannedFile{Path: path, Digest: digest, Mtime: mtime, Language: language, ScannedAt: time.Now()}).Error
	})
}

// ReplaceIssues atomically drops path's previous diagnostics and inserts
// the freshly computed set, so a file that went from tainted to clean
// doesn't leave stale findings behind.
func (c *Cache) ReplaceIssues(path string, diags []model.Diagnostic) error {
	return c.withRetry(func(tx *gorm.DB) error {
		if err := tx.Where("file_path = ?", path).Delete(&Issue{}).Error; err != nil {
			return err
		}
		if len(diags) == 0 {
			return nil
		}
		rows := make([]Issue, 0, len(diags))
		for _, d := range diags {
			rows = append(rows, Issue{
				FilePath: path,
				Line:     d.Line,
				Column:   d.Column,
				Severity: d.Severity.String(),
				RuleID:   d.ID,
			})
		}
		return tx.Create(&rows).Error
	})
}

// GetIssuesFromFile returns path's cached diagnostics.
func (c *Cache) GetIssuesFromFile(path string) ([]model.Diagnostic, error) {
	var rows []Issue
	if err := c.db.Where("file_path = ?", path).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: loading issues for %s: %w", path, err)
	}
	out := make([]model.Diagnostic, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Diagnostic{
			Path:     path,
			Line:     r.Line,
			Column:   r.Column,
			Severity: model.ParseSeverity(r.Severity),
			ID:       r.RuleID,
		})
	}
	return out, nil
}

// GetFiles returns every path currently tracked by the cache.
func (c *Cache) GetFiles() ([]string, error) {
	var rows []ScannedFile
	if err := c.db.Select("path").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: listing files: %w", err)
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Path)
	}
	return out, nil
}

// Clear drops every row from every cache table, used by the CLI's
// "clean" subcommand.
func (c *Cache) Clear() error {
	return c.withRetry(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Issue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&FunctionSummaryRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&ScannedFile{}).Error
	})
}

// UpsertSummary persists one function's capability-flow summary.
func (c *Cache) UpsertSummary(funcName, filePath string, summary model.FunctionSummary) error {
	rec := FunctionSummaryRecord{FuncName: funcName, FilePath: filePath}
	if summary.SummaryLabel != nil {
		rec.LabelKind = summary.SummaryLabel.Kind.String()
		rec.Caps = uint8(summary.SummaryLabel.Caps)
	}
	return c.withRetry(func(tx *gorm.DB) error {
		return tx.Save(&rec).Error
	})
}

// LoadAllSummaries rebuilds the FunctionSummaries map the taint engine
// needs for cross-file call resolution, from persisted cache rows.
func (c *Cache) LoadAllSummaries() (model.FunctionSummaries, error) {
	var rows []FunctionSummaryRecord
	if err := c.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: loading summaries: %w", err)
	}
	out := make(model.FunctionSummaries, len(rows))
	for _, r := range rows {
		summary := model.FunctionSummary{}
		if r.LabelKind != "" {
			label := model.DataLabel{Caps: model.Cap(r.Caps)}
			switch r.LabelKind {
			case "Source":
				label.Kind = model.LabelSource
			case "Sanitizer":
				label.Kind = model.LabelSanitizer
			case "Sink":
				label.Kind = model.LabelSink
			}
			summary.SummaryLabel = &label
		}
		out[r.FuncName] = summary
	}
	return out, nil
}

// withRetry serializes writers behind mu and retries a handful of times
// on SQLite's "database is locked".
func (c *Cache) withRetry(fn func(tx *gorm.DB) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	const maxRetries = 5
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := c.db.Transaction(fn)
		if err == nil {
			return nil
		}
		lastErr = err
		if strings.Contains(err.Error(), "database is locked") {
			time.Sleep(200 * time.Millisecond)
			continue
		}
		return err
	}
	return fmt.Errorf("store: database is locked after %d retries: %w", maxRetries, lastErr)
}
