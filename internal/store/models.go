// Package store is the Result Cache: a content-addressed, persistent
// record of which files were scanned, what digest they had, and what
// diagnostics they produced, backed by GORM over SQLite (or a remote
// libSQL/Turso database).
package store

import "time"

// ScannedFile records the last-seen content digest for one path, so a
// second scan of an unchanged file can skip analysis entirely.
type ScannedFile struct {
	Path      string    `gorm:"primaryKey;type:varchar(1024)"`
	Digest    string    `gorm:"type:varchar(64);index"`
	Mtime     int64     `gorm:"index"` // source file mtime, unix nanoseconds, at last scan
	Language  string    `gorm:"type:varchar(32)"`
	ScannedAt time.Time `gorm:"autoUpdateTime"`

	Issues []Issue `gorm:"foreignKey:FilePath;references:Path"`
}

// Issue is one persisted diagnostic, denormalized from model.Diagnostic.
type Issue struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	FilePath string `gorm:"type:varchar(1024);index;not null"`
	Line     int
	Column   int
	Severity string `gorm:"type:varchar(10)"`
	RuleID   string `gorm:"type:varchar(100);index"`
}

// FunctionSummaryRecord persists a function's net capability-flow label so
// cross-file summarization survives a cache hit without re-parsing.
type FunctionSummaryRecord struct {
	FuncName  string `gorm:"primaryKey;type:varchar(512)"`
	FilePath  string `gorm:"type:varchar(1024);index"`
	LabelKind string `gorm:"type:varchar(16)"` // "", "Source", "Sanitizer", "Sink"
	Caps      uint8
}

// TableName pins each model to an explicit lowercase-plural table name.
func (ScannedFile) TableName() string           { return "scanned_files" }
func (Issue) TableName() string                 { return "issues" }
func (FunctionSummaryRecord) TableName() string { return "function_summaries" }
