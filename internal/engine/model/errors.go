package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy in the error-handling design: per-file
// failures are wrapped in one of these so callers can classify with
// errors.Is / errors.As without string matching.
var (
	ErrIO            = errors.New("io error")
	ErrParse         = errors.New("parse error")
	ErrQueryCompile  = errors.New("query compile error")
	ErrCache         = errors.New("cache error")
	ErrCancelledFile = errors.New("file analysis cancelled")
	ErrConfig        = errors.New("config error")
)

// Code classifies an error for log lines and exit codes.
type Code string

const (
	CodeIO            Code = "IO_ERROR"
	CodeParse         Code = "PARSE_ERROR"
	CodeQueryCompile  Code = "QUERY_COMPILE_ERROR"
	CodeCache         Code = "CACHE_ERROR"
	CodeCancelledFile Code = "CANCELLED_FILE"
	CodeConfig        Code = "CONFIG_ERROR"
)

// ScanError carries a Code alongside the wrapped sentinel and context.
type ScanError struct {
	Code Code
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Path != "" {
		return string(e.Code) + " (" + e.Path + "): " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Err.Error()
}

func (e *ScanError) Unwrap() error { return e.Err }

func newErr(code Code, sentinel error, path string, cause error) *ScanError {
	if cause == nil {
		cause = sentinel
	} else {
		cause = fmt.Errorf("%w: %w", sentinel, cause)
	}
	return &ScanError{Code: code, Path: path, Err: cause}
}

func NewIOError(path string, cause error) *ScanError {
	return newErr(CodeIO, ErrIO, path, cause)
}

func NewParseError(path string, cause error) *ScanError {
	return newErr(CodeParse, ErrParse, path, cause)
}

func NewQueryCompileError(lang, ruleID string, cause error) *ScanError {
	return newErr(CodeQueryCompile, ErrQueryCompile, lang+"/"+ruleID, cause)
}

func NewCacheError(path string, cause error) *ScanError {
	return newErr(CodeCache, ErrCache, path, cause)
}

func NewCancelledFileError(path string) *ScanError {
	return newErr(CodeCancelledFile, ErrCancelledFile, path, nil)
}

func NewConfigError(cause error) *ScanError {
	return newErr(CodeConfig, ErrConfig, "", cause)
}
