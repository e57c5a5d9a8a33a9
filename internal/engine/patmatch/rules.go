package patmatch

import "github.com/morfx-security/govulnscan/internal/engine/model"

// DefaultRules returns the built-in structural checks shipped with the
// scanner, one slice per language slug. These complement the taint engine
// with checks that don't need dataflow: weak hashing, disabled TLS
// verification, eval and shell/process spawning, unsafe deserialization,
// unbounded buffer reads and copies, and Rust unsafe blocks.
func DefaultRules() map[string][]Rule {
	return map[string][]Rule{
		"go": {
			{
				ID:          "weak-hash-md5",
				Description: "use of MD5, a cryptographically broken hash",
				Query:       `(call_expression function: (selector_expression operand: (identifier) @pkg field: (field_identifier) @fn) (#eq? @pkg "md5") (#eq? @fn "New")) @target`,
				Severity:    model.SeverityMedium,
			},
			{
				ID:          "tls-insecure-skip-verify",
				Description: "TLS certificate verification disabled",
				Query:       `(keyed_element (literal_element (identifier) @field) (#eq? @field "InsecureSkipVerify")) @target`,
				Severity:    model.SeverityHigh,
			},
		},
		"python": {
			{
				ID:          "yaml-unsafe-load",
				Description: "yaml.load without a safe loader can execute arbitrary code",
				Query:       `(call function: (attribute object: (identifier) @mod attribute: (identifier) @fn) (#eq? @mod "yaml") (#eq? @fn "load")) @target`,
				Severity:    model.SeverityHigh,
			},
		},
		"javascript": {
			{
				ID:          "eval-usage",
				Description: "eval() on dynamic input allows arbitrary code execution",
				Query:       `(call_expression function: (identifier) @fn (#eq? @fn "eval")) @target`,
				Severity:    model.SeverityHigh,
			},
		},
		"typescript": {
			{
				ID:          "eval-usage",
				Description: "eval() on dynamic input allows arbitrary code execution",
				Query:       `(call_expression function: (identifier) @fn (#eq? @fn "eval")) @target`,
				Severity:    model.SeverityHigh,
			},
		},
		"php": {
			{
				ID:          "shell-exec-usage",
				Description: "shell_exec runs a command through the shell",
				Query:       `(function_call_expression function: (name) @fn (#eq? @fn "shell_exec")) @target`,
				Severity:    model.SeverityHigh,
			},
			{
				ID:          "unserialize-usage",
				Description: "unserialize on untrusted input can instantiate arbitrary objects",
				Query:       `(function_call_expression function: (name) @fn (#eq? @fn "unserialize")) @target`,
				Severity:    model.SeverityHigh,
			},
		},
		"java": {
			{
				ID:          "md5-digest",
				Description: "MessageDigest.getInstance(\"MD5\") uses a cryptographically broken hash",
				Query:       `(method_invocation name: (identifier) @fn arguments: (argument_list (string_literal) @alg) (#eq? @fn "getInstance") (#match? @alg "\"MD5\"")) @target`,
				Severity:    model.SeverityMedium,
			},
			{
				ID:          "runtime-exec",
				Description: "Runtime.exec spawns a process from potentially unsanitized input",
				Query:       `(method_invocation name: (identifier) @fn (#eq? @fn "exec")) @target`,
				Severity:    model.SeverityHigh,
			},
		},
		"c": {
			{
				ID:          "unbounded-strcpy",
				Description: "strcpy has no bounds check and can overflow the destination buffer",
				Query:       `(call_expression function: (identifier) @fn (#eq? @fn "strcpy")) @target`,
				Severity:    model.SeverityHigh,
			},
			{
				ID:          "format-string-gets",
				Description: "gets provides no way to bound input length",
				Query:       `(call_expression function: (identifier) @fn (#eq? @fn "gets")) @target`,
				Severity:    model.SeverityHigh,
			},
		},
		"cpp": {
			{
				ID:          "unbounded-strcpy",
				Description: "strcpy has no bounds check and can overflow the destination buffer",
				Query:       `(call_expression function: (identifier) @fn (#eq? @fn "strcpy")) @target`,
				Severity:    model.SeverityHigh,
			},
		},
		"rust": {
			{
				ID:          "unsafe-block",
				Description: "unsafe block bypasses the borrow checker's memory-safety guarantees",
				Query:       `(unsafe_block) @target`,
				Severity:    model.SeverityMedium,
			},
		},
		"ruby": {
			{
				ID:          "eval-usage",
				Description: "eval() on dynamic input allows arbitrary code execution",
				Query:       `(call method: (identifier) @fn (#eq? @fn "eval")) @target`,
				Severity:    model.SeverityHigh,
			},
			{
				ID:          "system-call",
				Description: "Kernel#system runs a command through the shell",
				Query:       `(call method: (identifier) @fn (#eq? @fn "system")) @target`,
				Severity:    model.SeverityHigh,
			},
		},
	}
}
