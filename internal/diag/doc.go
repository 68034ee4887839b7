// Package diag defines the diagnostic records produced by the lint engine.
//
// # Data model
//
// Diagnostic mirrors one entry of the engine's error list:
//
//   - Line, Character – 1-based position; Line 0 means the engine gave none.
//   - Code – engine code such as "W033"; the first letter maps to Severity.
//   - Raw – message template with {a}..{d} placeholders.
//   - A, B, C, D – substitution values for the placeholders.
//   - Reason – the engine's pre-rendered message, used when Raw is missing.
//   - Evidence – the offending source line, when the engine provides it.
//
// A nil *Diagnostic inside a List is the engine's sentinel for "too many
// errors, analysis aborted". It is kept in place so formatters can emit a
// notice at the right point of the output.
//
// # Scope
//
// Package diag does no IO. Rendering lives in internal/diagfmt, engine calls in
// internal/engine, orchestration in internal/lint.
package diag
