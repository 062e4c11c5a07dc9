// Package diag defines the lint result model shared by the traversal engine,
// the driver and the renderers.
//
// # Data model
//
// Edit is the central record. It contains:
//
//   - Line/Col – 1-based position of the original text in the document.
//   - Old/New – the trimmed original line fragment and its rewrite.
//   - Severity – Pass, Warning or Error, taken from the configured severities
//     of the rules that changed the line.
//   - Rules – names of the rules that produced the rewrite.
//
// Edits are produced only when Old != New and are appended in traversal order,
// so a Bag filled by a single traversal is already sorted by position.
//
// # Scope
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt; collection across files lives in internal/driver.
package diag
