// Package locale holds the per-language tables used by the widgets: language
// resolution from document tags, date formatting for date placeholders,
// user-facing messages and the bundled template sources.
//
// Supported languages are English (default), Spanish and Galician.
package locale
