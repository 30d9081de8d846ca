// Package preview renders comment drafts as sanitised HTML.
//
// It provides a markdown Renderer (goldmark with GFM and typographic
// replacements, sanitised by bluemonday), a net/http handler answering
// POST <base>/render with {"Text": markdown} and replying {"Text": html}, a
// Debouncer that coalesces rapid edits before rendering, and a Preview that
// splices the rendered HTML into a template fragment.
package preview
