// Package adminlist renders paginated administration tables.
//
// A Controller pulls one page of items from a Source, renders the list
// template (title, a checkbox column plus one text column per field, and
// Next/Previous links carrying start offsets) and returns the fragment.
// Each row is rendered from its own context derived from the page context.
package adminlist
