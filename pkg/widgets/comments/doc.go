// Package comments renders a post's comment thread with the template engine.
//
// The widget talks to a comments API (POST <base>/list and <base>/add with
// JSON bodies), builds a data context from the thread and renders the
// localized thread template. Comment bodies arrive as HTML and are sanitised
// before they are spliced into the output.
package comments
