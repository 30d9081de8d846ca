// Package scope resolves dotted variable paths against layered data contexts.
//
// A Context maps names to values. Values can be scalars (string, bool,
// numbers, time.Time), nested contexts or maps addressed with dotted paths
// (`comment.author`), and sequences addressed positionally (`comments.0.author`).
// Derived contexts overlay one or more bindings on top of a parent without
// copying or mutating it, which keeps loop iteration cheap and lets sibling
// iterations share the same parent safely.
//
// Resolution never fails loudly: a path that cannot be resolved reports
// ok == false and callers treat it as empty.
package scope
