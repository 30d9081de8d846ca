// Package source loads master templates and keeps them parsed.
//
// A Set resolves template names against an in-memory string table first and
// an fs.FS second, parses each master once and hands out a fresh clone per
// Fragment call so renders never touch the cached tree. When global data is
// configured, sources are pre-expanded through pongo2 before parsing, which
// lets deployments inject static values (site names, asset URLs) that do not
// change between renders.
package source
