// Package testsupport holds helpers shared by package tests: fragment
// parsing, data fixtures in JSON or YAML, marker assertions and golden files
// refreshed with UPDATE_GOLDENS=1.
package testsupport
