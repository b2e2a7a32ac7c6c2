// Package ingredients keeps the user's ingredient list: normalized, duplicate-free,
// bounded, and ordered by insertion.
package ingredients
