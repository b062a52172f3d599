// Package utils provides small type-conversion helpers shared across
// packages, primarily for normalizing loosely-typed spreadsheet cell values.
package utils
