// Package validation checks that the data root follows the
// <root>/<year>/<file> layout before any file is parsed.
package validation
