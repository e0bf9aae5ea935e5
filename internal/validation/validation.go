// Package validation contains the logic for validating
// input data before it reaches the data-access layer.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the caller can
// understand
package validation
