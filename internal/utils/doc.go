// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Branch naming and sanitization
//   - Terminal interactivity checks
//   - Common data structure operations
package utils
