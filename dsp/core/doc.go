// Package core holds configuration, error taxonomy and numeric helpers
// shared by every synthesis package.
package core
