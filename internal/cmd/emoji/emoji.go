// Package emoji provides the symbols used in CLI status output.
package emoji

const (
	// Success marks a completed operation.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Start marks a server coming up.
	Start = "🚀"

	// Stop marks a shutdown.
	Stop = "🛑"

	// Seed marks sample data being written.
	Seed = "🌱"
)
