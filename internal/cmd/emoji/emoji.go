// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Status symbols.
const (
	// Success represents successful completion of an operation.
	// Used for: owned cars, completed mutations, imports.
	Success = "✓"

	// Error represents failures.
	Error = "✗"

	// Stop represents graceful shutdowns.
	Stop = "✗"

	// Warning represents non-critical issues.
	Warning = "!"

	// Optional represents an empty cell.
	Optional = "-"

	// Info represents informational messages.
	Info = "i"
)

// Collection symbols.
const (
	// Wanted marks a car on the wanted list.
	Wanted = "♥"

	// TreasureHunt marks a regular treasure hunt.
	TreasureHunt = "★"

	// SuperTreasureHunt marks a super treasure hunt.
	SuperTreasureHunt = "★★"

	// Dud marks a placeholder slot in a case.
	Dud = "○"
)
