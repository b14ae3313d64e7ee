package transfer

// Transferer defines the filesystem actions a triage session needs.
// This allows for dependency injection in tests.
type Transferer interface {
	// Copy copies src into the slot folder and returns the written path
	Copy(src string, slot int) (string, error)

	// Move moves src into the slot folder and returns the new path
	Move(src string, slot int) (string, error)

	// Delete removes path from storage
	Delete(path string) error
}

// Ensure Engine implements the Transferer interface
var _ Transferer = (*Engine)(nil)
