package core

import "fmt"

// ReferencedArtifactError is returned when a delete that is not part of a move targets
// an artifact other artifacts still reference.
type ReferencedArtifactError struct {
	Path        string
	Referencers []string
}

func (e *ReferencedArtifactError) Error() string {
	return fmt.Sprintf("cannot delete %s as it is referenced by another file", e.Path)
}

// CascadeUpdateError is returned when one or more referencers could not be rewritten or
// saved during a move. Referencers that were saved before the failure keep their new
// content, so the workspace may be inconsistent until the move is repaired or re-run.
type CascadeUpdateError struct {
	Path   string   // original path of the moved artifact
	Failed []string // referencers whose update failed, sorted
	Err    error    // combined causes
}

func (e *CascadeUpdateError) Error() string {
	return fmt.Sprintf("could not update references after moving %s", e.Path)
}

func (e *CascadeUpdateError) Unwrap() error { return e.Err }
