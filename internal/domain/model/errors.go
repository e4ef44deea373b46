package model

import "errors"

var (
	// ErrMissingTarget means training was required (force retrain, or no
	// usable persisted artifact) but the view carries no label column.
	ErrMissingTarget = errors.New("training view has no default label column")

	// ErrArtifactNotFound means no model artifact exists for the purpose.
	ErrArtifactNotFound = errors.New("model artifact not found")

	// ErrArtifactCorrupt means a persisted artifact loaded but cannot be
	// used, e.g. it no longer matches the resolved feature vector.
	ErrArtifactCorrupt = errors.New("model artifact corrupt")
)
