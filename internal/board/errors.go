package board

import "errors"

var (
	// ErrCardNotFound indicates a referenced card id is absent from the
	// store, or a delete named a parent that does not own the card.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardExists indicates an explicit id collided with an existing card.
	ErrCardExists = errors.New("card already exists")

	// ErrNotChild indicates a zoom target that is not a child of the
	// current focus.
	ErrNotChild = errors.New("not a child of the current focus")

	// ErrInvalidDepth indicates a zoom-out depth outside [1, len(path)].
	ErrInvalidDepth = errors.New("depth out of range")

	// ErrRootDeletion indicates an attempt to delete the root card.
	ErrRootDeletion = errors.New("root card cannot be deleted")

	// ErrInvalidSnapshot indicates a state that fails integrity validation.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
