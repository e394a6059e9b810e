package page

import (
	"errors"

	"github.com/sushant-115/innopage/core/cursor"
)

// --- Error Definitions ---

var (
	ErrPageSizeMismatch      = errors.New("page buffer size mismatch")
	ErrOutOfBounds           = cursor.ErrOutOfBounds
	ErrNilFactory            = errors.New("page factory must not be nil")
	ErrDuplicateRegistration = errors.New("page type already has a registered decoder")
)
