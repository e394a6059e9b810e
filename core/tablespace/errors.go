package tablespace

import "errors"

var (
	ErrPageNotFound = errors.New("page number beyond end of tablespace")
	ErrPartialPage  = errors.New("tablespace size is not a multiple of the page size")
	ErrClosed       = errors.New("tablespace is closed")
	ErrTooManyPages = errors.New("tablespace has more pages than 32-bit page numbers can address")
)
