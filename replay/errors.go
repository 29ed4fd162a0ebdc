package replay

import "errors"

var (
	ErrRootRequired       = errors.New("replay root must be provided")
	ErrRecorderClosed     = errors.New("recorder closed")
	ErrUnsupportedVersion = errors.New("unsupported manifest version")
	ErrTruncatedFrame     = errors.New("frame truncated")
	ErrFrameTooLarge      = errors.New("frame particle count exceeds limit")
)
