package shared

import "fmt"

var (
	// Container errors
	ErrMissingInput     = fmt.Errorf("input file not found")
	ErrDecodeFailure    = fmt.Errorf("container decode failed")
	ErrEncodeFailure    = fmt.Errorf("container encode failed")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
