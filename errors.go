package cerberus

import "errors"

// Host call failures shared by the kv and logging clients. The clients wrap these with the
// capability function and the underlying cause, so callers match them with errors.Is no matter
// which client failed.
var (
	// ErrHostCall means the waPC host call itself returned an error, including a failure
	// declared on a hostmock.Mock.
	ErrHostCall = errors.New("host call failed")

	// ErrHostResponseInvalid means the host answered, but the response could not be decoded,
	// had no status, or reported a malformed request.
	ErrHostResponseInvalid = errors.New("host response is invalid or unexpected")

	// ErrHostError means the host decoded the request and answered with a failure status the
	// client does not map to a more specific error.
	ErrHostError = errors.New("host returned an error status")
)
