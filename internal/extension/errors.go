package extension

import "errors"

// ErrExtensionUnavailable indicates the engine rejected a CREATE EXTENSION
// request, typically due to insufficient privilege or a missing contrib
// package on the server.
var ErrExtensionUnavailable = errors.New("extension could not be enabled")

// ErrInvalidExtensionName indicates an extension name that does not form a
// valid CREATE EXTENSION statement.
var ErrInvalidExtensionName = errors.New("invalid extension name")
