//go:build !debug

package debug

// Debug is false in release builds; build with -tags=debug to keep full stack
// traces and test logging.
const Debug = false
