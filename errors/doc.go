// Package errors provides the error classification used across prefixmap.
//
// # Overview
//
// Errors fall into three classes: Transient (temporary, retryable), Invalid
// (bad input, do not retry) and Fatal (stop processing). Transports and the
// configuration loader wrap every failure they surface with one of the
// Wrap helpers so callers can branch on the class instead of matching
// strings.
//
// Lookup misses in the registry are not errors at all: Resolve and Shrink
// return nil. Stream failures reported by a source are returned by Import
// untouched, so errors.Is against the source's own error value keeps working.
//
// # Wrapping Pattern
//
// All wrapping follows the format
//
//	component.method: action failed: <cause>
//
// For example:
//
//	if err := conn.Flush(); err != nil {
//	    return errors.WrapTransient(err, "Sink", "End", "flush end marker")
//	}
//
// # Retry
//
// RetryConfig.ToRetryConfig bridges the classification into pkg/retry:
//
//	cfg := errors.DefaultRetryConfig().ToRetryConfig()
//	err := retry.Do(ctx, cfg, func() error {
//	    err := client.Connect(ctx)
//	    if err != nil && !errors.IsTransient(err) {
//	        return retry.NonRetryable(err)
//	    }
//	    return err
//	})
package errors
