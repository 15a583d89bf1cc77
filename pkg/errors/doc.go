// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeConvergence,
//	    "steady-state solve did not converge",
//	    cause,
//	    map[string]interface{}{
//	        "iterations": maxIter,
//	        "model": modelName,
//	    },
//	)
package errors
