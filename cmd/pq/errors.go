package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/payquery/payquery/internal/config"
	"github.com/payquery/payquery/internal/query"
)

// FatalError writes an error message to stderr and exits with code 1.
// Use this for fatal errors that prevent the command from completing:
// bad query text, a missing environment, a failed request.
//
// Example:
//
//	if err := runQuery(ctx, os.Stdout, args); err != nil {
//	    FatalError("%v", err)
//	}
func FatalError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// FatalErrorWithHint writes an error message with a hint to stderr and exits.
// Use this when you can provide an actionable suggestion to fix the error.
//
// Example:
//
//	FatalErrorWithHint("no environments configured", "Run 'pq config new default' to create one")
func FatalErrorWithHint(message, hint string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	os.Exit(1)
}

// WarnError writes a warning message to stderr and returns.
// Use this for auxiliary features whose failure should not stop a query,
// such as telemetry setup or an unreadable settings file.
func WarnError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// errorCode classifies err for JSON error output.
func errorCode(err error) string {
	switch {
	case errors.Is(err, query.ErrMissingSortKey),
		errors.Is(err, query.ErrInvalidClause),
		errors.Is(err, query.ErrUnknownOperator):
		return "parse_error"
	case errors.Is(err, config.ErrNoEnvironments),
		errors.Is(err, config.ErrUnknownEnvironment):
		return "config_error"
	default:
		return ""
	}
}

// errorHint suggests a fix for the errors a user can act on.
func errorHint(err error) string {
	switch {
	case errors.Is(err, config.ErrNoEnvironments):
		return "Run 'pq config new default' or set " + config.EnvAPIToken
	case errors.Is(err, config.ErrUnknownEnvironment):
		return "Run 'pq config list' to see configured environments"
	case errors.Is(err, query.ErrUnknownOperator):
		return "Run 'pq syntax' for the list of operators"
	default:
		return ""
	}
}

// fail reports err in the active output mode and exits with code 1.
func fail(err error) {
	if jsonOutput {
		outputJSONError(err, errorCode(err))
	}
	if hint := errorHint(err); hint != "" {
		FatalErrorWithHint(err.Error(), hint)
	}
	FatalError("%v", err)
}
