// Package specerrors provides structured error types for the apitree library.
//
// Import path: github.com/apitree/apitree/specerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides five core error types:
//
//   - [ParseError]: JSON/YAML parsing failures; fatal to the whole conversion
//   - [ValidationError]: missing openapi/paths fields; fatal
//   - [ReferenceError]: $ref resolution issues, including circular and
//     unresolvable pointers; reported for diagnostics, never fatal
//   - [ResourceLimitError]: resource exhaustion (resolution depth)
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrUnresolvedReference]: Matches [ReferenceError] with IsUnresolved=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	doc, err := parser.Parse(data)
//	if errors.Is(err, specerrors.ErrValidation) {
//	    // Not an OpenAPI 3.x document
//	}
//
// Extract error details with errors.As():
//
//	var vErr *specerrors.ValidationError
//	if errors.As(err, &vErr) {
//	    fmt.Printf("missing field: %s\n", vErr.Field)
//	}
package specerrors
