// Package errors provides structured, actionable error values for laiweb.
//
// Every error carries a stable code (e.g. "L001") that maps to a registered
// template with a category, a short message and a longer explanation. The
// runtime wraps its public sentinel errors in coded errors, so callers can
// use errors.Is against the sentinel and still print a helpful message.
//
// # Error Categories
//
// Errors are organized into categories:
//   - lifecycle: component state machine violations (mount twice, unmount while unmounted)
//   - render: tree construction and mounting failures (negative index, unknown node kind)
//   - scheduler: deferred task failures
//   - config: configuration loading and validation
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("L001").
//	    WithOp("mount").
//	    WithSuggestion("Call Unmount before mounting the component again").
//	    Wrap(runtime.ErrAlreadyMounted)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR L001: Component already mounted
//	//
//	//   during mount
//	//
//	//   A component instance can be mounted once. ...
//	//
//	//   Hint: Call Unmount before mounting the component again
package errors
