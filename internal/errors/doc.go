// Package errors holds the xcsdk CLI's error conventions.
//
// It re-exports the cockroachdb/errors constructors so command code needs a
// single import, defines CLI sentinels, and provides [ExitError], which pairs
// an error with a process exit code and an optional suggestion:
//
//   - ExitSuccess (0): the command completed
//   - ExitUser (1): bad input, bad configuration, nothing found
//   - ExitSystem (2): the environment failed (xcode-select, I/O)
//
// [Classify] maps library failures from pkg/applesdk onto these codes:
//
//	sdks, err := applesdk.Search(search, applesdk.LoadUnparsedSDK)
//	if err != nil {
//		return errors.Classify(err)
//	}
package errors
