package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"

	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, nothing found).
	ExitUser = 1

	// ExitSystem indicates a system-related error (helper failures, I/O, permissions).
	ExitSystem = 2
)

// Sentinel errors for CLI failure conditions.
var (
	// ErrNoSDKFound indicates a search completed without matches.
	ErrNoSDKFound = crdb.New("no matching SDK found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrUnknownPlatform indicates a platform name outside the known set was
	// given where only known platforms are accepted.
	ErrUnknownPlatform = crdb.New("unknown platform")

	// ErrInvalidOutput indicates an unsupported --output value.
	ErrInvalidOutput = crdb.New("invalid output format")
)

// Constructors re-exported from cockroachdb/errors.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Join   = crdb.Join
	Unwrap = crdb.UnwrapOnce
)

// ExitError wraps an error with an exit code and optional suggestion.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable hint printed after the error.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError creates an ExitError for configuration problems.
func NewConfigError(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: "Run: xcsdk doctor"}
}

// Error returns the underlying message, or the exit code when there is none.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Classify converts err into an ExitError. Errors that already carry an exit
// code are returned as is; pkg/applesdk failures get a code and suggestion;
// anything else is a system error.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr
	}

	switch {
	case Is(err, applesdk.ErrXcodeSelectRun):
		return NewSystemError(err, "Install Xcode or the Command Line Tools, or set DEVELOPER_DIR")
	case Is(err, applesdk.ErrXcodeSelectStatus):
		return NewSystemError(err, "Run: xcode-select --switch <path to Xcode.app>")
	case Is(err, applesdk.ErrVersionParse):
		return NewUserError(err, "Versions have one to three numeric components, e.g. 14 or 14.2")
	case Is(err, applesdk.ErrPathNotSDK), Is(err, applesdk.ErrPathNotPlatform):
		return NewUserError(err, "")
	case Is(err, applesdk.ErrSettingsParse):
		return NewSystemError(err, "The SDK may be damaged; reinstall it")
	case Is(err, ErrNoSDKFound):
		return NewUserError(err, "Run: xcsdk search --explain")
	case Is(err, ErrInvalidConfig), Is(err, ErrUnknownPlatform), Is(err, ErrInvalidOutput):
		return NewConfigError(err)
	default:
		return NewSystemError(err, "")
	}
}

// Code returns the exit code for err: ExitSuccess for nil, otherwise the code
// Classify assigns.
func Code(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return Classify(err).Code
}
