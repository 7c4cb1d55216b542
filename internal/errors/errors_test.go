package errors

import (
	"fmt"
	"os"
	"testing"

	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNoSDKFound, ExitUser),
			want: "no matching SDK found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(Wrap(ErrInvalidConfig, "loading config"), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrNoSDKFound, ExitUser),
			wantTarget: ErrNoSDKFound,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(Wrapf(ErrUnknownPlatform, "%q", "Linux"), ExitUser),
			wantTarget: ErrUnknownPlatform,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrNoSDKFound, ExitUser),
			wantTarget: ErrInvalidConfig,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrNoSDKFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestExitError_As(t *testing.T) {
	var exitErr *ExitError
	err := fmt.Errorf("command failed: %w", NewSystemError(os.ErrPermission, ""))

	if !As(err, &exitErr) {
		t.Fatal("As() = false, want true")
	}
	if exitErr.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitSystem)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name           string
		err            *ExitError
		wantCode       int
		wantSuggestion string
	}{
		{"user", NewUserError(ErrNoSDKFound, "Try --system-xcodes"), ExitUser, "Try --system-xcodes"},
		{"system", NewSystemError(os.ErrPermission, "Check permissions"), ExitSystem, "Check permissions"},
		{"config", NewConfigError(ErrInvalidConfig), ExitUser, "Run: xcsdk doctor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Suggestion != tt.wantSuggestion {
				t.Errorf("Suggestion = %q, want %q", tt.err.Suggestion, tt.wantSuggestion)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	preset := NewUserError(ErrNoSDKFound, "custom")

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"xcode-select missing", Wrap(applesdk.ErrXcodeSelectRun, "developer directory"), ExitSystem},
		{"xcode-select failed", Wrapf(applesdk.ErrXcodeSelectStatus, "exit status %d", 1), ExitSystem},
		{"bad version", Wrapf(applesdk.ErrVersionParse, "%s", "ten"), ExitUser},
		{"not an sdk", Wrapf(applesdk.ErrPathNotSDK, "%s", "/tmp"), ExitUser},
		{"damaged settings", Wrap(applesdk.ErrSettingsParse, "decoding"), ExitSystem},
		{"nothing found", ErrNoSDKFound, ExitUser},
		{"bad config", Wrap(ErrInvalidConfig, "search.platform"), ExitUser},
		{"unknown", os.ErrPermission, ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("Classify().Code = %d, want %d", got.Code, tt.wantCode)
			}
			if !Is(got, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}

	if got := Classify(fmt.Errorf("wrapped: %w", preset)); got != preset {
		t.Error("Classify should return an existing ExitError unchanged")
	}
	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestCode(t *testing.T) {
	if got := Code(nil); got != ExitSuccess {
		t.Errorf("Code(nil) = %d, want %d", got, ExitSuccess)
	}
	if got := Code(ErrNoSDKFound); got != ExitUser {
		t.Errorf("Code(ErrNoSDKFound) = %d, want %d", got, ExitUser)
	}
}
