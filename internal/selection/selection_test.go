package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

type fakeSDK struct {
	path    string
	version string
	symlink bool
}

func (f fakeSDK) Path() string                { return f.path }
func (f fakeSDK) IsSymlink() bool             { return f.symlink }
func (f fakeSDK) Platform() applesdk.Platform { return applesdk.MacOSX }

func (f fakeSDK) Version() (applesdk.SdkVersion, bool) {
	if f.version == "" {
		return applesdk.SdkVersion{}, false
	}
	return applesdk.NewSdkVersion(f.version), true
}

func fixture() []fakeSDK {
	return []fakeSDK{
		{path: "MacOSX.sdk", symlink: true},
		{path: "MacOSX13.3.sdk", version: "13.3"},
		{path: "MacOSX14.2.sdk", version: "14.2"},
		{path: "MacOSX10.15.sdk", version: "10.15"},
		{path: "MacOSX14.2-copy.sdk", version: "14.2"},
	}
}

func paths(sdks []fakeSDK) []string {
	res := make([]string, len(sdks))
	for i, s := range sdks {
		res[i] = s.path
	}
	return res
}

func TestSortByVersion(t *testing.T) {
	in := fixture()

	tests := []struct {
		name       string
		descending bool
		want       []string
	}{
		{
			name: "ascending",
			want: []string{"MacOSX.sdk", "MacOSX10.15.sdk", "MacOSX13.3.sdk", "MacOSX14.2.sdk", "MacOSX14.2-copy.sdk"},
		},
		{
			name:       "descending",
			descending: true,
			want:       []string{"MacOSX14.2.sdk", "MacOSX14.2-copy.sdk", "MacOSX13.3.sdk", "MacOSX10.15.sdk", "MacOSX.sdk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortByVersion(in, tt.descending)
			if diff := cmp.Diff(tt.want, paths(got)); diff != "" {
				t.Errorf("SortByVersion() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	// Input order is untouched.
	assert.Equal(t, paths(fixture()), paths(in))
}

func TestWithoutSymlinks(t *testing.T) {
	got := WithoutSymlinks(fixture())
	assert.NotContains(t, paths(got), "MacOSX.sdk")
	assert.Len(t, got, 4)
}

func TestFilterConstraint(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{expr: ">= 14", want: []string{"MacOSX14.2.sdk", "MacOSX14.2-copy.sdk"}},
		{expr: "~13", want: []string{"MacOSX13.3.sdk"}},
		{expr: "< 11", want: []string{"MacOSX10.15.sdk"}},
		{expr: ">= 20", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := FilterConstraint(fixture(), tt.expr)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, paths(got)); diff != "" {
				t.Errorf("FilterConstraint(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestFilterConstraint_SkipsUnparseable(t *testing.T) {
	sdks := []fakeSDK{{path: "Odd.sdk", version: "14.beta"}, {path: "MacOSX14.sdk", version: "14"}}
	got, err := FilterConstraint(sdks, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"MacOSX14.sdk"}, paths(got))
}

func TestFilterConstraint_Invalid(t *testing.T) {
	_, err := FilterConstraint(fixture(), "not a constraint")
	assert.Error(t, err)
}

func TestBest(t *testing.T) {
	best, ok := Best(fixture())
	require.True(t, ok)
	assert.Equal(t, "MacOSX14.2.sdk", best.path, "ties resolve to search order")

	_, ok = Best([]fakeSDK(nil))
	assert.False(t, ok)

	only, ok := Best([]fakeSDK{{path: "MacOSX.sdk"}})
	require.True(t, ok)
	assert.Equal(t, "MacOSX.sdk", only.path)
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{
		"":       OrderSearch,
		"search": OrderSearch,
		"ASC":    OrderAscending,
		"desc":   OrderDescending,
	} {
		got, err := ParseOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOrder("newest")
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestApply(t *testing.T) {
	got, err := Apply(fixture(), Options{
		Constraint:   ">= 10",
		SkipSymlinks: true,
		Order:        OrderDescending,
	})
	require.NoError(t, err)

	want := []string{"MacOSX14.2.sdk", "MacOSX14.2-copy.sdk", "MacOSX13.3.sdk", "MacOSX10.15.sdk"}
	if diff := cmp.Diff(want, paths(got)); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}

	same, err := Apply(fixture(), Options{})
	require.NoError(t, err)
	assert.Equal(t, paths(fixture()), paths(same))
}
