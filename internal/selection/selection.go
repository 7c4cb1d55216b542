// Package selection orders and narrows search results.
//
// applesdk.Search returns SDKs in search order and leaves preference to the
// caller. This package holds the CLI's preference policy: version ordering,
// symlink elision, semver constraints and picking a single best SDK.
package selection

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

// Order controls how Apply sorts results.
type Order string

const (
	// OrderSearch keeps search order.
	OrderSearch Order = "search"
	// OrderAscending sorts by version, oldest first.
	OrderAscending Order = "asc"
	// OrderDescending sorts by version, newest first.
	OrderDescending Order = "desc"
)

// ErrInvalidOrder is returned by ParseOrder for unknown values.
var ErrInvalidOrder = errors.New("invalid sort order")

// ParseOrder parses an Order. The empty string is OrderSearch.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(s)); o {
	case "", OrderSearch:
		return OrderSearch, nil
	case OrderAscending, OrderDescending:
		return o, nil
	default:
		return "", errors.Wrapf(ErrInvalidOrder, "%q (want search, asc or desc)", s)
	}
}

// Options configures Apply.
type Options struct {
	// Constraint is a semver constraint such as ">= 14, < 15". Empty matches all.
	Constraint string
	// SkipSymlinks drops SDK entries that are symlinks to other SDKs.
	SkipSymlinks bool
	// Order sorts the result.
	Order Order
}

// Apply filters then sorts sdks according to opts. The input is not modified.
func Apply[T applesdk.SDK](sdks []T, opts Options) ([]T, error) {
	res := slices.Clone(sdks)

	if opts.SkipSymlinks {
		res = WithoutSymlinks(res)
	}

	if opts.Constraint != "" {
		var err error
		res, err = FilterConstraint(res, opts.Constraint)
		if err != nil {
			return nil, err
		}
	}

	switch opts.Order {
	case OrderAscending:
		res = SortByVersion(res, false)
	case OrderDescending:
		res = SortByVersion(res, true)
	}

	return res, nil
}

// SortByVersion returns a copy of sdks stably sorted by version. SDKs without
// a version rank lowest: first when ascending, last when descending.
func SortByVersion[T applesdk.SDK](sdks []T, descending bool) []T {
	res := slices.Clone(sdks)
	slices.SortStableFunc(res, func(a, b T) int {
		c := compareVersions(a, b)
		if descending {
			return -c
		}
		return c
	})
	return res
}

// WithoutSymlinks drops symlinked SDKs such as MacOSX.sdk -> MacOSX14.2.sdk.
func WithoutSymlinks[T applesdk.SDK](sdks []T) []T {
	return slices.DeleteFunc(slices.Clone(sdks), func(sdk T) bool {
		return sdk.IsSymlink()
	})
}

// FilterConstraint keeps SDKs whose version satisfies expr. SDKs without a
// version, or whose version is not numeric, never match.
func FilterConstraint[T applesdk.SDK](sdks []T, expr string) ([]T, error) {
	constraint, err := semver.NewConstraint(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing version constraint %q", expr)
	}

	var res []T
	for _, sdk := range sdks {
		version, ok := sdk.Version()
		if !ok {
			continue
		}
		v, err := version.Semver()
		if err != nil {
			continue
		}
		if constraint.Check(v) {
			res = append(res, sdk)
		}
	}
	return res, nil
}

// Best returns the highest versioned SDK, preferring the earliest in search
// order on ties. It reports false when sdks is empty.
func Best[T applesdk.SDK](sdks []T) (T, bool) {
	var best T
	if len(sdks) == 0 {
		return best, false
	}

	best = sdks[0]
	for _, sdk := range sdks[1:] {
		if compareVersions(sdk, best) > 0 {
			best = sdk
		}
	}
	return best, true
}

func compareVersions(a, b applesdk.SDK) int {
	av, aok := a.Version()
	bv, bok := b.Version()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return av.Compare(bv)
	}
}
