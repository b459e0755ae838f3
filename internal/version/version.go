// Package version compares major.minor.patch version strings.
package version

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse reads a version of the form major.minor.patch.
func Parse(s string) (*Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid version %q", s)
	}

	var numbers [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || part != strconv.Itoa(n) {
			return nil, fmt.Errorf("invalid version %q: %q is not a number", s, part)
		}
		numbers[i] = n
	}

	return &Version{Major: numbers[0], Minor: numbers[1], Patch: numbers[2]}, nil
}

// MustParse is Parse for versions known to be valid.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 as v is lower than, equal to or higher than other.
func (v Version) Compare(other Version) int {
	return cmp.Or(
		cmp.Compare(v.Major, other.Major),
		cmp.Compare(v.Minor, other.Minor),
		cmp.Compare(v.Patch, other.Patch),
	)
}

func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

func (v Version) IsOneOf(versions []*Version) bool {
	return slices.ContainsFunc(versions, func(other *Version) bool {
		return v.Compare(*other) == 0
	})
}
