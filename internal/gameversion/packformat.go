package gameversion

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

type formatRange struct {
	constraint string
	format     int
}

// formats maps release ranges to data pack formats, oldest first.
var formats = []formatRange{
	{">= 1.13, < 1.15", 4},
	{">= 1.15, < 1.16.2", 5},
	{">= 1.16.2, < 1.17", 6},
	{">= 1.17, < 1.18", 7},
	{">= 1.18, < 1.18.2", 8},
	{">= 1.18.2, < 1.19", 9},
	{">= 1.19, < 1.19.4", 10},
	{">= 1.19.4, < 1.20", 12},
	{">= 1.20, < 1.20.2", 15},
	{"1.20.2", 18},
	{">= 1.20.3, < 1.20.5", 26},
	{">= 1.20.5, < 1.21", 41},
	{">= 1.21, < 1.21.2", 48},
	{">= 1.21.2, < 1.21.4", 57},
	{"1.21.4", 61},
	{"1.21.5", 71},
	{"1.21.6", 80},
	{">= 1.21.7, < 1.21.9", 81},
}

type compiledRange struct {
	constraints *semver.Constraints
	format      int
}

var compiled = compileFormats()

func compileFormats() []compiledRange {
	out := make([]compiledRange, len(formats))
	for i, f := range formats {
		c, err := semver.NewConstraint(f.constraint)
		if err != nil {
			panic(fmt.Sprintf("gameversion: bad constraint %q: %v", f.constraint, err))
		}
		out[i] = compiledRange{constraints: c, format: f.format}
	}
	return out
}

// LatestPackFormat is the newest format this build knows about.
func LatestPackFormat() int {
	return formats[len(formats)-1].format
}

// PackFormat returns the data pack format for a release such as "1.20.4".
// Pre-releases map to their release. Snapshots, unparseable and unknown
// versions yield LatestPackFormat and false.
func PackFormat(version string) (int, bool) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return LatestPackFormat(), false
	}
	core := semver.New(v.Major(), v.Minor(), v.Patch(), "", "")

	for _, r := range compiled {
		if r.constraints.Check(core) {
			return r.format, true
		}
	}
	return LatestPackFormat(), false
}
