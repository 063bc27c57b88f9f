package version_test

import (
	"testing"

	"github.com/spanrun/spanrun/internal/version"
	"github.com/stretchr/testify/assert"
)

func TestParseComponents(t *testing.T) {
	a := version.Parse("1.2")
	b := version.Parse("01.02")
	assert.True(t, a.Equal(b), "numeric normalization: 1.2 == 01.02")

	rc := version.Parse("1.2-rc")
	assert.False(t, rc.Equal(a))
}

func TestCompareNumeric(t *testing.T) {
	assert.True(t, version.Parse("0.1").Less(version.Parse("0.2")))
	assert.True(t, version.Parse("0.9").Less(version.Parse("0.10")))
	assert.True(t, version.Parse("0.9").Less(version.Parse("1.0")))
	assert.True(t, version.Parse("2.7.9").Less(version.Parse("2.7.10")))
	assert.False(t, version.Parse("2.7.10").Less(version.Parse("2.7.9")))
}

func TestComparePrefixSortsFirst(t *testing.T) {
	assert.True(t, version.Parse("3.8").Less(version.Parse("3.8.1")))
	assert.Equal(t, 0, version.Parse("3.8").Compare(version.Parse("3.8")))
}

func TestCompareSuffix(t *testing.T) {
	// "3.8-rc1" has components (3,"")(8,"-rc1"); the suffix makes it
	// sort after the plain "3.8".
	assert.True(t, version.Parse("3.8").Less(version.Parse("3.8-rc1")))
	// "1.beta" parses as (1,"")(0,"beta"); the suffix sorts it after "1.0".
	assert.True(t, version.Parse("1.0").Less(version.Parse("1.beta")))
}
