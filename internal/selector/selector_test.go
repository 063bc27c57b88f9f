package selector_test

import (
	"testing"

	"github.com/spanrun/spanrun/internal/registry"
	"github.com/spanrun/spanrun/internal/selector"
	"github.com/spanrun/spanrun/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T, versions ...string) *registry.Registry {
	t.Helper()
	entries := make([]registry.InterpreterEntry, 0, len(versions))
	for _, v := range versions {
		entries = append(entries, registry.InterpreterEntry{
			Version: version.Parse(v),
			BinPath: "/opt/fake/" + v + "/bin/python",
			BinDir:  "/opt/fake/" + v + "/bin",
		})
	}
	reg, err := registry.New(entries)
	require.NoError(t, err)
	return reg
}

func ids(entries []registry.InterpreterEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Version.String())
	}
	return out
}

func TestSelectAll(t *testing.T) {
	reg := testRegistry(t, "2.7.1", "2.7.2", "3.0.0")
	got, err := selector.Select(reg, selector.Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2.7.1", "2.7.2", "3.0.0"}, ids(got))
}

func TestSelectExact(t *testing.T) {
	reg := testRegistry(t, "2.7.1", "2.7.2", "3.0.0")
	got, err := selector.Select(reg, selector.Query{Pattern: "2.7.2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2.7.2"}, ids(got))
}

func TestSelectExactNotFound(t *testing.T) {
	reg := testRegistry(t, "2.7.1", "2.7.2", "3.0.0")
	_, err := selector.Select(reg, selector.Query{Pattern: "9.9.9"})
	require.Error(t, err)
	var selErr *selector.Error
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, selector.NotFound, selErr.Kind)
}

func TestSelectWildcard(t *testing.T) {
	reg := testRegistry(t, "2.7.1", "2.7.2", "3.0.0")
	got, err := selector.Select(reg, selector.Query{Pattern: "2.7.x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2.7.1", "2.7.2"}, ids(got))
}

func TestSelectWildcardNoMatch(t *testing.T) {
	reg := testRegistry(t, "2.7.1", "2.7.2", "3.0.0")
	_, err := selector.Select(reg, selector.Query{Pattern: "4.x"})
	var selErr *selector.Error
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, selector.NotFound, selErr.Kind)
}

func TestSelectRangeInclusive(t *testing.T) {
	reg := testRegistry(t, "2.7.1", "2.7.2", "2.7.3", "3.0.0")
	got, err := selector.Select(reg, selector.Query{Pattern: "2.7.1 ~ 2.7.3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2.7.1", "2.7.2", "2.7.3"}, ids(got))
}

func TestSelectRangeBoundMissing(t *testing.T) {
	reg := testRegistry(t, "2.7.1", "2.7.2", "3.0.0")
	_, err := selector.Select(reg, selector.Query{Pattern: "2.7.1 ~ 2.9.9"})
	var selErr *selector.Error
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, selector.InvalidRange, selErr.Kind)
}

func TestSelectMinMaxBounds(t *testing.T) {
	reg := testRegistry(t, "3.4.0", "3.5.0", "3.6.0", "3.7.0", "3.8.0")
	got, err := selector.Select(reg, selector.Query{MinVersion: "3.5", MaxVersion: "3.8"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3.5.0", "3.6.0", "3.7.0"}, ids(got))
}

func TestSelectPatternWithBounds(t *testing.T) {
	reg := testRegistry(t, "2.7.1", "2.7.2", "2.7.3", "3.0.0")
	got, err := selector.Select(reg, selector.Query{Pattern: "2.7.x", MinVersion: "2.7.2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2.7.2", "2.7.3"}, ids(got))
}

func TestSelectPreservesRegistryOrder(t *testing.T) {
	reg := testRegistry(t, "2.7.9", "2.7.10", "2.7.11")
	got, err := selector.Select(reg, selector.Query{Pattern: "2.7.x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2.7.9", "2.7.10", "2.7.11"}, ids(got))
}
