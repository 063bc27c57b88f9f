package natsgath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimStrToRectHeight(t *testing.T) {
	in := strings.Repeat("line\n", 10)
	out := trimStrToRect(in, 3, 80)
	assert.Equal(t, "line\nline\nline\n[...]", out)
}

func TestTrimStrToRectWidth(t *testing.T) {
	out := trimStrToRect(strings.Repeat("a", 100), 10, 8)
	assert.Equal(t, "aaaaaaaa[...]", out)
}

func TestTrimStrToRectEmpty(t *testing.T) {
	assert.Equal(t, "", trimStrToRect("", 10, 10))
}
