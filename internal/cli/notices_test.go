package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoticesWriteLines(t *testing.T) {
	var buf bytes.Buffer
	notices := NewNotices(&buf)

	notices.Success("Account successfully added!")
	notices.Error("Something went wrong")
	notices.Info("Run 'walletctl login' to sign in.")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Account successfully added!")
	assert.Contains(t, lines[1], "Something went wrong")
	assert.Contains(t, lines[2], "Run 'walletctl login' to sign in.")
}

func TestNewNoticesDefaultsToStderr(t *testing.T) {
	notices := NewNotices(nil)
	assert.NotNil(t, notices.out)
}
