package version

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast/internal/cmd/application"
)

func TestVersionCommand(t *testing.T) {
	app := &application.Mock{
		VersionFunc: func() string { return "v1.2.3" },
		CommitFunc:  func() string { return "abc123" },
		DateFunc:    func() string { return "2025-06-01" },
		BuiltByFunc: func() string { return "goreleaser" },
	}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	got := out.String()
	for _, want := range []string{
		"diecast version v1.2.3",
		"commit: abc123",
		"built: 2025-06-01",
		"built by: goreleaser",
		"go version: " + runtime.Version(),
		"platform: " + runtime.GOOS + "/" + runtime.GOARCH,
	} {
		assert.Contains(t, got, want)
	}
}

func TestVersionRejectsArgs(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}
