package cmdutil

import (
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/cmd/output"
)

// OutputFormat validates the configured format. An unset format is
// detected from the terminal.
func OutputFormat(app application.Application) (output.Format, error) {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return "", err
	}
	if format == "" {
		return output.DetectFormat(""), nil
	}
	return format, nil
}
