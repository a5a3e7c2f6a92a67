package answer

import (
	"strings"

	"github.com/skyward-data/airq/core"
)

// buildContext renders the evidence list into the textual block shown to the
// generator. Line i of the text and entry i of the sources always describe
// the same evidence entry.
func buildContext(evidence []core.Evidence) *core.ContextBlock {
	lines := make([]string, 0, len(evidence))
	sources := make([]string, 0, len(evidence))

	for _, ev := range evidence {
		lines = append(lines, ev.Row.ContextLine())
		sources = append(sources, ev.Row.SourceLabel())
	}

	return &core.ContextBlock{
		Text:    strings.Join(lines, "\n"),
		Sources: sources,
	}
}
