package renderer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dpshade/srs-wizard/internal/layout"
	"github.com/dpshade/srs-wizard/internal/models"
)

// Renderer renders an SRS record for review before it is turned into a PDF
type Renderer struct {
	record models.Record
}

// NewRenderer creates a new renderer instance
func NewRenderer(record models.Record) *Renderer {
	return &Renderer{record: record}
}

// RenderMarkdown renders the document outline as Markdown. It follows the same sections and skip
// rules as the PDF, so the review shows exactly what will be printed.
func (r *Renderer) RenderMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", layout.DocumentTitle)
	if name := strings.TrimSpace(r.record.ProjectInfo.Name); name != "" {
		fmt.Fprintf(&b, "_Project: %s_\n\n", escape(name))
	}

	sections := layout.Sections(r.record)
	if len(sections) == 0 {
		b.WriteString("_Nothing to print yet._\n")
		return b.String()
	}

	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Heading())
		for _, block := range section.Blocks {
			switch block.Kind {
			case layout.BlockInline:
				fmt.Fprintf(&b, "**%s:** %s\n\n", block.Label, escape(block.Text))
			case layout.BlockParagraph:
				fmt.Fprintf(&b, "**%s:**\n\n%s\n\n", block.Label, paragraph(block.Text))
			case layout.BlockBulletList:
				fmt.Fprintf(&b, "**%s:**\n\n", block.Label)
				for _, item := range block.Items {
					fmt.Fprintf(&b, "- %s\n", escape(strings.ReplaceAll(item, "\n", " ")))
				}
				b.WriteString("\n")
			}
		}
		fmt.Fprintf(&b, "_Edit in step %d_\n\n", section.Step+1)
	}

	return b.String()
}

// RenderJSON renders the record as indented JSON
func (r *Renderer) RenderJSON() (string, error) {
	jsonBytes, err := json.MarshalIndent(r.record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// paragraph keeps explicit line breaks as Markdown hard breaks
func paragraph(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = escape(line)
	}
	return strings.Join(lines, "  \n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
)

// escape keeps user text literal: input is plain text, never markup
func escape(s string) string {
	return markdownEscaper.Replace(s)
}
