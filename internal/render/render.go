package render

import (
	"fmt"
	"strings"
)

// Markdown renders markdown content for terminal display
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownWithWidth renders with default options at the given width
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// RecommendationsHeading titles the department panel
const RecommendationsHeading = "Possible Departments to Consult"

// RecommendationsMarkdown formats department suggestions as a markdown list
func RecommendationsMarkdown(recommendations []string) string {
	if len(recommendations) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("## ")
	sb.WriteString(RecommendationsHeading)
	sb.WriteString("\n\n")
	for _, rec := range recommendations {
		fmt.Fprintf(&sb, "- %s\n", rec)
	}
	return sb.String()
}

// Recommendations renders the department panel, falling back to the raw
// markdown when the renderer cannot be built
func Recommendations(recommendations []string, opts Options) string {
	md := RecommendationsMarkdown(recommendations)
	if md == "" {
		return ""
	}
	out, err := Markdown(md, opts)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
