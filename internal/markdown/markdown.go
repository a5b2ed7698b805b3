// Package markdown renders task descriptions for the terminal.
package markdown

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	internalstrings "github.com/amonks/ordoflow/internal/strings"
)

// Style selects the glamour style set.
type Style string

const (
	// StyleASCII renders without colors.
	StyleASCII Style = "ascii"
	// StyleLight suits light terminal backgrounds.
	StyleLight Style = "light"
	// StyleDark suits dark terminal backgrounds.
	StyleDark Style = "dark"
)

type renderer interface {
	Render(string) (string, error)
}

type rendererKey struct {
	width int
	style Style
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]renderer{}
)

// Render formats markdown text for terminal output without colors.
func Render(width, indent int, input []byte) []byte {
	return RenderStyled(StyleASCII, width, indent, input)
}

// SafeRender is Render that falls back to the raw text if the renderer panics.
func SafeRender(width, indent int, input []byte) []byte {
	return SafeRenderStyled(StyleASCII, width, indent, input)
}

// SafeRenderStyled is RenderStyled that falls back to the raw text if the
// renderer panics.
func SafeRenderStyled(style Style, width, indent int, input []byte) (out []byte) {
	defer func() {
		if recovered := recover(); recovered != nil {
			value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input)))
			out = []byte(indentBlock(value, max(indent, 0)))
		}
	}()
	return RenderStyled(style, width, indent, input)
}

// RenderStyled formats markdown text with the given style, wrapped to
// width and indented by indent spaces. Blank input renders as nil.
func RenderStyled(style Style, width, indent int, input []byte) []byte {
	if len(input) == 0 {
		return nil
	}
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}

	r := markdownRenderer(style, renderWidth)
	rendered := value
	if r != nil {
		formatted, err := r.Render(value)
		if err == nil {
			rendered = trimBlankLines(formatted)
		}
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	if indent <= 0 {
		return []byte(rendered)
	}
	return []byte(indentBlock(rendered, indent))
}

func markdownRenderer(style Style, width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	key := rendererKey{width: width, style: style}
	if cached, ok := renderers[key]; ok {
		return cached
	}
	config, err := styleConfig(style)
	if err != nil {
		return nil
	}
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(config),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = created
	return created
}

func styleConfig(style Style) (ansi.StyleConfig, error) {
	var config ansi.StyleConfig
	switch style {
	case StyleASCII, "":
		config = styles.ASCIIStyleConfig
	case StyleLight:
		config = styles.LightStyleConfig
	case StyleDark:
		config = styles.DarkStyleConfig
	default:
		return ansi.StyleConfig{}, fmt.Errorf("unknown markdown style %q", style)
	}
	var zero uint
	config.Document.Margin = &zero
	config.Item.BlockPrefix = "- "
	return config, nil
}

// trimBlankLines drops the blank lines glamour puts around a document.
func trimBlankLines(value string) string {
	lines := strings.Split(value, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	for i := start; i < end; i++ {
		lines[i] = internalstrings.TrimTrailingWhitespace(lines[i])
	}
	return strings.Join(lines[start:end], "\n")
}

func indentBlock(value string, spaces int) string {
	if spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
