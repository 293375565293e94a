package ghostty

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/palettelabs/shade/internal/models"
)

const themeFileTemplate = `{{range $i, $c := .ANSI}}palette = {{$i}}={{$c}}
{{end}}background = {{.Background}}
foreground = {{.Foreground}}
cursor-color = {{.CursorColor}}
selection-background = {{.SelectionBackground}}
selection-foreground = {{.SelectionForeground}}
`

var themeTemplate = template.Must(template.New("ghostty-theme").Parse(themeFileTemplate))

// RenderTheme renders a Ghostty theme file for one palette.
func RenderTheme(p models.Palette) (string, error) {
	var out strings.Builder
	if err := themeTemplate.Execute(&out, p); err != nil {
		return "", fmt.Errorf("render ghostty theme: %w", err)
	}
	return out.String(), nil
}
