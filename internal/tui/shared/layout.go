package shared

import "strings"

// RenderWidgetBox renders content in a titled box with borders.
func RenderWidgetBox(title, content string, width int) string {
	const widthOverhead = 4 // borders and padding

	rendered := TitleStyle().Render(title) + "\n" + content

	style := BoxStyle()
	if width > widthOverhead {
		style = style.Width(width - widthOverhead)
	}

	return style.Render(rendered)
}

// RenderKeyHelp renders "key action" pairs on one dimmed line.
func RenderKeyHelp(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2) //nolint:mnd // key/action pairs

	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, LabelStyle().Render(pairs[i])+" "+DimStyle().Render(pairs[i+1]))
	}

	return strings.Join(parts, DimStyle().Render(" • "))
}
