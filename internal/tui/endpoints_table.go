package tui

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Endpoint is one row of the endpoint table.
type Endpoint struct {
	Service string
	URL     string
}

// SortedEndpoints turns a service to URL map into rows ordered by service.
func SortedEndpoints(urls map[string]string) []Endpoint {
	rows := make([]Endpoint, 0, len(urls))
	for svc, url := range urls {
		rows = append(rows, Endpoint{Service: svc, URL: url})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Service < rows[j].Service })
	return rows
}

// RenderEndpointTable lays out rows in two aligned columns. URLs longer than
// the space left by maxWidth are truncated with an ellipsis; maxWidth <= 0
// means no limit. selected highlights one row, -1 for none.
func RenderEndpointTable(rows []Endpoint, maxWidth, selected int) string {
	const gap = "  "
	serviceWidth := runewidth.StringWidth("SERVICE")
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Service); w > serviceWidth {
			serviceWidth = w
		}
	}

	urlWidth := 0
	if maxWidth > 0 {
		urlWidth = maxWidth - serviceWidth - len(gap)
		if urlWidth < 1 {
			urlWidth = 1
		}
	}

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(runewidth.FillRight("SERVICE", serviceWidth)))
	b.WriteString(gap)
	b.WriteString(tableHeaderStyle.Render("URL"))
	for i, r := range rows {
		url := r.URL
		if urlWidth > 0 && runewidth.StringWidth(url) > urlWidth {
			url = runewidth.Truncate(url, urlWidth, "…")
		}
		line := runewidth.FillRight(r.Service, serviceWidth) + gap + url
		b.WriteString("\n")
		if i == selected {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(line)
		}
	}
	return b.String()
}
