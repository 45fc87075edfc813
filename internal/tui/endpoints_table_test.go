package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedEndpoints(t *testing.T) {
	rows := SortedEndpoints(map[string]string{
		"sqs":     "http://localhost:4576/",
		"s3":      "http://test.localhost.atlassian.io:4572/",
		"kinesis": "http://localhost:4568/",
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "kinesis", rows[0].Service)
	assert.Equal(t, "s3", rows[1].Service)
	assert.Equal(t, "sqs", rows[2].Service)
}

func TestRenderEndpointTableAlignsColumns(t *testing.T) {
	rows := []Endpoint{
		{Service: "dynamodbstreams", URL: "http://localhost:4570/"},
		{Service: "s3", URL: "http://test.localhost.atlassian.io:4572/"},
	}
	out := RenderEndpointTable(rows, 0, -1)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "SERVICE")
	assert.Contains(t, lines[0], "URL")
	col := strings.Index(lines[1], "http://")
	assert.Equal(t, col, strings.Index(lines[2], "http://"))
	assert.Equal(t, len("dynamodbstreams")+2, col)
}

func TestRenderEndpointTableTruncatesToWidth(t *testing.T) {
	rows := []Endpoint{{Service: "s3", URL: "http://test.localhost.atlassian.io:4572/"}}
	out := RenderEndpointTable(rows, 25, -1)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	assert.LessOrEqual(t, runewidth.StringWidth(lines[1]), 25)
	assert.True(t, strings.HasSuffix(lines[1], "…"))
}

func TestRenderEndpointTableEmpty(t *testing.T) {
	out := RenderEndpointTable(nil, 80, -1)
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "SERVICE")
}

func TestSafeIcon(t *testing.T) {
	assert.Equal(t, "✔ ", SafeIcon(IconCheck))
	assert.Equal(t, "🔗  ", SafeIcon(IconLink))
	assert.Equal(t, "✔ done", IconText(IconCheck, "done"))
}
