package htmlviz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgenotes/vaultgraph/server/service/graph"
)

func TestRender(t *testing.T) {
	g := graph.Build([]graph.Document{
		{Name: "A", Label: "Alpha Note", Links: []string{"B"}},
		{Name: "B"},
		{Name: "Lonely"},
	}, false)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, g, 3, "Vault Graph"))
	page := buf.String()

	assert.Contains(t, page, "<title>Vault Graph</title>")
	assert.Contains(t, page, `"id":"A"`)
	assert.Contains(t, page, `"label":"Alpha Note"`)
	// Nodes without a title fall back to their name.
	assert.Contains(t, page, `"label":"B"`)
	assert.Contains(t, page, `"from":"A"`)
	assert.Contains(t, page, `"to":"B"`)
	assert.Contains(t, page, orphanColor)
	assert.Contains(t, page, connectedColor)
	assert.Contains(t, page, "Showing: 3")
	assert.Contains(t, page, "physics: { enabled: false }")
}

func TestRender_EscapesNames(t *testing.T) {
	g := graph.Build([]graph.Document{{Name: "<script>alert(1)</script>"}}, false)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, g, 1, "t"))

	assert.False(t, strings.Contains(buf.String(), "<script>alert(1)</script>"),
		"node names must not be embedded as raw HTML")
}

func TestRender_EmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, graph.Build(nil, false), 0, "empty"))
	assert.Contains(t, buf.String(), "Showing: 0")
}
