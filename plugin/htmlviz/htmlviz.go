// Package htmlviz renders a graph as a self-contained interactive HTML page.
// Layout positions are computed server-side, so the page disables the
// renderer's own physics and is responsive immediately.
package htmlviz

import (
	"encoding/json"
	"html/template"
	"io"

	"github.com/pkg/errors"

	"github.com/forgenotes/vaultgraph/server/service/graph"
)

const (
	orphanColor    = "#ff6b6b"
	connectedColor = "#4ecdc4"
)

type vizNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Title string  `json:"title"`
}

type vizEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type pageData struct {
	Title      string
	NodeCount  int
	EdgeCount  int
	TotalCount int
	GraphJSON  template.JS
}

// Render writes the HTML page for g. totalCount is the size of the unfiltered
// note set, shown alongside the rendered count when the view is filtered.
func Render(w io.Writer, g *graph.Graph, totalCount int, title string) error {
	nodes := make([]vizNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		hover := n.Name + "\nConnected"
		color := connectedColor
		if n.IsOrphan {
			hover = n.Name + "\nOrphan (no incoming links)"
			color = orphanColor
		}
		label := n.Label
		if label == "" {
			label = n.Name
		}
		nodes = append(nodes, vizNode{
			ID:    n.Name,
			Label: label,
			X:     n.X,
			Y:     n.Y,
			Color: color,
			Title: hover,
		})
	}

	edges := make([]vizEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, vizEdge{
			From: g.Nodes[e.From].Name,
			To:   g.Nodes[e.To].Name,
		})
	}

	raw, err := json.Marshal(map[string]any{"nodes": nodes, "edges": edges})
	if err != nil {
		return errors.Wrap(err, "marshal graph data")
	}

	data := pageData{
		Title:      title,
		NodeCount:  len(nodes),
		EdgeCount:  len(edges),
		TotalCount: totalCount,
		GraphJSON:  template.JS(raw),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return errors.Wrap(err, "render graph page")
	}
	return nil
}

var pageTemplate = template.Must(template.New("graph").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <script type="text/javascript" src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
    <style>
        body { margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; }
        #network { width: 100vw; height: 100vh; border: none; }
        #info {
            position: absolute;
            top: 10px;
            left: 10px;
            background: rgba(255, 255, 255, 0.95);
            padding: 15px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            max-width: 300px;
        }
        h2 { margin: 0 0 10px 0; font-size: 18px; }
        .stat { margin: 5px 0; font-size: 14px; }
        .legend { margin-top: 10px; font-size: 12px; }
        .legend-item { margin: 5px 0; }
        .color-box { display: inline-block; width: 15px; height: 15px; margin-right: 5px; border-radius: 3px; }
    </style>
</head>
<body>
    <div id="info">
        <h2>{{.Title}}</h2>
        <div class="stat">Showing: {{.NodeCount}}</div>
        <div class="stat">Links: {{.EdgeCount}}</div>
        <div class="stat">Total: {{.TotalCount}}</div>
        <div class="legend">
            <div class="legend-item"><span class="color-box" style="background: #4ecdc4;"></span> Connected</div>
            <div class="legend-item"><span class="color-box" style="background: #ff6b6b;"></span> Orphan</div>
        </div>
    </div>
    <div id="network"></div>
    <script type="text/javascript">
        const graphData = {{.GraphJSON}};
        const container = document.getElementById('network');
        const data = {
            nodes: new vis.DataSet(graphData.nodes),
            edges: new vis.DataSet(graphData.edges)
        };
        const options = {
            nodes: {
                shape: 'dot',
                size: 10,
                font: { size: 12, color: '#333' },
                borderWidth: 2,
                shadow: true
            },
            edges: {
                width: 0.5,
                color: { color: '#848484', opacity: 0.5 },
                smooth: { type: 'continuous' }
            },
            physics: { enabled: false },
            interaction: { hover: true, tooltipDelay: 200 }
        };
        const network = new vis.Network(container, data, options);

        network.on('click', function(params) {
            if (params.nodes.length === 0) {
                return;
            }
            const nodeId = params.nodes[0];
            const highlight = [nodeId, ...network.getConnectedNodes(nodeId)];
            const allNodes = data.nodes.get({ returnType: 'Array' });
            allNodes.forEach(node => {
                if (highlight.includes(node.id)) {
                    node.borderWidth = 4;
                } else {
                    node.borderWidth = 2;
                    node.opacity = 0.3;
                }
            });
            data.nodes.update(allNodes);
        });

        network.on('deselectNode', function() {
            const allNodes = data.nodes.get({ returnType: 'Array' });
            allNodes.forEach(node => {
                node.borderWidth = 2;
                delete node.opacity;
            });
            data.nodes.update(allNodes);
        });
    </script>
</body>
</html>
`))
