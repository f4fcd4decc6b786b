package topology

import (
	"fmt"

	"netinv/pkg/models"
)

// BuildGraph assembles the node/edge view of the inventory.
//
// Every device becomes a node. A link without a destination device gets a
// neighbor node keyed by the negated link id. Edges whose source is not a
// known node are skipped.
func BuildGraph(devices []*models.Device, links []*models.TopologyLink) models.Graph {
	graph := models.Graph{
		Nodes: make([]models.GraphNode, 0, len(devices)),
		Edges: make([]models.GraphEdge, 0, len(links)),
	}
	known := make(map[int64]struct{}, len(devices)+len(links))

	for _, device := range devices {
		status := device.Status
		ip := device.IPAddress
		graph.Nodes = append(graph.Nodes, models.GraphNode{
			ID:        device.ID,
			Label:     device.Hostname,
			Type:      models.NodeTypeDevice,
			Status:    &status,
			IPAddress: &ip,
		})
		known[device.ID] = struct{}{}
	}

	for _, link := range links {
		if link.DstDeviceID != nil {
			continue
		}
		pseudoID := -link.ID
		if _, seen := known[pseudoID]; seen {
			continue
		}
		label := link.DstHostname
		if label == "" {
			label = fmt.Sprintf("unknown-%d", link.ID)
		}
		graph.Nodes = append(graph.Nodes, models.GraphNode{
			ID:    pseudoID,
			Label: label,
			Type:  models.NodeTypeNeighbor,
		})
		known[pseudoID] = struct{}{}
	}

	for _, link := range links {
		if _, ok := known[link.SrcDeviceID]; !ok {
			continue
		}
		target := -link.ID
		if link.DstDeviceID != nil {
			target = *link.DstDeviceID
		}
		graph.Edges = append(graph.Edges, models.GraphEdge{
			ID:              link.ID,
			Source:          link.SrcDeviceID,
			Target:          target,
			SourceInterface: link.SrcInterface,
			TargetInterface: link.DstInterface,
		})
	}

	return graph
}
