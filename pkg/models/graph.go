package models

// Graph node types
const (
	NodeTypeDevice   = "device"
	NodeTypeNeighbor = "neighbor"
)

// Graph is the topology view consumed by the visualization client.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphNode is either an inventory device (positive id) or a neighbor
// pseudo-node keyed by the negated link id.
type GraphNode struct {
	ID        int64   `json:"id"`
	Label     string  `json:"label"`
	Type      string  `json:"type"`
	Status    *string `json:"status"`
	IPAddress *string `json:"ipAddress"`
}

// GraphEdge mirrors one topology link.
type GraphEdge struct {
	ID              int64  `json:"id"`
	Source          int64  `json:"source"`
	Target          int64  `json:"target"`
	SourceInterface string `json:"sourceInterface"`
	TargetInterface string `json:"targetInterface"`
}
