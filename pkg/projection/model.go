package projection

import (
	"encoding/json"
	"strconv"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// ModelClass is the "class" discriminator of a serialized graph.
const ModelClass = "GraphLinksModel"

// NodeData is one class as it appears in the serialized graph.
type NodeData struct {
	Key        uml.Identity    `json:"key"`
	ClassName  string          `json:"className"`
	Attributes []uml.Attribute `json:"attributes"`
	Methods    []uml.Method    `json:"methods"`
	Loc        string          `json:"loc"`
}

// GraphLinksModel is the whole-graph snapshot emitted after each transaction.
type GraphLinksModel struct {
	Class         string           `json:"class"`
	NodeDataArray []NodeData       `json:"nodeDataArray"`
	LinkDataArray []uml.LinkRecord `json:"linkDataArray"`
}

// FormatLoc renders a position as the renderer's "x y" location string.
func FormatLoc(p Position) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + " " + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

func marshalModel(nodes []uml.ClassRecord, locs map[uml.Identity]Position, links []uml.LinkRecord) (json.RawMessage, error) {
	m := GraphLinksModel{
		Class:         ModelClass,
		NodeDataArray: make([]NodeData, len(nodes)),
		LinkDataArray: append([]uml.LinkRecord{}, links...),
	}
	for i, n := range nodes {
		m.NodeDataArray[i] = NodeData{
			Key:        n.ID,
			ClassName:  n.Name,
			Attributes: n.Attributes,
			Methods:    n.Methods,
			Loc:        FormatLoc(locs[n.ID]),
		}
	}
	return json.Marshal(m)
}
