package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Node types understood by the builder canvas.
const (
	NodeStart       = "start"
	NodeMessage     = "message"
	NodeMultiChoice = "multichoice"
	NodeButton      = "button"
	NodeTextInput   = "textinput"
	NodeRating      = "rating"
	NodeEnd         = "end"
)

var ErrDuplicateNodeID = errors.New("duplicate node id in configuration")

// RoutingKeywords is the closed vocabulary the AI adapter may emit to point
// the widget at the next conversation node. The start node is never a
// routing target.
func RoutingKeywords() []string {
	return []string{NodeMessage, NodeMultiChoice, NodeButton, NodeTextInput, NodeRating, NodeEnd}
}

// NodeOption is a selectable choice on multichoice/button nodes. Its value
// doubles as the output-port identifier connections attach to.
type NodeOption struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	NextNodeID string `json:"nextNodeId,omitempty"`
}

// NodeData is the editable payload of a node.
type NodeData struct {
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Options []NodeOption `json:"options,omitempty"`
	UseAI   bool         `json:"useAI,omitempty"`
}

// Node is a unit of conversation flow. X/Y are editor layout only and have
// no behavioural meaning on the backend.
type Node struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Data    NodeData `json:"data"`
	Outputs []string `json:"outputs"`
}

// Connection is a directed edge from a node's output port to a downstream
// node. The stored graph may contain unreachable or cyclic regions; the
// backend persists it as-is.
type Connection struct {
	ID           string `json:"id"`
	SourceID     string `json:"sourceId"`
	SourceOutput string `json:"sourceOutput"`
	TargetID     string `json:"targetId"`
}

// Configuration is the conversation-flow document stored on a chatbot
// record. It is replaced wholesale on every save. Top-level keys the
// backend does not model (editor-only metadata beyond mountId) are kept
// verbatim in Extra so the document round-trips untouched.
type Configuration struct {
	WelcomeMessage  string
	FallbackMessage string
	Nodes           []Node
	Connections     []Connection
	MountID         string
	Extra           map[string]json.RawMessage
}

// DefaultConfiguration returns the document a freshly created chatbot
// starts with: a single start node and no connections.
func DefaultConfiguration() Configuration {
	return Configuration{
		WelcomeMessage:  "Hello! How can I help you today?",
		FallbackMessage: "I'm sorry, I don't understand. Can you please rephrase?",
		Nodes: []Node{
			{
				ID:   "start-1",
				Type: NodeStart,
				X:    100,
				Y:    120,
				Data: NodeData{
					Title:   "Start",
					Content: "Start your chatbot flow here",
				},
				Outputs: []string{"output-1"},
			},
		},
		Connections: []Connection{},
	}
}

// ApplyDefaults fills missing messages and nil sequences so every stored
// document is complete. Nodes default to the single start node.
func (c *Configuration) ApplyDefaults() {
	def := DefaultConfiguration()
	if c.WelcomeMessage == "" {
		c.WelcomeMessage = def.WelcomeMessage
	}
	if c.FallbackMessage == "" {
		c.FallbackMessage = def.FallbackMessage
	}
	if len(c.Nodes) == 0 {
		c.Nodes = def.Nodes
	}
	if c.Connections == nil {
		c.Connections = []Connection{}
	}
}

// Validate enforces the one structural invariant of the document: node
// identifiers are unique. Graph shape is deliberately not validated.
func (c Configuration) Validate() error {
	seen := make(map[string]struct{}, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: empty id", ErrDuplicateNodeID)
		}
		if _, ok := seen[n.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

// MarshalJSON emits the nested document shape, re-attaching preserved
// unknown keys.
func (c Configuration) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, 5+len(c.Extra))
	for k, v := range c.Extra {
		doc[k] = v
	}
	doc["welcomeMessage"] = c.WelcomeMessage
	doc["fallbackMessage"] = c.FallbackMessage
	doc["nodes"] = c.Nodes
	doc["connections"] = c.Connections
	if c.MountID != "" {
		doc["mountId"] = c.MountID
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the nested document shape, routing unrecognized
// top-level keys into Extra.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Configuration{}
	for key, val := range raw {
		var err error
		switch key {
		case "welcomeMessage":
			err = json.Unmarshal(val, &c.WelcomeMessage)
		case "fallbackMessage":
			err = json.Unmarshal(val, &c.FallbackMessage)
		case "nodes":
			err = json.Unmarshal(val, &c.Nodes)
		case "connections":
			err = json.Unmarshal(val, &c.Connections)
		case "mountId":
			err = json.Unmarshal(val, &c.MountID)
		case "botName":
			// record metadata, never stored inside the document
		default:
			if c.Extra == nil {
				c.Extra = make(map[string]json.RawMessage)
			}
			c.Extra[key] = val
		}
		if err != nil {
			return fmt.Errorf("configuration field %q: %w", key, err)
		}
	}
	if c.Connections == nil {
		c.Connections = []Connection{}
	}
	return nil
}
