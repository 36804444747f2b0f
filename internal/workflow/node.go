package workflow

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultNodeName stands in for nodes that carry no name.
const DefaultNodeName = "HTTP Request"

// Node is a single workflow node as raw JSON. Paths passed to Get, Set and
// SetRaw use gjson/sjson dot syntax relative to the node object.
type Node struct {
	raw []byte
}

// NewNode copies raw into a new Node.
func NewNode(raw []byte) *Node {
	return &Node{raw: append([]byte(nil), raw...)}
}

// Raw returns the node's current JSON.
func (n *Node) Raw() []byte { return n.raw }

func (n *Node) Get(path string) gjson.Result {
	return gjson.GetBytes(n.raw, path)
}

// Set writes value at path, creating intermediate objects as needed.
func (n *Node) Set(path string, value any) error {
	raw, err := sjson.SetBytes(n.raw, path, value)
	if err != nil {
		return err
	}
	n.raw = raw
	return nil
}

// SetRaw writes already encoded JSON at path.
func (n *Node) SetRaw(path string, value []byte) error {
	raw, err := sjson.SetRawBytes(n.raw, path, value)
	if err != nil {
		return err
	}
	n.raw = raw
	return nil
}

// Type returns the node's type tag, or "" when absent.
func (n *Node) Type() string {
	return n.Get("type").String()
}

// IsHTTPRequest reports whether the node performs an outbound HTTP request.
func (n *Node) IsHTTPRequest() bool {
	return n.Type() == HTTPRequestType
}

// Name returns the display name, falling back to DefaultNodeName.
func (n *Node) Name() string {
	r := n.Get("name")
	if !r.Exists() || r.Type == gjson.Null {
		return DefaultNodeName
	}
	return r.String()
}

// URL returns parameters.url when it is a string, otherwise "".
func (n *Node) URL() string {
	r := n.Get("parameters.url")
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}
