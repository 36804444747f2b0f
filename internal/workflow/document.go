package workflow

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// HTTPRequestType is the type tag of n8n HTTP Request nodes.
const HTTPRequestType = "n8n-nodes-base.httpRequest"

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotObject   = errors.New("workflow document is not a JSON object")
	ErrNoNodes     = errors.New(`workflow document has no "nodes" array`)
)

// saveOptions reproduces a 2-space indented dump with every array element
// on its own line.
var saveOptions = &pretty.Options{Indent: "  "}

// Document is an n8n workflow file held as raw JSON so that edits keep the
// original key order and leave untouched content as it was.
type Document struct {
	Path string
	raw  []byte
}

// Load reads and validates the workflow at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workflow: %w", err)
	}
	return Parse(path, data)
}

// Parse validates data as a workflow document. path is only recorded.
func Parse(path string, data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse %s: %w", path, ErrInvalidJSON)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("parse %s: %w", path, ErrNotObject)
	}
	if !root.Get("nodes").IsArray() {
		return nil, fmt.Errorf("parse %s: %w", path, ErrNoNodes)
	}
	return &Document{Path: path, raw: append([]byte(nil), data...)}, nil
}

// Nodes returns a copy of every entry of the nodes array, in order.
// Edits to the returned nodes only reach the document through SetNode.
func (d *Document) Nodes() []*Node {
	entries := gjson.GetBytes(d.raw, "nodes").Array()
	nodes := make([]*Node, len(entries))
	for i, e := range entries {
		nodes[i] = NewNode([]byte(e.Raw))
	}
	return nodes
}

// SetNode replaces the i-th entry of the nodes array.
func (d *Document) SetNode(i int, n *Node) error {
	raw, err := sjson.SetRawBytes(d.raw, "nodes."+strconv.Itoa(i), n.Raw())
	if err != nil {
		return fmt.Errorf("set node %d: %w", i, err)
	}
	d.raw = raw
	return nil
}

// AppendNode adds raw as the last entry of the nodes array.
func (d *Document) AppendNode(raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("append node: %w", ErrInvalidJSON)
	}
	out, err := sjson.SetRawBytes(d.raw, "nodes.-1", raw)
	if err != nil {
		return fmt.Errorf("append node: %w", err)
	}
	d.raw = out
	return nil
}

// Bytes returns the document as it would be written by Save.
func (d *Document) Bytes() []byte {
	return pretty.PrettyOptions(d.raw, saveOptions)
}

// Save overwrites the file at d.Path. No backup is kept.
func (d *Document) Save() error {
	if err := os.WriteFile(d.Path, d.Bytes(), 0644); err != nil {
		return fmt.Errorf("write workflow: %w", err)
	}
	return nil
}
