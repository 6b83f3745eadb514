package schema

import (
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// ErrUnresolvedRef means a pointer names a schema the document lacks
	ErrUnresolvedRef = errors.New("unresolved schema reference")
	// ErrTooDeep stops drill-down through reference cycles
	ErrTooDeep = errors.New("schema reference depth exceeded")
)

// MaxDepth bounds the drill history
const MaxDepth = 64

// Node is a resolved schema and its rendered lines
type Node struct {
	Name  string
	Lines []Line
}

// Navigator renders a root schema and drills into $ref lines on demand.
// names and offsets grow and shrink together; both empty means "at root".
type Navigator struct {
	schemas openapi3.Schemas
	nodes   map[string]*Node

	root    *Node
	current *Node
	names   []string
	offsets []int
	cursor  int
}

// New creates a navigator over the document's component schemas
func New(schemas openapi3.Schemas) *Navigator {
	return &Navigator{
		schemas: schemas,
		nodes:   make(map[string]*Node),
		root:    &Node{},
		current: &Node{},
	}
}

// Set renders root and resets history. A root whose first line is a
// pointer is followed immediately; a failed follow leaves the root shown
// and returns the error.
func (n *Navigator) Set(root any) error {
	lines, err := Render(root)
	if err != nil {
		return err
	}
	n.root = &Node{Lines: lines}
	n.current = n.root
	n.names = n.names[:0]
	n.offsets = n.offsets[:0]
	n.cursor = 0

	return n.drillRoot()
}

// drillRoot follows the root's first line when it is a pointer
func (n *Navigator) drillRoot() error {
	if len(n.root.Lines) == 0 || n.root.Lines[0].Ref == "" {
		return nil
	}
	_, err := n.Go()
	return err
}

// Resolve follows one level of a component pointer. Inline schemas are
// returned as is.
func (n *Navigator) Resolve(ref *openapi3.SchemaRef) (*openapi3.SchemaRef, error) {
	if ref == nil {
		return nil, ErrUnresolvedRef
	}
	if ref.Ref == "" {
		return ref, nil
	}
	name, ok := RefName(ref.Ref)
	if !ok {
		if ref.Value != nil {
			return &openapi3.SchemaRef{Value: ref.Value}, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedRef, ref.Ref)
	}
	target, ok := n.schemas[name]
	if !ok || target == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedRef, name)
	}
	return target, nil
}

// node returns the cached render of a component, rendering it once
func (n *Navigator) node(name string) (*Node, error) {
	if node, ok := n.nodes[name]; ok {
		return node, nil
	}
	target, err := n.Resolve(&openapi3.SchemaRef{Ref: RefPrefix + name})
	if err != nil {
		return nil, err
	}

	var value any = target
	if target.Value != nil {
		value = target.Value
	}
	lines, err := Render(value)
	if err != nil {
		return nil, err
	}
	node := &Node{Name: name, Lines: lines}
	n.nodes[name] = node
	return node, nil
}

// Go drills into the schema referenced by the cursor line. It reports
// whether the view changed; lines that are not pointers are a no-op.
func (n *Navigator) Go() (bool, error) {
	if n.cursor < 0 || n.cursor >= len(n.current.Lines) {
		return false, nil
	}
	name := n.current.Lines[n.cursor].Ref
	if name == "" {
		return false, nil
	}
	if len(n.names) >= MaxDepth {
		return false, ErrTooDeep
	}

	node, err := n.node(name)
	if err != nil {
		return false, err
	}
	n.names = append(n.names, name)
	n.offsets = append(n.offsets, n.cursor)
	n.current = node
	n.cursor = 0
	return true, nil
}

// Back returns to the previous view, restoring its cursor. At the root it
// starts over as Set does, following a leading pointer again.
func (n *Navigator) Back() error {
	if len(n.offsets) == 0 {
		n.current = n.root
		n.cursor = 0
		return n.drillRoot()
	}

	last := len(n.offsets) - 1
	n.cursor = n.offsets[last]
	n.offsets = n.offsets[:last]
	n.names = n.names[:last]

	if len(n.names) == 0 {
		n.current = n.root
		return nil
	}
	// cached: it was rendered on the way in
	node, err := n.node(n.names[len(n.names)-1])
	if err != nil {
		n.current = n.root
		return err
	}
	n.current = node
	return nil
}

// Up moves the cursor one line up
func (n *Navigator) Up() {
	if n.cursor > 0 {
		n.cursor--
	}
}

// Down moves the cursor one line down
func (n *Navigator) Down() {
	if n.cursor < len(n.current.Lines)-1 {
		n.cursor++
	}
}

// Top jumps to the first line
func (n *Navigator) Top() { n.cursor = 0 }

// Bottom jumps to the last line
func (n *Navigator) Bottom() {
	if len(n.current.Lines) > 0 {
		n.cursor = len(n.current.Lines) - 1
	}
}

// SetCursor moves the cursor, clamped to the current lines
func (n *Navigator) SetCursor(i int) {
	if i < 0 {
		i = 0
	}
	if last := len(n.current.Lines) - 1; i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	n.cursor = i
}

func (n *Navigator) Cursor() int   { return n.cursor }
func (n *Navigator) Lines() []Line { return n.current.Lines }
func (n *Navigator) AtRoot() bool  { return len(n.names) == 0 }
func (n *Navigator) Depth() int    { return len(n.names) }

// Name is the component shown, empty at the root
func (n *Navigator) Name() string {
	if len(n.names) == 0 {
		return ""
	}
	return n.names[len(n.names)-1]
}

// History returns a copy of the drilled names, oldest first
func (n *Navigator) History() []string {
	return append([]string(nil), n.names...)
}

// Offsets returns a copy of the saved cursors, oldest first
func (n *Navigator) Offsets() []int {
	return append([]int(nil), n.offsets...)
}
