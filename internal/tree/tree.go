// Package tree applies nested update specifications to YAML documents.
//
// A document is walked as a generic tree of mapping, sequence and scalar
// nodes. Every location is addressed by a path of segments, each either a
// mapping key or a sequence index. Updates only ever overwrite values that
// already exist; a path missing from the document is an error.
package tree

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound     = errors.New("path not found")
	ErrNotContainer = errors.New("value is not a mapping or sequence")
)

type Segment struct {
	key     string
	index   int
	isIndex bool
}

func Key(k string) Segment {
	return Segment{key: k}
}

func Index(i int) Segment {
	return Segment{index: i, isIndex: true}
}

// ParseSegment turns an all-digit string into an index segment and anything
// else into a key segment.
func ParseSegment(s string) Segment {
	if s != "" && strings.Trim(s, "0123456789") == "" {
		if i, err := strconv.Atoi(s); err == nil {
			return Index(i)
		}
	}
	return Key(s)
}

func (s Segment) IsIndex() bool {
	return s.isIndex
}

func (s Segment) String() string {
	if s.isIndex {
		return fmt.Sprintf("[%v]", s.index)
	}
	return s.key
}

type Path []Segment

func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 && !s.isIndex {
			b.WriteString(".")
		}
		b.WriteString(s.String())
	}
	return b.String()
}

type Entry struct {
	Segment  Segment
	Value    any
	Children Spec
	nested   bool
}

func (e Entry) IsNested() bool {
	return e.nested
}

// Spec is an ordered update specification. Entries are applied in order.
type Spec []Entry

// Set overwrites the value found at seg.
func Set(seg Segment, value any) Entry {
	return Entry{Segment: seg, Value: value}
}

// Within descends into seg and applies children there.
func Within(seg Segment, children ...Entry) Entry {
	return Entry{Segment: seg, Children: children, nested: true}
}

type Leaf struct {
	Path  Path
	Value any
}

// Leaves lists every scalar replacement in the spec with its full path.
func (s Spec) Leaves() []Leaf {
	var result []Leaf
	var walk func(prefix Path, spec Spec)
	walk = func(prefix Path, spec Spec) {
		for _, e := range spec {
			p := append(slices.Clone(prefix), e.Segment)
			if e.nested {
				walk(p, e.Children)
				continue
			}
			result = append(result, Leaf{Path: p, Value: e.Value})
		}
	}
	walk(nil, s)
	return result
}

// FromMap converts a nested configuration map into a Spec. Keys are visited
// in sorted order and parsed with ParseSegment.
func FromMap(m map[string]any) Spec {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	spec := make(Spec, 0, len(keys))
	for _, k := range keys {
		seg := ParseSegment(k)
		if nested, ok := m[k].(map[string]any); ok {
			spec = append(spec, Within(seg, FromMap(nested)...))
			continue
		}
		spec = append(spec, Set(seg, m[k]))
	}
	return spec
}

// Apply walks spec over doc and overwrites the addressed values in place.
func Apply(doc *yaml.Node, spec Spec) error {
	if len(spec) == 0 {
		return nil
	}
	root, err := documentRoot(doc)
	if err != nil {
		return err
	}
	return apply(root, spec, nil)
}

func apply(node *yaml.Node, spec Spec, prefix Path) error {
	for _, e := range spec {
		path := append(slices.Clone(prefix), e.Segment)
		slot, err := locate(node, e.Segment, path)
		if err != nil {
			return err
		}
		if e.nested {
			if err := apply(deref(node.Content[slot]), e.Children, path); err != nil {
				return err
			}
			continue
		}
		replacement, err := valueNode(e.Value)
		if err != nil {
			return fmt.Errorf("can't encode value for %v: %w", path, err)
		}
		old := node.Content[slot]
		replacement.HeadComment = old.HeadComment
		replacement.LineComment = old.LineComment
		replacement.FootComment = old.FootComment
		node.Content[slot] = replacement
	}
	return nil
}

// Lookup returns the node found at path.
func Lookup(doc *yaml.Node, path Path) (*yaml.Node, error) {
	node, err := documentRoot(doc)
	if err != nil {
		return nil, err
	}
	for i, seg := range path {
		slot, err := locate(node, seg, path[:i+1])
		if err != nil {
			return nil, err
		}
		node = deref(node.Content[slot])
	}
	return node, nil
}

func documentRoot(doc *yaml.Node) (*yaml.Node, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrNotFound)
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrNotFound)
		}
		return deref(doc.Content[0]), nil
	}
	return deref(doc), nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// locate returns the position in node.Content of the value addressed by seg.
func locate(node *yaml.Node, seg Segment, path Path) (int, error) {
	switch node.Kind {
	case yaml.MappingNode:
		if seg.isIndex {
			return 0, fmt.Errorf("%w: %v: mapping addressed by index", ErrNotFound, path)
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == seg.key {
				return i + 1, nil
			}
		}
		return 0, fmt.Errorf("%w: %v", ErrNotFound, path)
	case yaml.SequenceNode:
		if !seg.isIndex {
			return 0, fmt.Errorf("%w: %v: sequence addressed by key", ErrNotFound, path)
		}
		if seg.index < 0 || seg.index >= len(node.Content) {
			return 0, fmt.Errorf("%w: %v: index out of range (len %v)", ErrNotFound, path, len(node.Content))
		}
		return seg.index, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrNotContainer, path)
	}
}

func valueNode(v any) (*yaml.Node, error) {
	if n, ok := v.(*yaml.Node); ok {
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
