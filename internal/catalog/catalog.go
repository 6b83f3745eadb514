package catalog

import (
	"strings"

	"github.com/studiowebux/openapi-tui/internal/document"
)

// Kind separates regular paths from webhook events
type Kind int

const (
	KindPath Kind = iota
	KindWebhook
)

func (k Kind) String() string {
	if k == KindWebhook {
		return "webhook"
	}
	return "path"
}

// Entry is one (path, method) operation, immutable after Load
type Entry struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Tags        []string
	Kind        Kind
}

// Key identifies the operation for sessions and responses. Operations
// without an id fall back to "METHOD path".
func (e Entry) Key() string {
	if e.OperationID != "" {
		return e.OperationID
	}
	return e.Method + " " + e.Path
}

// HasTag reports whether the entry carries tag
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Catalog is the filterable, taggable list of operations
type Catalog struct {
	entries []Entry
	tags    []string

	filter    string
	tag       string
	hasTag    bool
	visible   []int
	selection int
}

// Load flattens every path and webhook operation in document order
func Load(doc *document.Document) *Catalog {
	c := &Catalog{}

	add := func(items []document.PathItem) {
		for _, p := range items {
			for _, m := range p.Methods {
				op := p.Item.GetOperation(m)
				if op == nil {
					continue
				}
				kind := KindPath
				if !strings.HasPrefix(p.Path, "/") {
					kind = KindWebhook
				}
				c.entries = append(c.entries, Entry{
					Path:        p.Path,
					Method:      m,
					OperationID: op.OperationID,
					Summary:     op.Summary,
					Tags:        append([]string(nil), op.Tags...),
					Kind:        kind,
				})
			}
		}
	}
	add(doc.Paths)
	add(doc.Webhooks)

	c.tags = collectTags(doc.Tags(), c.entries)
	c.recompute()
	return c
}

// New builds a catalog from prepared entries
func New(entries []Entry, tags []string) *Catalog {
	c := &Catalog{entries: append([]Entry(nil), entries...)}
	c.tags = collectTags(tags, c.entries)
	c.recompute()
	return c
}

// collectTags keeps declared tags first, then tags only found on operations
func collectTags(declared []string, entries []Entry) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range declared {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	for _, e := range entries {
		for _, t := range e.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

func (c *Catalog) recompute() {
	c.visible = c.visible[:0]
	for i, e := range c.entries {
		if !strings.Contains(e.Path, c.filter) {
			continue
		}
		if c.hasTag && !e.HasTag(c.tag) {
			continue
		}
		c.visible = append(c.visible, i)
	}
	c.selection = 0
}

// SetFilter narrows the visible operations to paths containing text
func (c *Catalog) SetFilter(text string) {
	c.filter = text
	c.recompute()
}

// SetTag narrows by tag; the empty string means all tags
func (c *Catalog) SetTag(tag string) {
	c.tag = tag
	c.hasTag = tag != ""
	c.recompute()
}

// Filter returns the current filter text
func (c *Catalog) Filter() string { return c.filter }

// Tag returns the active tag, empty when none
func (c *Catalog) Tag() string { return c.tag }

// Tags returns every known tag in display order
func (c *Catalog) Tags() []string { return c.tags }

// Entries returns every operation in document order
func (c *Catalog) Entries() []Entry { return c.entries }

// Visible returns the operations passing the filter and tag
func (c *Catalog) Visible() []Entry {
	out := make([]Entry, len(c.visible))
	for i, idx := range c.visible {
		out[i] = c.entries[idx]
	}
	return out
}

// Len returns the number of visible operations
func (c *Catalog) Len() int { return len(c.visible) }

// Selection returns the index into Visible, or -1 when nothing is visible
func (c *Catalog) Selection() int {
	if len(c.visible) == 0 {
		return -1
	}
	return c.selection
}

// Select moves the selection to i when it is in range
func (c *Catalog) Select(i int) {
	if i >= 0 && i < len(c.visible) {
		c.selection = i
	}
}

// Active returns the selected operation
func (c *Catalog) Active() (Entry, bool) {
	if len(c.visible) == 0 {
		return Entry{}, false
	}
	return c.entries[c.visible[c.selection]], true
}

// Next advances the selection, wrapping at the end
func (c *Catalog) Next() {
	if n := len(c.visible); n > 0 {
		c.selection = (c.selection + 1) % n
	}
}

// Prev retreats the selection, wrapping at the start
func (c *Catalog) Prev() {
	if n := len(c.visible); n > 0 {
		c.selection = (c.selection - 1 + n) % n
	}
}

// Lookup finds an operation by key, ignoring the filter
func (c *Catalog) Lookup(key string) (Entry, bool) {
	for _, e := range c.entries {
		if e.Key() == key {
			return e, true
		}
	}
	return Entry{}, false
}
