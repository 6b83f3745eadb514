package keybinds

import (
	"sort"
	"strings"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching
type Registry struct {
	// bindings maps context -> key -> action. Chords are space separated ("g g").
	bindings map[Context]map[string]Action

	// pending tracks chord prefixes typed since the last Flush
	pending map[Context][]string
}

// NewRegistry creates a new keybinding registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
		pending:  make(map[Context][]string),
	}
}

// Register adds a keybinding to the registry
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][normalize(key)] = action
}

// RegisterMultiple registers multiple keybindings for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes every key bound to action in context
func (r *Registry) Unbind(context Context, action Action) {
	for key, act := range r.bindings[context] {
		if act == action {
			delete(r.bindings[context], key)
		}
	}
}

// normalize collapses runs of spaces so "g  g" and "g g" are the same chord
func normalize(key string) string {
	if key == " " || key == "space" {
		return "space"
	}
	return strings.Join(strings.Fields(key), " ")
}

// Match attempts to match a key to an action in the given context
// Returns the action and whether a match was found
// Contexts are checked in priority order: specific context -> global
func (r *Registry) Match(context Context, key string) (Action, bool) {
	if contextBindings, ok := r.bindings[context]; ok {
		if action, ok := contextBindings[key]; ok {
			return action, true
		}
	}

	if globalBindings, ok := r.bindings[ContextGlobal]; ok {
		if action, ok := globalBindings[key]; ok {
			return action, true
		}
	}

	return "", false
}

// isPrefix reports whether seq starts a longer chord in context or global
func (r *Registry) isPrefix(context Context, seq string) bool {
	prefix := seq + " "
	for _, ctx := range []Context{context, ContextGlobal} {
		for key := range r.bindings[ctx] {
			if strings.HasPrefix(key, prefix) {
				return true
			}
		}
	}
	return false
}

// MatchMultiKey feeds one key into the chord state of context.
// Returns the action, whether it's a complete match, and whether it's a partial match.
// A partial match consumes the key; the chord stays pending until it completes,
// breaks or the next Flush.
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	key = normalize(key)
	prior := r.pending[context]
	seq := strings.Join(append(append([]string(nil), prior...), key), " ")

	if r.isPrefix(context, seq) {
		r.pending[context] = append(prior, key)
		return "", false, true
	}

	delete(r.pending, context)
	if action, ok := r.Match(context, seq); ok {
		return action, true, false
	}
	if len(prior) == 0 {
		return "", false, false
	}

	// The chord broke; the new key stands on its own
	return r.MatchMultiKey(context, key)
}

// Pending returns the chord typed so far in context
func (r *Registry) Pending(context Context) string {
	return strings.Join(r.pending[context], " ")
}

// Flush ends every pending chord. A pending prefix that is itself bound
// (such as "g" when both "g" and "g g" exist) fires for its context.
func (r *Registry) Flush(context Context) (Action, bool) {
	seq := r.Pending(context)
	r.ClearMultiKeyState()
	if seq == "" {
		return "", false
	}
	return r.Match(context, seq)
}

// ClearMultiKeyState clears pending chord state in every context
func (r *Registry) ClearMultiKeyState() {
	for ctx := range r.pending {
		delete(r.pending, ctx)
	}
}

// GetBinding returns the key(s) bound to an action in a context, sorted
func (r *Registry) GetBinding(context Context, action Action) []string {
	var keys []string

	if contextBindings, ok := r.bindings[context]; ok {
		for key, act := range contextBindings {
			if act == action {
				keys = append(keys, key)
			}
		}
	}

	if len(keys) == 0 {
		if globalBindings, ok := r.bindings[ContextGlobal]; ok {
			for key, act := range globalBindings {
				if act == action {
					keys = append(keys, key)
				}
			}
		}
	}

	sort.Strings(keys)
	return keys
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, ", ")
}

// ListBindings returns the bindings declared directly in a context, sorted by action then key
func (r *Registry) ListBindings(context Context) []Binding {
	var bindings []Binding
	for key, action := range r.bindings[context] {
		bindings = append(bindings, Binding{Key: key, Action: action, Context: context})
	}
	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Action != bindings[j].Action {
			return bindings[i].Action < bindings[j].Action
		}
		return bindings[i].Key < bindings[j].Key
	})
	return bindings
}

// HasBinding checks if a key is bound in a context
func (r *Registry) HasBinding(context Context, key string) bool {
	_, ok := r.Match(context, normalize(key))
	return ok
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	clone.Merge(r)
	return clone
}

// Merge combines bindings from another registry, with other taking precedence
func (r *Registry) Merge(other *Registry) {
	for context, contextBindings := range other.bindings {
		for key, action := range contextBindings {
			r.Register(context, key, action)
		}
	}
}
