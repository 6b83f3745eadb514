/*
Package keybinds provides customizable keyboard binding management.

# Overview

Keys map to actions within contexts. Every context falls back to the
global context, so a key bound there works everywhere unless a context
rebinds it.

Contexts:
  - global: ctrl+c force quit, ctrl+z suspend
  - home: the operation browser
  - call: an open call page
  - history: the suspended-call picker
  - footer: the filter and command line
  - editor: parameter and body editing

# Chords

Multi-key sequences are written space separated ("g g"). MatchMultiKey
holds a chord prefix until the sequence completes or breaks; Flush,
called on every tick, drops whatever is still pending. When a prefix is
itself bound ("g" next to "g g") it fires on Flush instead.

# Configuration File Format

Overrides live in ~/.openapi-tui/keybinds.jsonc. Each section maps an
action to a comma-separated key list; comments and trailing commas are
allowed:

	{
	  // vim users
	  "home": {
	    "focus_next": "l, tab",
	    "go": "g"
	  },
	  "call": {
	    "dial": "ctrl+d, ctrl+r",
	  }
	}

A configured action drops its default keys in that context.

# Validation

Unknown actions and contexts are errors. Shadowed global keys, rebound
reserved keys (ctrl+c) and chord prefixes that are bound on their own
are warnings.
*/
package keybinds
