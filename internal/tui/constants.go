package tui

import "time"

// UI Layout Constants

const (
	// MaxDrain bounds the actions processed for one event
	MaxDrain = 1024

	// FooterHistoryCapacity is the ring size per footer label
	FooterHistoryCapacity = 32

	// StatusTimeout is how long a timed status line stays up
	StatusTimeout = 3 * time.Second

	// FilterTimeout bounds a $(shell) response filter
	FilterTimeout = 5 * time.Second

	// Layout
	HeaderLines        = 1 // [ title · version ]
	FooterLines        = 1 // status line or footer input
	MinimalBorderWidth = 2 // Width consumed by rounded borders
	PaneTitleLines     = 2 // Title + tab line
	AddressPaneHeight  = 3
	TagsPaneHeight     = 8
	SidebarWidthRatio  = 0.4
	SidebarMinWidth    = 30
	PopupWidthMargin   = 10
	PopupHeightMargin  = 6
)

// Footer labels
const (
	labelFilter  = "filter"
	labelCommand = "command"
)

// responseHint is shown when the home response pane gains focus
const responseHint = "[1-9 → select tab] [g,b → go/back definitions]"

// requestTabs are the home request pane tabs
var requestTabs = []string{"Body", "Query", "Header", "Path", "Cookie"}

// paramTabs are the call parameter pane tabs
var paramTabs = []string{"Path", "Query", "Header", "Cookie"}
