package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal  Context = "global"  // Available everywhere
	ContextHome    Context = "home"    // Operation browser
	ContextCall    Context = "call"    // An open call (session page)
	ContextHistory Context = "history" // Suspended-call picker popup
	ContextFooter  Context = "footer"  // Filter / command line
	ContextEditor  Context = "editor"  // Parameter and body editing
)

// Contexts lists every context in config order
var Contexts = []Context{ContextGlobal, ContextHome, ContextCall, ContextHistory, ContextFooter, ContextEditor}

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)
	ActionSuspend   Action = "suspend"    // Suspend to the shell (ctrl+z)

	// Navigation actions
	ActionNavigateUp   Action = "navigate_up"   // Move up one item
	ActionNavigateDown Action = "navigate_down" // Move down one item
	ActionGoToTop      Action = "go_to_top"     // Go to top
	ActionGoToBottom   Action = "go_to_bottom"  // Go to bottom
	ActionFocusNext    Action = "focus_next"    // Focus the next pane
	ActionFocusPrev    Action = "focus_prev"    // Focus the previous pane
	ActionTabNext      Action = "tab_next"      // Next tab in the focused pane
	ActionTabPrev      Action = "tab_prev"      // Previous tab in the focused pane
	ActionTab1         Action = "tab_1"
	ActionTab2         Action = "tab_2"
	ActionTab3         Action = "tab_3"
	ActionTab4         Action = "tab_4"
	ActionTab5         Action = "tab_5"
	ActionTab6         Action = "tab_6"
	ActionTab7         Action = "tab_7"
	ActionTab8         Action = "tab_8"
	ActionTab9         Action = "tab_9"

	// Schema definitions
	ActionGo   Action = "go"   // Follow the $ref under the cursor
	ActionBack Action = "back" // Return from a followed $ref

	// Panes
	ActionSubmit           Action = "submit"            // Activate the focused item
	ActionToggleFullscreen Action = "toggle_fullscreen" // Fullscreen the focused pane

	// Footer launchers
	ActionOpenFilter  Action = "open_filter"  // Filter operations by path
	ActionOpenCommand Action = "open_command" // Command line
	ActionOpenHistory Action = "open_history" // Suspended calls

	// Calls
	ActionHangUp        Action = "hang_up"         // Close the call, keep it in history
	ActionHangUpDiscard Action = "hang_up_discard" // Close the call and forget it
	ActionDial          Action = "dial"            // Send the request
	ActionCopyBody      Action = "copy_body"       // Copy the response body

	// Text input actions
	ActionTextSubmit  Action = "text_submit"  // Submit text input
	ActionTextCancel  Action = "text_cancel"  // Cancel text input
	ActionHistoryPrev Action = "history_prev" // Previous footer entry
	ActionHistoryNext Action = "history_next" // Next footer entry

	// Modal actions
	ActionCloseModal Action = "close_modal" // Close current modal

	// Other actions
	ActionNoOp Action = "noop" // No operation (ignore key)
)

// TabActions maps tab_1..tab_9 to their zero-based index
var TabActions = map[Action]int{
	ActionTab1: 0, ActionTab2: 1, ActionTab3: 2, ActionTab4: 3, ActionTab5: 4,
	ActionTab6: 5, ActionTab7: 6, ActionTab8: 7, ActionTab9: 8,
}

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:             {ActionQuit, "Quit application", "Global"},
	ActionQuitForce:        {ActionQuitForce, "Force quit", "Global"},
	ActionSuspend:          {ActionSuspend, "Suspend to shell", "Global"},
	ActionNavigateUp:       {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:     {ActionNavigateDown, "Move down", "Navigation"},
	ActionGoToTop:          {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:       {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionFocusNext:        {ActionFocusNext, "Focus next pane", "Navigation"},
	ActionFocusPrev:        {ActionFocusPrev, "Focus previous pane", "Navigation"},
	ActionTabNext:          {ActionTabNext, "Next tab", "Navigation"},
	ActionTabPrev:          {ActionTabPrev, "Previous tab", "Navigation"},
	ActionTab1:             {ActionTab1, "Select tab 1", "Navigation"},
	ActionTab2:             {ActionTab2, "Select tab 2", "Navigation"},
	ActionTab3:             {ActionTab3, "Select tab 3", "Navigation"},
	ActionTab4:             {ActionTab4, "Select tab 4", "Navigation"},
	ActionTab5:             {ActionTab5, "Select tab 5", "Navigation"},
	ActionTab6:             {ActionTab6, "Select tab 6", "Navigation"},
	ActionTab7:             {ActionTab7, "Select tab 7", "Navigation"},
	ActionTab8:             {ActionTab8, "Select tab 8", "Navigation"},
	ActionTab9:             {ActionTab9, "Select tab 9", "Navigation"},
	ActionGo:               {ActionGo, "Go to definition", "Schema"},
	ActionBack:             {ActionBack, "Back from definition", "Schema"},
	ActionSubmit:           {ActionSubmit, "Activate", "Panes"},
	ActionToggleFullscreen: {ActionToggleFullscreen, "Toggle fullscreen", "View"},
	ActionOpenFilter:       {ActionOpenFilter, "Filter operations", "Footer"},
	ActionOpenCommand:      {ActionOpenCommand, "Command line", "Footer"},
	ActionOpenHistory:      {ActionOpenHistory, "Suspended calls", "Footer"},
	ActionHangUp:           {ActionHangUp, "Hang up (keep)", "Call"},
	ActionHangUpDiscard:    {ActionHangUpDiscard, "Hang up (discard)", "Call"},
	ActionDial:             {ActionDial, "Send request", "Call"},
	ActionCopyBody:         {ActionCopyBody, "Copy response body", "Call"},
	ActionTextSubmit:       {ActionTextSubmit, "Submit input", "Text"},
	ActionTextCancel:       {ActionTextCancel, "Cancel input", "Text"},
	ActionHistoryPrev:      {ActionHistoryPrev, "Previous entry", "Text"},
	ActionHistoryNext:      {ActionHistoryNext, "Next entry", "Text"},
	ActionCloseModal:       {ActionCloseModal, "Close popup", "Modal"},
	ActionNoOp:             {ActionNoOp, "Ignore key", "Other"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is defined
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	switch action {
	case ActionQuitForce, ActionSuspend:
		return true
	}
	return false
}
