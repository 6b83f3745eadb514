package keybinds

import "strconv"

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerPageBindings(r, ContextHome)
	registerPageBindings(r, ContextCall)
	registerHomeBindings(r)
	registerCallBindings(r)
	registerHistoryBindings(r)
	registerFooterBindings(r)
	registerEditorBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+z", ActionSuspend)
}

// registerPageBindings sets up the navigation shared by the home and call pages
func registerPageBindings(r *Registry, ctx Context) {
	r.Register(ctx, "q", ActionQuit)

	r.RegisterMultiple(ctx, []string{"l", "right", "tab"}, ActionFocusNext)
	r.RegisterMultiple(ctx, []string{"h", "left", "shift+tab"}, ActionFocusPrev)
	r.RegisterMultiple(ctx, []string{"k", "up"}, ActionNavigateUp)
	r.RegisterMultiple(ctx, []string{"j", "down"}, ActionNavigateDown)
	r.Register(ctx, "enter", ActionSubmit)
	r.Register(ctx, "f", ActionToggleFullscreen)

	for i := 1; i <= 9; i++ {
		r.Register(ctx, strconv.Itoa(i), Action("tab_"+strconv.Itoa(i)))
	}
	r.Register(ctx, "]", ActionTabNext)
	r.Register(ctx, "[", ActionTabPrev)

	r.Register(ctx, "/", ActionOpenFilter)
	r.Register(ctx, ":", ActionOpenCommand)
	r.Register(ctx, "H", ActionOpenHistory)
}

// registerHomeBindings sets up the operation browser
func registerHomeBindings(r *Registry) {
	r.Register(ContextHome, "g", ActionGo)
	r.RegisterMultiple(ContextHome, []string{"b", "backspace"}, ActionBack)
	r.Register(ContextHome, "home", ActionGoToTop)
	r.Register(ContextHome, "end", ActionGoToBottom)
}

// registerCallBindings sets up an open call
func registerCallBindings(r *Registry) {
	r.Register(ContextCall, "esc", ActionHangUp)
	r.Register(ContextCall, "ctrl+x", ActionHangUpDiscard)
	r.Register(ContextCall, "ctrl+d", ActionDial)
	r.Register(ContextCall, "y", ActionCopyBody)
	r.RegisterMultiple(ContextCall, []string{"g g", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextCall, []string{"G", "end"}, ActionGoToBottom)
}

// registerHistoryBindings sets up the suspended-call picker. Printable keys
// are left free for the fuzzy filter.
func registerHistoryBindings(r *Registry) {
	r.RegisterMultiple(ContextHistory, []string{"up", "ctrl+p"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "ctrl+n"}, ActionNavigateDown)
	r.Register(ContextHistory, "enter", ActionSubmit)
	r.Register(ContextHistory, "esc", ActionCloseModal)
}

// registerFooterBindings sets up the filter and command line
func registerFooterBindings(r *Registry) {
	r.Register(ContextFooter, "enter", ActionTextSubmit)
	r.Register(ContextFooter, "esc", ActionTextCancel)
	r.Register(ContextFooter, "up", ActionHistoryPrev)
	r.Register(ContextFooter, "down", ActionHistoryNext)
}

// registerEditorBindings sets up parameter and body editing
func registerEditorBindings(r *Registry) {
	r.Register(ContextEditor, "enter", ActionTextSubmit)
	r.Register(ContextEditor, "esc", ActionTextCancel)
}
