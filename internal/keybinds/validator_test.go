package keybinds

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if !v.reservedKeys["ctrl+c"] {
		t.Error("Expected ctrl+c to be a reserved key")
	}

	for _, ctx := range Contexts {
		if ctx == ContextGlobal {
			continue
		}
		if parent := v.contextHierarchy[ctx]; parent != ContextGlobal {
			t.Errorf("parent of %s = %q, want %q", ctx, parent, ContextGlobal)
		}
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "invalid error",
			err: ValidationError{
				Type:    "invalid",
				Context: ContextHome,
				Key:     "x",
				Message: `unknown action "nope"`,
			},
			expected: `[invalid] x in context 'home': unknown action "nope"`,
		},
		{
			name: "warning",
			err: ValidationError{
				Type:    "warning",
				Context: ContextCall,
				Key:     "ctrl+z",
				Message: "shadows global binding",
			},
			expected: "[warning] ctrl+z in context 'call': shadows global binding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		contains []string
	}{
		{
			name:     "no issues",
			result:   &ValidationResult{},
			contains: []string{"No issues found"},
		},
		{
			name: "both errors and warnings",
			result: &ValidationResult{
				Errors:   []ValidationError{{Type: "invalid", Context: ContextHome, Key: "x", Message: "bad"}},
				Warnings: []ValidationError{{Type: "warning", Context: ContextCall, Key: "tab", Message: "shadows"}},
			},
			contains: []string{"Errors (1)", "Warnings (1)", "home", "call"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("String() output missing %q, got:\n%s", want, got)
				}
			}
			if got := tt.result.HasErrors(); got != (len(tt.result.Errors) > 0) {
				t.Errorf("HasErrors() = %v", got)
			}
		})
	}
}

func TestValidateRegistry(t *testing.T) {
	tests := []struct {
		name           string
		setupRegistry  func() *Registry
		expectErrors   int
		expectWarnings int
	}{
		{
			name:          "defaults are clean",
			setupRegistry: NewDefaultRegistry,
		},
		{
			name: "unknown action",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextHome, "x", Action("explode"))
				return r
			},
			expectErrors: 1,
		},
		{
			name: "unknown context",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(Context("sidebar"), "x", ActionQuit)
				return r
			},
			expectErrors: 1,
		},
		{
			name: "reserved key rebound",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextGlobal, "ctrl+c", ActionQuit)
				return r
			},
			expectWarnings: 1,
		},
		{
			name: "shadowed global key",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextGlobal, "ctrl+z", ActionSuspend)
				r.Register(ContextCall, "ctrl+z", ActionDial)
				return r
			},
			expectWarnings: 1,
		},
		{
			name: "chord prefix bound alone",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextHome, "g", ActionGo)
				r.Register(ContextHome, "g g", ActionGoToTop)
				return r
			},
			expectWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateRegistry(tt.setupRegistry())
			if len(result.Errors) != tt.expectErrors {
				t.Errorf("errors = %d, want %d\n%s", len(result.Errors), tt.expectErrors, result)
			}
			if len(result.Warnings) != tt.expectWarnings {
				t.Errorf("warnings = %d, want %d\n%s", len(result.Warnings), tt.expectWarnings, result)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	v := NewValidator()

	ok := v.ValidateConfig(&Config{Home: map[string]string{"quit": "Q"}})
	if ok.HasErrors() {
		t.Errorf("ValidateConfig() errors = %s", ok)
	}

	bad := v.ValidateConfig(&Config{Call: map[string]string{"launch_rockets": "r"}})
	if !bad.HasErrors() {
		t.Error("ValidateConfig() accepted an unknown action")
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"empty key", "", true},
		{"simple key", "q", false},
		{"named key", "esc", false},
		{"ctrl modifier", "ctrl+c", false},
		{"shift modifier", "shift+tab", false},
		{"modifier only", "ctrl+", true},
		{"chord", "g g", false},
		{"chord with bare modifier", "g alt+", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAction(t *testing.T) {
	tests := []struct {
		name      string
		actionStr string
		wantErr   bool
	}{
		{"empty action", "", true},
		{"valid action", "quit", false},
		{"tab action", "tab_9", false},
		{"unknown action", "custom_action", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAction(tt.actionStr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAction() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
