package scenes

import (
	"testing"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/simulation"
)

func TestRegisterForm_Typing(t *testing.T) {
	f := newRegisterForm(game.FormDraft{})
	f.Type([]rune("Ann\x08"))
	f.Backspace()
	if f.fields[0] != "An" {
		t.Errorf("Expected 'An', got %q", f.fields[0])
	}

	f.NextField()
	f.Type([]rune("a@b.c"))
	if f.fields[1] != "a@b.c" {
		t.Errorf("Expected email in the second field, got %q", f.fields[1])
	}

	for i := 0; i < formFieldCount; i++ {
		f.NextField()
	}
	if f.focus != 1 {
		t.Errorf("Focus should wrap around, got %d", f.focus)
	}
}

func TestRegisterForm_MaxLength(t *testing.T) {
	f := newRegisterForm(game.FormDraft{})
	long := make([]rune, formMaxRunes+10)
	for i := range long {
		long[i] = 'x'
	}
	f.Type(long)
	if n := len([]rune(f.fields[0])); n != formMaxRunes {
		t.Errorf("Expected %d runes, got %d", formMaxRunes, n)
	}
}

func TestRegisterForm_Valid(t *testing.T) {
	tests := []struct {
		name, email string
		valid       bool
	}{
		{"Ada", "ada@example.org", true},
		{"", "ada@example.org", false},
		{"Ada", "ada.example.org", false},
		{"Ada", "@example.org", false},
		{"Ada", "ada@", false},
		{"  ", "ada@example.org", false},
	}
	for _, tt := range tests {
		f := newRegisterForm(game.FormDraft{Name: tt.name, Email: tt.email})
		if got := f.Valid(); got != tt.valid {
			t.Errorf("Valid(%q, %q) = %v, expected %v", tt.name, tt.email, got, tt.valid)
		}
	}
}

func TestPanel_InfoClosesOnAnyDismissKey(t *testing.T) {
	for name, in := range map[string]panelInput{
		"esc":   {Close: true},
		"enter": {Confirm: true},
		"e":     {Interact: true},
	} {
		p := NewPanel(nil)
		p.Open(config.CategoryFAQ, simulation.WaypointView{ID: "faq", Title: "Questions"})
		if got := p.Handle(in); got != panelClose {
			t.Errorf("%s: expected panelClose, got %v", name, got)
		}
		if p.IsOpen() {
			t.Errorf("%s: panel should be closed", name)
		}
	}
}

func TestPanel_InfoIgnoresTyping(t *testing.T) {
	p := NewPanel(nil)
	p.Open(config.CategoryContact, simulation.WaypointView{ID: "contact"})
	if got := p.Handle(panelInput{Chars: []rune("abc")}); got != panelNone {
		t.Errorf("Typing should not close an info panel, got %v", got)
	}
	if !p.IsOpen() {
		t.Error("Panel should stay open")
	}
}

func TestPanel_RegisterEIsACharacter(t *testing.T) {
	p := NewPanel(game.NewProgressStore(nil))
	p.Open(config.CategoryRegister, simulation.WaypointView{ID: "register"})

	if got := p.Handle(panelInput{Interact: true, Chars: []rune("e")}); got != panelNone {
		t.Errorf("E should type into the form, got %v", got)
	}
	if p.form.fields[0] != "e" {
		t.Errorf("Expected 'e' in the name field, got %q", p.form.fields[0])
	}
}

func TestPanel_InvalidSubmitShowsMessage(t *testing.T) {
	p := NewPanel(game.NewProgressStore(nil))
	p.Open(config.CategoryRegister, simulation.WaypointView{ID: "register"})

	if got := p.Handle(panelInput{Confirm: true}); got != panelNone {
		t.Errorf("Expected panelNone, got %v", got)
	}
	if p.message == "" {
		t.Error("Expected a validation message")
	}
}

func TestPanel_LinesWrapBody(t *testing.T) {
	p := NewPanel(nil)
	p.Open(config.CategoryOverview, simulation.WaypointView{
		Body: []string{"A week of hands-on science for curious students."},
	})
	lines := p.lines(120)
	// 正文换行后至少两行，再加空行和关闭提示
	if len(lines) < 4 {
		t.Errorf("Expected wrapped body plus hint, got %q", lines)
	}
	if lines[len(lines)-1] != "[E] close" {
		t.Errorf("Expected close hint last, got %q", lines[len(lines)-1])
	}
}

func TestPanel_RectFitsSmallScreens(t *testing.T) {
	p := NewPanel(nil)
	r := p.rect(400, 700)
	if r[0] < 0 || r[0]+r[2] > 400 {
		t.Errorf("Panel should fit a narrow screen, got %v", r)
	}
	r = p.rect(1600, 900)
	if r[2] != panelMaxWidth {
		t.Errorf("Panel width should be capped, got %.0f", r[2])
	}
}
