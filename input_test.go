package adventure

import "testing"

func TestDefaultKeyBindingsCoverEveryAction(t *testing.T) {
	b := DefaultKeyBindings()
	for a := Action(0); a < actionCount; a++ {
		if len(b[a]) == 0 {
			t.Errorf("action %v has no key", a)
		}
	}
}

func TestDefaultKeyBindingsNoSharedKeys(t *testing.T) {
	seen := map[string]Action{}
	for a, keys := range DefaultKeyBindings() {
		for _, k := range keys {
			if prev, ok := seen[k.String()]; ok {
				t.Errorf("key %v bound to both %v and %v", k, prev, a)
			}
			seen[k.String()] = a
		}
	}
}

func TestNewEbitenInputDefaults(t *testing.T) {
	in := NewEbitenInput(nil)
	if len(in.Bindings) != int(actionCount) {
		t.Errorf("bindings = %d actions, want %d", len(in.Bindings), actionCount)
	}
	if len(in.Clicks()) != 0 {
		t.Errorf("Clicks = %v before any Poll", in.Clicks())
	}
}

func TestParseAction(t *testing.T) {
	for a := Action(0); a < actionCount; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("jump"); ok {
		t.Error("ParseAction(jump) succeeded")
	}
}
