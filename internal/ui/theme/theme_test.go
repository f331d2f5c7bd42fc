package theme

import "testing"

func TestToggle(t *testing.T) {
	t.Cleanup(func() { SetDark(true) })

	if !IsDark() {
		t.Fatal("expected dark palette by default")
	}
	if Toggle() {
		t.Error("Toggle() should switch to light")
	}
	if Text != Light.Text || BgCard != Light.BgCard {
		t.Error("light palette not applied")
	}
	if !Toggle() || Text != Dark.Text {
		t.Error("Toggle() should switch back to dark")
	}
}
