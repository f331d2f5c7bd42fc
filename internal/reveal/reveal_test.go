package reveal

import (
	"testing"
	"time"
	"unicode/utf8"
)

func TestPrefixes_CountAndOrder(t *testing.T) {
	for _, text := range []string{"", "a", "2+2?", "Qué es π?"} {
		var r Reveal
		r.Start(text)

		var got []string
		for p := range r.Prefixes() {
			got = append(got, p)
		}

		n := utf8.RuneCountInString(text)
		if len(got) != n+1 {
			t.Fatalf("%q: got %d prefixes, want %d", text, len(got), n+1)
		}
		if got[0] != "" || got[n] != text {
			t.Errorf("%q: first=%q last=%q", text, got[0], got[n])
		}
		for i := 1; i < len(got); i++ {
			if utf8.RuneCountInString(got[i]) != i {
				t.Errorf("%q: prefix %d = %q", text, i, got[i])
			}
			if !utf8.ValidString(got[i]) {
				t.Errorf("%q: prefix %d is not valid UTF-8", text, i)
			}
		}
	}
}

func TestPrefixes_Restartable(t *testing.T) {
	var r Reveal
	r.Start("abc")

	for range 2 {
		n := 0
		for range r.Prefixes() {
			n++
		}
		if n != 4 {
			t.Errorf("iteration yielded %d prefixes, want 4", n)
		}
	}
}

func TestPrefixes_StopAfterCancel(t *testing.T) {
	var r Reveal
	r.Start("hello")

	var got []string
	for p := range r.Prefixes() {
		got = append(got, p)
		if len(got) == 2 {
			r.Cancel()
		}
	}
	if len(got) != 2 {
		t.Errorf("got %v after cancel, want 2 prefixes", got)
	}
}

func TestPrefixes_StopAfterRestart(t *testing.T) {
	var r Reveal
	r.Start("hello")

	n := 0
	for range r.Prefixes() {
		n++
		r.Start("other")
	}
	if n != 1 {
		t.Errorf("got %d prefixes, want 1", n)
	}
}

func TestTick(t *testing.T) {
	var r Reveal
	r.Start("abc")

	if r.Prefix() != "" || !r.Active() {
		t.Fatalf("start: prefix=%q active=%v", r.Prefix(), r.Active())
	}
	if r.Tick() || r.Prefix() != "a" {
		t.Errorf("tick 1: prefix=%q", r.Prefix())
	}
	if r.Tick() || r.Prefix() != "ab" {
		t.Errorf("tick 2: prefix=%q", r.Prefix())
	}
	if !r.Tick() {
		t.Error("tick 3 should complete the reveal")
	}
	if !r.Done() || r.Active() || r.Prefix() != "abc" {
		t.Errorf("after completion: done=%v active=%v prefix=%q", r.Done(), r.Active(), r.Prefix())
	}
	if r.Tick() {
		t.Error("tick after completion should be inert")
	}
	if r.Progress() != 3 {
		t.Errorf("Progress() = %d, want 3", r.Progress())
	}
}

func TestTick_AfterCancel(t *testing.T) {
	var r Reveal
	r.Start("abcdef")
	r.Tick()
	r.Cancel()

	for range 10 {
		r.Tick()
	}
	if r.Prefix() != "a" {
		t.Errorf("prefix after cancel = %q, want %q", r.Prefix(), "a")
	}
	if r.Active() || r.Done() {
		t.Errorf("cancelled reveal: active=%v done=%v", r.Active(), r.Done())
	}
}

func TestStart_EmptyText(t *testing.T) {
	var r Reveal
	r.Start("")
	if !r.Done() || r.Active() {
		t.Errorf("empty text: done=%v active=%v", r.Done(), r.Active())
	}
}

func TestFinish(t *testing.T) {
	var r Reveal
	r.Start("héllo")
	r.Tick()
	r.Finish()
	if r.Prefix() != "héllo" || !r.Done() {
		t.Errorf("Finish: prefix=%q done=%v", r.Prefix(), r.Done())
	}
}

func TestClampInterval(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{time.Millisecond, MinInterval},
		{30 * time.Millisecond, 30 * time.Millisecond},
		{time.Second, MaxInterval},
	}
	for _, tt := range tests {
		if got := ClampInterval(tt.in); got != tt.want {
			t.Errorf("ClampInterval(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
