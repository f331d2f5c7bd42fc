// Package router keeps the stack of open screens. Screens navigate by
// returning the commands from Open, Back and Swap; the app model feeds the
// resulting messages back through Router.Update.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/parserinator/parserinator/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg closes the current screen and opens Screen in its place.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Open returns a command that pushes s.
func Open(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Back returns a command that pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Swap returns a command that replaces the current screen with s.
func Swap(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Router is a non-empty stack of screens. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New creates a Router with root at the bottom.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root, and resumes the screen
// underneath.
func (r *Router) Pop() tea.Cmd {
	if r.top() == 0 {
		return nil
	}
	leave(r.stack[r.top()])
	r.stack[r.top()] = nil
	r.stack = r.stack[:r.top()]
	if rs, ok := r.stack[r.top()].(screen.Resumer); ok {
		return rs.Resume()
	}
	return nil
}

// Replace closes the top screen and opens s in its slot.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	leave(r.stack[r.top()])
	r.stack[r.top()] = s
	return s.Init()
}

// LeaveAll tells every open screen, top first, that the program is exiting.
func (r *Router) LeaveAll() {
	for i := r.top(); i >= 0; i-- {
		leave(r.stack[i])
	}
}

// Active is the screen receiving input.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

// Depth is the number of open screens.
func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View renders the active screen into width×height.
func (r *Router) View(width, height int) string {
	return r.stack[r.top()].View(width, height)
}

func leave(s screen.Screen) {
	if l, ok := s.(screen.Leaver); ok {
		l.Leave()
	}
}
