package ui

import (
	"github.com/derailed/tview"
)

// Pages represents the stack of view pages.
type Pages struct {
	*tview.Pages
	*Stack
}

// NewPages returns a new pages stack.
func NewPages() *Pages {
	p := &Pages{
		Pages: tview.NewPages(),
		Stack: NewStack(),
	}
	p.Stack.AddListener(p)

	return p
}

// StackPushed notifies a component was pushed.
func (p *Pages) StackPushed(c Component) {
	p.AddPage(c.Name(), c, true, true)
	p.SwitchToPage(c.Name())
}

// StackPopped notifies a component was removed.
func (p *Pages) StackPopped(o, top Component) {
	p.RemovePage(o.Name())
	if top != nil {
		p.SwitchToPage(top.Name())
	}
}

// StackTop notifies a new component is at the top of the stack.
func (p *Pages) StackTop(top Component) {
	if top != nil {
		p.SwitchToPage(top.Name())
	}
}

// StackSize returns the stack depth.
func (p *Pages) StackSize() int {
	return len(p.Flatten())
}
