// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dom

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpuctx"
)

// Errors returned by in-memory elements.
var (
	// ErrForeignElement is returned when an element from another document
	// or implementation is appended or removed.
	ErrForeignElement = errors.New("dom: element belongs to another document")

	// ErrNotChild is returned by RemoveChild when the node is not a child.
	ErrNotChild = errors.New("dom: node is not a child of this element")

	// ErrHierarchy is returned when appending would create a cycle.
	ErrHierarchy = errors.New("dom: hierarchy request error")
)

// Document is an in-memory document tree.
//
// Document is safe for concurrent use; all elements of a document share its lock.
type Document struct {
	mu     sync.Mutex
	nextID uint64
	body   *Element
}

// NewDocument creates a document with an attached <body> element.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.newElement("body")
	return d
}

// Body returns the document body.
func (d *Document) Body() *Element {
	return d.body
}

// CreateElement creates a detached element with the given tag.
func (d *Document) CreateElement(tag string) (gpuctx.Element, error) {
	if tag == "" {
		return nil, errors.New("dom: empty tag name")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.newElement(tag), nil
}

// newElement must be called with d.mu held (or during construction).
func (d *Document) newElement(tag string) *Element {
	d.nextID++
	return &Element{doc: d, id: d.nextID, tag: tag}
}

// Element is a node of an in-memory Document.
type Element struct {
	doc      *Document
	id       uint64
	tag      string
	parent   *Element
	children []*Element

	display uintptr
	window  uintptr
}

// ID returns the element's document-unique identifier.
func (e *Element) ID() uint64 { return e.id }

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// String returns a short description such as "canvas#3".
func (e *Element) String() string {
	return fmt.Sprintf("%s#%d", e.tag, e.id)
}

// Parent returns the parent element, or nil if detached.
func (e *Element) Parent() *Element {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.parent
}

// Children returns a copy of the children in insertion order.
func (e *Element) Children() []*Element {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return append([]*Element(nil), e.children...)
}

// LastChild returns the most recently appended child, or nil.
func (e *Element) LastChild() *Element {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if len(e.children) == 0 {
		return nil
	}
	return e.children[len(e.children)-1]
}

// SetNativeHandles attaches platform window handles to the element.
// Drivers use them to create a presentable surface.
func (e *Element) SetNativeHandles(display, window uintptr) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.display = display
	e.window = window
}

// NativeHandles returns the platform window handles; ok is false if the
// element has no window.
func (e *Element) NativeHandles() (display, window uintptr, ok bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.display, e.window, e.window != 0
}

// AppendChild appends child as the last child of e. A child that already
// has a parent is moved.
func (e *Element) AppendChild(child gpuctx.Element) error {
	c, err := e.own(child)
	if err != nil {
		return err
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	for p := e; p != nil; p = p.parent {
		if p == c {
			return fmt.Errorf("%w: %s is an ancestor of %s", ErrHierarchy, c, e)
		}
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	e.children = append(e.children, c)
	c.parent = e
	return nil
}

// RemoveChild detaches child from e.
func (e *Element) RemoveChild(child gpuctx.Element) error {
	c, err := e.own(child)
	if err != nil {
		return err
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	if c.parent != e || !e.detach(c) {
		return fmt.Errorf("%w: %s in %s", ErrNotChild, c, e)
	}
	c.parent = nil
	return nil
}

func (e *Element) own(child gpuctx.Element) (*Element, error) {
	c, ok := child.(*Element)
	if !ok || c == nil || c.doc != e.doc {
		return nil, ErrForeignElement
	}
	return c, nil
}

// detach must be called with the document lock held.
func (e *Element) detach(c *Element) bool {
	for i, ch := range e.children {
		if ch == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}
