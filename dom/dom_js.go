//go:build js && wasm

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dom

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/gogpu/gpuctx"
)

// ErrNoDocument is returned by Global when the global scope has no document.
var ErrNoDocument = errors.New("dom: no global document")

// JSDocument wraps the browser document.
type JSDocument struct {
	v js.Value
}

// Global returns the browser document and its body.
// Pass both to gpuctx.New instead of reaching for globals inside the core.
func Global() (*JSDocument, *JSElement, error) {
	doc := js.Global().Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		return nil, nil, ErrNoDocument
	}
	body := doc.Get("body")
	if body.IsUndefined() || body.IsNull() {
		return nil, nil, fmt.Errorf("%w: document has no body", ErrNoDocument)
	}
	return &JSDocument{v: doc}, &JSElement{v: body}, nil
}

// CreateElement calls document.createElement(tag).
func (d *JSDocument) CreateElement(tag string) (gpuctx.Element, error) {
	v, err := call(d.v, "createElement", tag)
	if err != nil {
		return nil, err
	}
	return &JSElement{v: v}, nil
}

// JSElement wraps a browser DOM element.
type JSElement struct {
	v js.Value
}

// Value returns the underlying JavaScript value (e.g., an HTMLCanvasElement).
func (e *JSElement) Value() js.Value { return e.v }

// AppendChild calls parent.appendChild(child).
func (e *JSElement) AppendChild(child gpuctx.Element) error {
	c, ok := child.(*JSElement)
	if !ok || c == nil {
		return ErrForeignElement
	}
	_, err := call(e.v, "appendChild", c.v)
	return err
}

// RemoveChild calls parent.removeChild(child).
func (e *JSElement) RemoveChild(child gpuctx.Element) error {
	c, ok := child.(*JSElement)
	if !ok || c == nil {
		return ErrForeignElement
	}
	_, err := call(e.v, "removeChild", c.v)
	return err
}

// call invokes a JavaScript method, converting a thrown exception into an error.
func call(v js.Value, method string, args ...any) (result js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = fmt.Errorf("dom: %s: %w", method, jsErr)
				return
			}
			err = fmt.Errorf("dom: %s: %v", method, r)
		}
	}()
	return v.Call(method, args...), nil
}
