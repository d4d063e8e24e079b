package gpuctx

// Document creates elements. The dom package provides an in-memory document
// and, for js/wasm builds, one backed by the browser document.
type Document interface {
	CreateElement(tag string) (Element, error)
}

// Element is a node of the document tree. Children keep insertion order, so
// the most recently appended element is the active render target.
type Element interface {
	AppendChild(child Element) error
	RemoveChild(child Element) error
}
