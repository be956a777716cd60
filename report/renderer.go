package report

import (
	"io"
)

// Renderer turns a report into a document. Implementations must keep the
// layout described in the package pdf.
type Renderer interface {
	Render(w io.Writer, r Report, meta Meta) error
}
