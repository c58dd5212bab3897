package render

// Renderer produces the printable forms of an invoice.
type Renderer interface {
	RenderHTML(in Input) (string, error)
	RenderPDF(in Input) ([]byte, error)
}

type renderer struct {
	*HTMLRenderer
	*PDFRenderer
}

// New returns a Renderer backed by the HTML template and the PDF builder.
func New() Renderer {
	return renderer{HTMLRenderer: NewHTMLRenderer(), PDFRenderer: NewPDFRenderer()}
}
