package s3

// Document is a file stored in the uploads bucket.
type Document struct {
	ID   string       `json:"id"`
	Data []byte       `json:"data"`
	Kind DocumentKind `json:"kind"`
	Type DocumentType `json:"type"`
}

type DocumentKind string

const (
	DocumentKindPdf DocumentKind = "pdf"
)

type DocumentType string

const (
	DocumentTypeResume DocumentType = "resume"
)

func NewPdfDocument(id string, data []byte, docType DocumentType) *Document {
	return &Document{
		ID:   id,
		Data: data,
		Kind: DocumentKindPdf,
		Type: docType,
	}
}

// StoredDocument describes an uploaded object.
type StoredDocument struct {
	Key   string
	URL   string
	Bytes int64
}
