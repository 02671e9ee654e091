// Package wltransfer implements the clipboard data Transfer record,
// grounded on wayland-transfer.c.
package wltransfer

// Transfer is a clipboard data source: an opaque handle to the
// data_source resource plus the ordered list of MIME types it offers.
type Transfer struct {
	SourceHandle interface{}
	mimeTypes    []string
}

func New(sourceHandle interface{}) *Transfer {
	return &Transfer{SourceHandle: sourceHandle}
}

func (t *Transfer) AddOffer(mimeType string) {
	t.mimeTypes = append(t.mimeTypes, mimeType)
}

func (t *Transfer) MimeTypes() []string {
	return t.mimeTypes
}
