package summary

import (
	"strings"

	"ytldr/internal/domain/entity"
)

// SummarizeRequest is the JSON body of POST /summaries and POST /summaries/forensic.
// Either Content, Data or URL must be set. Data carries an uploaded file and
// is base64 encoded on the wire.
type SummarizeRequest struct {
	Content  string `json:"content"`
	Data     []byte `json:"data,omitempty"`
	FileName string `json:"file_name,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
	URL      string `json:"url,omitempty"`
	Type     string `json:"type,omitempty"`

	Options entity.SummaryOptions `json:"options"`

	Forensic        bool `json:"forensic,omitempty"`
	IncludeMetadata bool `json:"include_metadata,omitempty"`
}

// toInput converts the request into engine input. A request carrying only a
// URL summarizes the page behind it.
func (r SummarizeRequest) toInput() entity.SummarizeInput {
	text := r.Content
	if strings.TrimSpace(text) == "" && len(r.Data) == 0 {
		text = r.URL
	}
	return entity.SummarizeInput{
		Content: entity.ContentUnit{
			Text:      text,
			Raw:       r.Data,
			SourceRef: r.URL,
			MIMEType:  r.MIMEType,
			FileName:  r.FileName,
		},
		Type:            entity.ContentType(r.Type),
		Options:         r.Options,
		Forensic:        r.Forensic,
		IncludeMetadata: r.IncludeMetadata,
	}
}

// OptionsResponse lists the accepted request values.
type OptionsResponse struct {
	Types   []entity.ContentType `json:"types"`
	Lengths []entity.Length      `json:"lengths"`
	Formats []entity.Format      `json:"formats"`
	Focuses []entity.Focus       `json:"focuses"`
}
