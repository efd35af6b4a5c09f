package detect

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"ytldr/internal/domain/entity"
)

var extensions = map[string]entity.ContentType{
	"pdf":  entity.ContentTypePDF,
	"mp4":  entity.ContentTypeVideo,
	"avi":  entity.ContentTypeVideo,
	"mov":  entity.ContentTypeVideo,
	"mp3":  entity.ContentTypeAudio,
	"wav":  entity.ContentTypeAudio,
	"m4a":  entity.ContentTypeAudio,
	"txt":  entity.ContentTypeText,
	"md":   entity.ContentTypeMarkdown,
	"html": entity.ContentTypeHTML,
	"htm":  entity.ContentTypeHTML,
}

// SniffMIME returns the MIME type of data without parameters.
func SniffMIME(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	mt := mimetype.Detect(data).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

// FromFile classifies an uploaded file. A sniffed MIME type with a specific
// mapping wins; plain text and unknown binaries fall back to the extension.
func FromFile(name string, data []byte) entity.ContentType {
	if mt := SniffMIME(data); mt != "" && mt != "text/plain" {
		if ct, ok := mimeTypes[mt]; ok {
			return ct
		}
		if alias, ok := sniffAliases[mt]; ok {
			return alias
		}
	}
	return FromExtension(name)
}

// FromExtension maps a file name's extension to a tag, defaulting to text.
func FromExtension(name string) entity.ContentType {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ct, ok := extensions[ext]; ok {
		return ct
	}
	return entity.ContentTypeText
}

// sniffAliases covers the names mimetype reports for formats whose
// conventional names are in mimeTypes.
var sniffAliases = map[string]entity.ContentType{
	"audio/x-wav":      entity.ContentTypeAudio,
	"audio/x-m4a":      entity.ContentTypeAudio,
	"audio/mp4":        entity.ContentTypeAudio,
	"video/x-msvideo":  entity.ContentTypeVideo,
	"video/x-matroska": entity.ContentTypeVideo,
}
