package file

import (
	"bytes"
	"path"
	"strings"
	"time"
)

type File struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StorageKey  string    `json:"-"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

var (
	// content types accepted for upload
	allowedContentTypes = map[string]bool{
		"image/png":       true,
		"image/jpeg":      true,
		"image/gif":       true,
		"image/webp":      true,
		"image/bmp":       true,
		"application/pdf": true,
		"text/plain":      true,
		"application/zip": true,
	}

	// office documents sniff as zip (OOXML, ODF) or as octet-stream (OLE2); the extension tells them apart.
	zipOfficeTypes = map[string]string{
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		".odt":  "application/vnd.oasis.opendocument.text",
		".ods":  "application/vnd.oasis.opendocument.spreadsheet",
		".odp":  "application/vnd.oasis.opendocument.presentation",
	}
	oleOfficeTypes = map[string]string{
		".doc": "application/msword",
		".xls": "application/vnd.ms-excel",
		".ppt": "application/vnd.ms-powerpoint",
	}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// detectContentType refines the sniffed type of head using the filename extension.
// ok is false when the type is not accepted for upload.
func detectContentType(sniffed, filename string, head []byte) (ct string, ok bool) {
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = strings.TrimSpace(sniffed[:i])
	}
	ext := strings.ToLower(path.Ext(filename))

	switch sniffed {
	case "application/zip":
		if officeType, found := zipOfficeTypes[ext]; found {
			return officeType, true
		}
	case "application/octet-stream":
		if officeType, found := oleOfficeTypes[ext]; found && bytes.HasPrefix(head, oleMagic) {
			return officeType, true
		}
	}
	return sniffed, allowedContentTypes[sniffed]
}
