package imageopt

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Magic byte signatures for the accepted source formats
var magicBytes = map[string][]byte{
	".jpg":  {0xFF, 0xD8, 0xFF},
	".jpeg": {0xFF, 0xD8, 0xFF},
	".png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ValidateSource checks that the extension is accepted, that the content
// starts with the extension's signature and that the sniffed MIME type agrees.
func ValidateSource(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	sig, ok := magicBytes[ext]
	if !ok {
		return fmt.Errorf("file extension not allowed: %q", ext)
	}
	if !bytes.HasPrefix(data, sig) {
		return fmt.Errorf("file content does not match extension %s", ext)
	}
	if mime := mimetype.Detect(data); !allowedMIMETypes[mime.String()] {
		return fmt.Errorf("MIME type not allowed: %s", mime)
	}
	return nil
}

func isSupported(name string) bool {
	_, ok := magicBytes[strings.ToLower(filepath.Ext(name))]
	return ok
}
