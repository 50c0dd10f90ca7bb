package form

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// InspectFile describes the file at path. The media type is sniffed from
// content, falling back to the extension; Loaded is true only when the image
// header decodes. A missing file yields Loaded=false rather than an error.
func InspectFile(path string) File {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	f := File{
		Name:      filepath.Base(path),
		Locator:   FileURL(abs),
		MediaType: mime.TypeByExtension(filepath.Ext(path)),
	}

	fh, err := os.Open(abs)
	if err != nil {
		return f
	}
	defer fh.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(fh, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return f
	}
	if sniffed := http.DetectContentType(head[:n]); sniffed != "application/octet-stream" {
		if mt, _, err := mime.ParseMediaType(sniffed); err == nil {
			f.MediaType = mt
		}
	}

	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		return f
	}
	if _, _, err := image.DecodeConfig(fh); err == nil {
		f.Loaded = true
	}
	return f
}

// FileURL converts an absolute filesystem path into a file:// locator.
func FileURL(abs string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}
