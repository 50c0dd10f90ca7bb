package present

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/bfmp/internal/logging"
)

// maxImageBytes caps a single image read.
const maxImageBytes = 32 << 20

// ErrImageTooLarge reports an image over maxImageBytes. Such images are not
// inlined rather than inlined truncated.
var ErrImageTooLarge = errors.New("image exceeds size limit")

// ImageLoader fetches the bytes behind an image locator.
type ImageLoader interface {
	Load(ctx context.Context, src string) (data []byte, mediaType string, err error)
}

// LocatorLoader resolves file://, data: and http(s) locators. Bare paths are
// read from disk.
type LocatorLoader struct {
	Client *http.Client
}

var _ ImageLoader = LocatorLoader{}

func (l LocatorLoader) Load(ctx context.Context, src string) ([]byte, string, error) {
	if strings.HasPrefix(src, "data:") {
		return decodeDataURI(src)
	}

	u, err := url.Parse(src)
	if err != nil || u.Scheme == "" {
		return readImageFile(src)
	}
	switch u.Scheme {
	case "file":
		return readImageFile(u.Path)
	case "http", "https":
		return l.fetch(ctx, u.String())
	default:
		return nil, "", fmt.Errorf("unsupported image locator scheme %q", u.Scheme)
	}
}

func (l LocatorLoader) fetch(ctx context.Context, src string) ([]byte, string, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building image request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching image: unexpected status %s", resp.Status)
	}
	data, err := readLimited(resp.Body, maxImageBytes)
	if err != nil {
		return nil, "", fmt.Errorf("reading image body: %w", err)
	}
	return data, sniff(data), nil
}

func readImageFile(path string) ([]byte, string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening image: %w", err)
	}
	defer fh.Close()
	data, err := readLimited(fh, maxImageBytes)
	if err != nil {
		return nil, "", fmt.Errorf("reading image: %w", err)
	}
	return data, sniff(data), nil
}

// readLimited reads all of r, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrImageTooLarge, limit)
	}
	return data, nil
}

func decodeDataURI(src string) ([]byte, string, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, "", errors.New("malformed data URI")
	}
	mediaType := meta
	isBase64 := strings.HasSuffix(meta, ";base64")
	if isBase64 {
		mediaType = strings.TrimSuffix(meta, ";base64")
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decoding data URI: %w", err)
		}
		return data, mediaTypeOr(mediaType, data), nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding data URI: %w", err)
	}
	return []byte(text), mediaTypeOr(mediaType, []byte(text)), nil
}

func mediaTypeOr(declared string, data []byte) string {
	if mt, _, _ := strings.Cut(declared, ";"); mt != "" {
		return mt
	}
	return sniff(data)
}

func sniff(data []byte) string {
	mt, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return mt
}

// DataURI encodes data as a base64 data URI.
func DataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

var imgSrcRe = regexp.MustCompile(`(<img\b[^>]*?\bsrc=")([^"]*)(")`)

// InlineResult reports what InlineImages did.
type InlineResult struct {
	HTML       string
	Inlined    int
	Unresolved []string
}

// InlineImages rewrites every <img src> in doc to a data URI. Images load
// concurrently until ctx is done; images that fail or are still loading at
// the deadline keep their original src and are listed in Unresolved.
func InlineImages(ctx context.Context, doc string, loader ImageLoader) InlineResult {
	logger := logging.WithOperation(logging.WithComponent("present"), "inline_images")

	var srcs []string
	seen := map[string]bool{}
	for _, m := range imgSrcRe.FindAllStringSubmatch(doc, -1) {
		src := html.UnescapeString(m[2])
		if seen[src] || strings.HasPrefix(src, "data:") || src == "" {
			continue
		}
		seen[src] = true
		srcs = append(srcs, src)
	}
	if len(srcs) == 0 {
		return InlineResult{HTML: doc}
	}

	type loaded struct {
		src string
		uri string
		err error
	}
	results := make(chan loaded, len(srcs))
	var wg sync.WaitGroup
	for _, src := range srcs {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			data, mt, err := loader.Load(ctx, src)
			if err == nil && !strings.HasPrefix(mt, "image/") {
				err = fmt.Errorf("not an image (%s)", mt)
			}
			if err != nil {
				results <- loaded{src: src, err: err}
				return
			}
			results <- loaded{src: src, uri: DataURI(mt, data)}
		}(src)
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	uris := map[string]string{}
	collect := func(r loaded) {
		if r.err != nil {
			logger.Warn("image not inlined", "src", r.src, "error", r.err)
			return
		}
		uris[r.src] = r.uri
	}
wait:
	for {
		select {
		case r := <-results:
			collect(r)
			if len(uris) == len(srcs) {
				break wait
			}
		case <-done:
			for {
				select {
				case r := <-results:
					collect(r)
				default:
					break wait
				}
			}
		case <-ctx.Done():
			logger.Warn("image wait timed out; printing anyway", "pending", len(srcs)-len(uris))
			break wait
		}
	}

	res := InlineResult{}
	res.HTML = imgSrcRe.ReplaceAllStringFunc(doc, func(tag string) string {
		m := imgSrcRe.FindStringSubmatch(tag)
		if uri, ok := uris[html.UnescapeString(m[2])]; ok {
			return m[1] + uri + m[3]
		}
		return tag
	})
	for _, src := range srcs {
		if _, ok := uris[src]; ok {
			res.Inlined++
		} else {
			res.Unresolved = append(res.Unresolved, src)
		}
	}
	return res
}
