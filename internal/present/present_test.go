package present

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for x := 0; x < 8; x++ {
		img.Set(x, 2, color.RGBA{B: 200, A: 255})
	}
	return img
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func writeTemp(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestPrintDocument(t *testing.T) {
	out := PrintDocument(`<div class="report-preview">body</div>`, "")
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Biofouling Management Plan</title>")
	assert.Contains(t, out, "@page { size: A4; margin: 12mm; }")
	assert.Contains(t, out, "table { page-break-inside: avoid;")
	assert.Contains(t, out, ".placeholder-text { color: #555; font-style: italic; }")
	assert.Contains(t, out, `<body>
<div class="report-preview">body</div></body>`)

	assert.Contains(t, PrintDocument("x", "Fleet Plan"), "<title>Fleet Plan</title>")
}

func TestLocatorLoader_Sources(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t)
	path := writeTemp(t, dir, "a.png", data)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/img.png" {
			_, _ = w.Write(data)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctx := context.Background()
	l := LocatorLoader{Client: srv.Client()}

	for _, src := range []string{path, form.FileURL(path), srv.URL + "/img.png", DataURI("image/png", data)} {
		got, mt, err := l.Load(ctx, src)
		require.NoError(t, err, src)
		assert.Equal(t, "image/png", mt, src)
		assert.Equal(t, data, got, src)
	}

	_, _, err := l.Load(ctx, srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "unexpected status")
	_, _, err = l.Load(ctx, "ftp://example.com/a.png")
	assert.ErrorContains(t, err, "unsupported image locator scheme")
	_, _, err = l.Load(ctx, "data:image/png;base64,***")
	assert.Error(t, err)
	_, _, err = l.Load(ctx, filepath.Join(dir, "nope.png"))
	assert.Error(t, err)
}

func TestReadLimited(t *testing.T) {
	data, err := readLimited(strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("12345"), data)

	_, err = readLimited(strings.NewReader("123456"), 5)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestLocatorLoader_OversizedImageFails(t *testing.T) {
	big := make([]byte, maxImageBytes+1)
	copy(big, pngBytes(t))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(big)
	}))
	defer srv.Close()

	l := LocatorLoader{Client: srv.Client()}
	_, _, err := l.Load(context.Background(), srv.URL+"/huge.png")
	assert.ErrorIs(t, err, ErrImageTooLarge)

	res := InlineImages(context.Background(), `<img src="`+srv.URL+`/huge.png">`, l)
	assert.Equal(t, 0, res.Inlined)
	assert.Equal(t, []string{srv.URL + "/huge.png"}, res.Unresolved)
}

func TestInlineImages(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t)
	path := writeTemp(t, dir, "hull.png", data)
	txt := writeTemp(t, dir, "notes.txt", []byte("hello"))
	missing := form.FileURL(filepath.Join(dir, "gone.png"))

	doc := `<img src="` + form.FileURL(path) + `" alt="a"><p>x</p>` +
		`<img alt="b" src="` + form.FileURL(path) + `">` +
		`<img src="data:image/gif;base64,R0lG" alt="c">` +
		`<img src="` + missing + `" alt="d">` +
		`<img src="` + form.FileURL(txt) + `" alt="e">`

	res := InlineImages(context.Background(), doc, LocatorLoader{})
	uri := DataURI("image/png", data)

	assert.Equal(t, 1, res.Inlined)
	assert.ElementsMatch(t, []string{missing, form.FileURL(txt)}, res.Unresolved)
	assert.Equal(t, 2, strings.Count(res.HTML, `src="`+uri+`"`))
	assert.Contains(t, res.HTML, `src="data:image/gif;base64,R0lG"`)
	assert.Contains(t, res.HTML, `src="`+missing+`"`)
}

type blockingLoader struct{}

func (blockingLoader) Load(ctx context.Context, _ string) ([]byte, string, error) {
	<-ctx.Done()
	return nil, "", ctx.Err()
}

func TestInlineImages_TimeoutPrintsAnyway(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	doc := `<img src="file:///slow.png">`
	start := time.Now()
	res := InlineImages(ctx, doc, blockingLoader{})

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, doc, res.HTML)
	assert.Equal(t, []string{"file:///slow.png"}, res.Unresolved)
}

func TestInlineImages_NoImages(t *testing.T) {
	res := InlineImages(context.Background(), "<p>plain</p>", blockingLoader{})
	assert.Equal(t, InlineResult{HTML: "<p>plain</p>"}, res)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.html")

	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFile_UnwritableDestination(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing-dir", "plan.html"), []byte("x"))
	assert.ErrorIs(t, err, ErrSurfaceUnavailable)
}

func TestOpen(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "plan.html", []byte("x"))

	orig := startCommand
	t.Cleanup(func() { startCommand = orig })

	var launched []string
	startCommand = func(name string, args ...string) error {
		launched = append([]string{name}, args...)
		return nil
	}
	require.NoError(t, Open(path))
	require.NotEmpty(t, launched)
	assert.Equal(t, path, launched[len(launched)-1])

	startCommand = func(string, ...string) error { return errors.New("no display") }
	assert.ErrorIs(t, Open(path), ErrSurfaceUnavailable)

	assert.ErrorIs(t, Open(filepath.Join(t.TempDir(), "absent.html")), ErrSurfaceUnavailable)
}

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	pngPath := writeTemp(t, dir, "hull.png", pngBytes(t))

	var bmpBuf bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpBuf, testImage()))
	bmpPath := writeTemp(t, dir, "niche.bmp", bmpBuf.Bytes())

	p := domain.PlanData{
		Vessel:   domain.VesselParticulars{Name: "MV Example", IMO: "1234567"},
		Coatings: []domain.AFCEntry{{ProductName: "Coating A", Locations: strings.Repeat("Flat bottom and vertical sides. ", 20)}},
		Niche: domain.NicheAreas{Diagrams: []string{
			form.FileURL(pngPath), form.FileURL(bmpPath), form.FileURL(filepath.Join(dir, "gone.png")),
		}},
		Document: domain.DocumentMeta{CoverPhoto: form.FileURL(pngPath), IncludeSignatureBlock: true, Title: "Plan © 2026"},
	}
	doc := report.Build(p, report.Options{Now: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)})

	var out bytes.Buffer
	require.NoError(t, WritePDF(context.Background(), &out, doc, PDFOptions{Author: "MarineStream Tools"}))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	assert.Greater(t, out.Len(), 1000)
}

func TestWritePDF_RecordBookOnly(t *testing.T) {
	doc := report.Build(domain.PlanData{Document: domain.DocumentMeta{Format: domain.FormatBFRBOnly}}, report.Options{})
	var out bytes.Buffer
	require.NoError(t, WritePDF(context.Background(), &out, doc, PDFOptions{}))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
}

func TestToPNG(t *testing.T) {
	var bmpBuf bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpBuf, testImage()))
	out, err := toPNG(bmpBuf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "image/png", sniff(out))

	_, err = toPNG([]byte("not an image"))
	assert.Error(t, err)
}
