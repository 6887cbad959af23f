package logos

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicmap/mapdata-cli/internal/model"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func TestRun_DownloadsAndNames(t *testing.T) {
	r := testResolver(t, nil, pngHandler(t), nil, "")

	sum, err := r.Run(context.Background(), []model.Row{
		{Entity: "Change", Domain: "https://www.change.org/petitions"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Succeeded)
	assert.Empty(t, sum.Failures)
	assert.FileExists(t, filepath.Join(r.outDir, "change-org.png"))
}

func TestRun_SkipsExistingWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	counting := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
	})

	r := testResolver(t, nil, counting, counting, "")
	require.NoError(t, os.WriteFile(filepath.Join(r.outDir, "acme-com.png"), tinyPNG(t), 0o644))

	sum, err := r.Run(context.Background(), []model.Row{
		{Entity: "Acme", Domain: "acme.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Skipped)
	assert.Zero(t, sum.Succeeded)
	assert.Zero(t, hits.Load(), "existing file must short-circuit the download")
}

func TestRun_AccumulatesFailures(t *testing.T) {
	r := testResolver(t, nil, notFoundHandler(), notFoundHandler(), "")

	sum, err := r.Run(context.Background(), []model.Row{
		{Entity: "", Domain: "ghost.org"},
		{Entity: "NoDomain", Domain: ""},
		{Entity: "Unresolvable", Domain: "nope.example"},
	})
	require.NoError(t, err, "per-entity failures must not abort the batch")

	require.Len(t, sum.Failures, 3)
	assert.Equal(t, "(empty)", sum.Failures[0].Entity)
	assert.Equal(t, "no entity name", sum.Failures[0].Reason)
	assert.Equal(t, "no domain provided", sum.Failures[1].Reason)
	assert.Contains(t, sum.Failures[2].Reason, "could not resolve logo")
}

func TestRun_ConversionFailureRecorded(t *testing.T) {
	garbage := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("definitely not an image"))
	})
	r := testResolver(t, nil, garbage, notFoundHandler(), "")

	sum, err := r.Run(context.Background(), []model.Row{
		{Entity: "Acme", Domain: "acme.com"},
	})
	require.NoError(t, err)

	require.Len(t, sum.Failures, 1)
	assert.Contains(t, sum.Failures[0].Reason, "failed to convert to png")
	assert.NoFileExists(t, filepath.Join(r.outDir, "acme-com.png"))
}

func TestRun_ConvertsToPNG(t *testing.T) {
	pngBody := func() []byte {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
		return buf.Bytes()
	}()
	srv := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBody)
	})

	r := testResolver(t, nil, srv, nil, "")

	sum, err := r.Run(context.Background(), []model.Row{
		{Entity: "Acme", Domain: "acme.com"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, sum.Succeeded)

	data, err := os.ReadFile(filepath.Join(r.outDir, "acme-com.png"))
	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestRun_PacesRequests(t *testing.T) {
	r := testResolver(t, nil, pngHandler(t), nil, "")
	r.client = NewClient(ClientOptions{Delay: 50 * time.Millisecond, Timeout: 2 * time.Second})

	start := time.Now()
	_, err := r.Run(context.Background(), []model.Row{
		{Entity: "A", Domain: "a.example"},
		{Entity: "B", Domain: "b.example"},
	})
	require.NoError(t, err)

	// Second request must wait out the polite delay.
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed_logos.txt")
	require.NoError(t, WriteReport(path, []Failure{
		{Entity: "Acme", Domain: "acme.com", Reason: "could not resolve logo"},
		{Entity: "Ghost", Domain: "", Reason: "no domain provided"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Failed Logo Downloads")
	assert.Contains(t, text, "Entity: Acme")
	assert.Contains(t, text, "Domain: acme.com")
	assert.Contains(t, text, "Reason: could not resolve logo")
	assert.Contains(t, text, "Domain: N/A")
}
