package testutil

import (
	"time"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/google/uuid"
)

type RenderOption func(*domain.RenderRecord)

func WithStatus(s domain.RenderStatus) RenderOption {
	return func(r *domain.RenderRecord) { r.Status = s }
}

func WithTarget(t domain.RenderTarget) RenderOption {
	return func(r *domain.RenderRecord) { r.Target = t }
}

func WithCreatedAt(at time.Time) RenderOption {
	return func(r *domain.RenderRecord) { r.CreatedAt = at }
}

func WithMissing(sections ...string) RenderOption {
	return func(r *domain.RenderRecord) { r.MissingSections = sections }
}

func WithOutput(path string, size int) RenderOption {
	return func(r *domain.RenderRecord) {
		r.OutputPath = path
		r.OutputBytes = size
	}
}

// NewTestRender returns a completed print record.
func NewTestRender(opts ...RenderOption) *domain.RenderRecord {
	r := &domain.RenderRecord{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Target:      domain.TargetPrint,
		Format:      domain.FormatFullPlan,
		OutputPath:  "/tmp/bfmp/plan.html",
		OutputBytes: 4096,
		Digest:      "sha256:0000",
		Status:      domain.RenderCompleted,
		Duration:    120 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
