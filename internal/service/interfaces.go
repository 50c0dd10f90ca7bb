package service

import (
	"context"
	"time"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/presence"
	"github.com/alexanderramin/bfmp/internal/report"
)

// GenerateRequest describes one generation. State is the form to collect
// from; Policy decides what happens when required fields are empty.
type GenerateRequest struct {
	State  form.Reader
	Target domain.RenderTarget
	// Format overrides the planFormat selector when set.
	Format domain.PlanFormat
	// OutputPath receives the output. Empty keeps it in memory only.
	OutputPath string
	Policy     presence.ProceedPolicy
	// ImageTimeout overrides the configured print image wait when positive.
	ImageTimeout time.Duration
}

// GenerateResult is what a completed generation produced.
type GenerateResult struct {
	Record     *domain.RenderRecord
	Document   report.Document
	Output     []byte
	Missing    presence.Result
	Unresolved []string
}

type PlanService interface {
	Check(state form.Reader) presence.Result
	Document(ctx context.Context, req GenerateRequest) (report.Document, presence.Result, error)
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

type HistoryService interface {
	List(ctx context.Context, limit int) ([]*domain.RenderRecord, error)
	ListStatus(ctx context.Context, status domain.RenderStatus, limit int) ([]*domain.RenderRecord, error)
	Get(ctx context.Context, id string) (*domain.RenderRecord, error)
	Prune(ctx context.Context, opts PruneOptions) (int64, error)
}

// PruneOptions select ledger records to delete. Records older than OlderThan
// are removed, then all but the Keep most recent. Zero disables a rule.
type PruneOptions struct {
	OlderThan time.Duration
	Keep      int
}
