package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/bfmp/internal/collector"
	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/logging"
	"github.com/alexanderramin/bfmp/internal/presence"
	"github.com/alexanderramin/bfmp/internal/present"
	"github.com/alexanderramin/bfmp/internal/report"
	"github.com/alexanderramin/bfmp/internal/repository"
	"github.com/google/uuid"
)

// ErrRenderFailed hides the cause of an unexpected build or present failure
// from the user. The cause is logged and stays reachable through errors.Unwrap
// when it was an error.
var ErrRenderFailed = errors.New("something went wrong while generating the plan")

// DefaultImageTimeout bounds the wait for print images.
const DefaultImageTimeout = 10 * time.Second

// PlanOptions configure PlanService.
type PlanOptions struct {
	Report       report.Options
	ImageTimeout time.Duration
	Loader       present.ImageLoader
	// Clock stamps ledger records. Nil means time.Now.
	Clock func() time.Time
}

type planService struct {
	schema   form.Schema
	renders  repository.RenderRepo
	opts     PlanOptions
	observer UseCaseObserver

	// One generation at a time.
	mu sync.Mutex
}

// NewPlanService builds the generation pipeline. renders may be nil when the
// ledger is disabled.
func NewPlanService(
	schema form.Schema,
	renders repository.RenderRepo,
	opts PlanOptions,
	observers ...UseCaseObserver,
) PlanService {
	if opts.ImageTimeout <= 0 {
		opts.ImageTimeout = DefaultImageTimeout
	}
	if opts.Loader == nil {
		opts.Loader = present.LocatorLoader{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &planService{
		schema:   schema,
		renders:  renders,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Check(state form.Reader) presence.Result {
	return presence.Check(state, s.schema)
}

func (s *planService) Document(ctx context.Context, req GenerateRequest) (doc report.Document, res presence.Result, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "document", time.Now(), fields, &err)

	data, res, err := collector.Collect(ctx, req.State, s.schema, req.Policy)
	fields["missing_sections"] = len(res.Missing)
	if err != nil {
		return report.Document{}, res, err
	}
	if req.Format != "" {
		data.Document.Format = req.Format
	}

	doc, err = s.build(data)
	if err != nil {
		return report.Document{}, res, err
	}
	fields["format"] = string(doc.Format)
	return doc, res, nil
}

func (s *planService) Generate(ctx context.Context, req GenerateRequest) (result *GenerateResult, err error) {
	startedAt := time.Now()
	target := req.Target
	if target == "" {
		target = domain.TargetFragment
	}
	fields := map[string]any{"target": string(target)}
	defer observe(ctx, s.observer, "generate", startedAt, fields, &err)

	if _, ok := domain.ParseRenderTarget(string(target)); !ok {
		return nil, fmt.Errorf("unknown render target %q", target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logger := logging.WithOperation(logging.WithComponent("service"), "generate")

	rec := &domain.RenderRecord{
		ID:         uuid.New().String(),
		CreatedAt:  s.opts.Clock().UTC(),
		Target:     target,
		Format:     s.requestedFormat(req),
		OutputPath: req.OutputPath,
	}
	finish := func(status domain.RenderStatus) {
		rec.Status = status
		rec.Duration = time.Since(startedAt)
		s.record(ctx, rec)
	}

	data, res, err := collector.Collect(ctx, req.State, s.schema, req.Policy)
	rec.MissingSections = res.Missing
	fields["missing_sections"] = len(res.Missing)
	if err != nil {
		if errors.Is(err, collector.ErrAborted) {
			finish(domain.RenderAborted)
		}
		return nil, err
	}
	if req.Format != "" {
		data.Document.Format = req.Format
	}
	rec.Format = domain.ParsePlanFormat(string(data.Document.Format))
	fields["format"] = string(rec.Format)

	doc, err := s.build(data)
	if err != nil {
		finish(domain.RenderFailed)
		return nil, err
	}

	wait := s.opts.ImageTimeout
	if req.ImageTimeout > 0 {
		wait = req.ImageTimeout
	}
	out, unresolved, err := s.present(ctx, target, doc, wait)
	if err != nil {
		finish(domain.RenderFailed)
		return nil, err
	}
	if len(unresolved) > 0 {
		logger.Warn("images not embedded", "count", len(unresolved))
		fields["unresolved_images"] = len(unresolved)
	}

	if req.OutputPath != "" {
		if err := present.WriteFile(req.OutputPath, out); err != nil {
			finish(domain.RenderFailed)
			return nil, err
		}
	}

	sum := sha256.Sum256(out)
	rec.Digest = "sha256:" + hex.EncodeToString(sum[:])
	rec.OutputBytes = len(out)
	fields["output_bytes"] = rec.OutputBytes
	finish(domain.RenderCompleted)

	return &GenerateResult{
		Record:     rec,
		Document:   doc,
		Output:     out,
		Missing:    res,
		Unresolved: unresolved,
	}, nil
}

// requestedFormat is the override when given, else the form's own plan
// format. Aborted generations are recorded with it.
func (s *planService) requestedFormat(req GenerateRequest) domain.PlanFormat {
	if req.Format != "" || req.State == nil {
		return domain.ParsePlanFormat(string(req.Format))
	}
	return domain.ParsePlanFormat(form.NewAccessor(req.State, s.schema).Text(form.FieldPlanFormat))
}

// build turns data into the document model. A panic becomes ErrRenderFailed.
func (s *planService) build(data domain.PlanData) (doc report.Document, err error) {
	defer recoverRender("build", &err)
	return report.Build(data, s.opts.Report), nil
}

// present produces the output bytes for target. Unexpected errors and panics
// become ErrRenderFailed.
func (s *planService) present(ctx context.Context, target domain.RenderTarget, doc report.Document, wait time.Duration) (out []byte, unresolved []string, err error) {
	defer recoverRender("present", &err)

	switch target {
	case domain.TargetPrint:
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		defer cancel()
		inlined := present.InlineImages(waitCtx, report.HTML(doc), s.opts.Loader)
		return []byte(present.PrintDocument(inlined.HTML, doc.Header.Title)), inlined.Unresolved, nil
	case domain.TargetPDF:
		var buf bytes.Buffer
		pdfOpts := present.PDFOptions{Loader: s.opts.Loader, Author: s.opts.Report.Organisation}
		if err := present.WritePDF(ctx, &buf, doc, pdfOpts); err != nil {
			return nil, nil, renderFailed("present", err)
		}
		return buf.Bytes(), nil, nil
	default:
		return []byte(report.HTML(doc)), nil, nil
	}
}

func renderFailed(stage string, cause error) error {
	logging.WithOperation(logging.WithComponent("service"), stage).Error("generation failed", "error", cause)
	return fmt.Errorf("%w: %w", ErrRenderFailed, cause)
}

func recoverRender(stage string, errp *error) {
	if p := recover(); p != nil {
		*errp = renderFailed(stage, fmt.Errorf("panic: %v", p))
	}
}

// record writes rec to the ledger. Ledger failures never fail a generation.
func (s *planService) record(ctx context.Context, rec *domain.RenderRecord) {
	if s.renders == nil {
		return
	}
	if err := s.renders.Create(ctx, rec); err != nil {
		logging.WithOperation(logging.WithComponent("service"), "record").
			Warn("render ledger write failed", "id", rec.ID, "error", err)
	}
}
