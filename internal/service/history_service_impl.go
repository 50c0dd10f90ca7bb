package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/bfmp/internal/db"
	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/repository"
)

type historyService struct {
	renders  repository.RenderRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewHistoryService reads and prunes the render ledger. With a nil uow the
// prune steps run without a transaction.
func NewHistoryService(renders repository.RenderRepo, uow db.UnitOfWork, observers ...UseCaseObserver) HistoryService {
	return &historyService{renders: renders, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

var errNegativeLimit = errors.New("list limit must not be negative")

// List returns the newest records first. A zero limit uses the ledger
// default.
func (s *historyService) List(ctx context.Context, limit int) ([]*domain.RenderRecord, error) {
	if limit < 0 {
		return nil, errNegativeLimit
	}
	return s.renders.List(ctx, limit)
}

func (s *historyService) ListStatus(ctx context.Context, status domain.RenderStatus, limit int) ([]*domain.RenderRecord, error) {
	if limit < 0 {
		return nil, errNegativeLimit
	}
	return s.renders.ListByStatus(ctx, status, limit)
}

func (s *historyService) Get(ctx context.Context, id string) (*domain.RenderRecord, error) {
	return s.renders.GetByID(ctx, id)
}

// Prune applies both rules in one transaction; a failure leaves the ledger
// untouched.
func (s *historyService) Prune(ctx context.Context, opts PruneOptions) (n int64, err error) {
	fields := map[string]any{"older_than": opts.OlderThan.String(), "keep": opts.Keep}
	defer observe(ctx, s.observer, "prune-history", time.Now(), fields, &err)

	if opts.OlderThan < 0 || opts.Keep < 0 {
		return 0, errors.New("prune limits must not be negative")
	}
	if opts.OlderThan == 0 && opts.Keep == 0 {
		return 0, errors.New("prune needs an age or a number of records to keep")
	}

	prune := func(ctx context.Context, renders repository.RenderRepo) error {
		n = 0
		if opts.OlderThan > 0 {
			removed, err := renders.DeleteBefore(ctx, time.Now().UTC().Add(-opts.OlderThan))
			if err != nil {
				return err
			}
			n += removed
		}
		if opts.Keep > 0 {
			removed, err := renders.KeepLatest(ctx, opts.Keep)
			if err != nil {
				return err
			}
			n += removed
		}
		return nil
	}

	if s.uow == nil {
		err = prune(ctx, s.renders)
	} else {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return prune(ctx, repository.NewSQLiteRenderRepo(tx))
		})
	}
	if err != nil {
		return 0, err
	}
	fields["removed"] = n
	return n, nil
}
