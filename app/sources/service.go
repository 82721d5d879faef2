package sources

import (
	"context"
	"log/slog"

	"github.com/kunwoo0421/GovernmentSupportProject/app/metrics"
	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

// NoticeRepository is the persistence boundary the service writes through.
// Upsert is idempotent and keyed by the canonical URL.
type NoticeRepository interface {
	UpsertNotices(ctx context.Context, notices []notice.Notice) error
	GetAllNotices(ctx context.Context) ([]notice.Notice, error)
	GetNoticeCount(ctx context.Context) (int, error)
}

// RefreshResult reports the outcome of one refresh cycle.
type RefreshResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// Service composes the two side-effect-free read paths (stored vs. live)
// under a single read policy, and owns the refresh write path. The repo may
// be nil, in which case the service runs store-less on live data only.
type Service struct {
	aggregator *Aggregator
	bids       *KonepsAdapter
	repo       NoticeRepository
}

func NewService(aggregator *Aggregator, bids *KonepsAdapter, repo NoticeRepository) *Service {
	return &Service{
		aggregator: aggregator,
		bids:       bids,
		repo:       repo,
	}
}

// ListNotices is the read path: stored records are preferred, an empty
// store falls back to a fresh live aggregation, and as a last resort the
// mock generator keeps the UI populated. Filters and sort are applied to
// whichever set survives.
func (s *Service) ListNotices(ctx context.Context, filter notice.Filter, sortMode string) []notice.Notice {
	records := s.readStored(ctx)
	if len(records) == 0 {
		records = s.aggregateLive(ctx)
	}
	if len(records) == 0 {
		slog.Info("No live or stored data available, serving mock notices")
		records = notice.GenerateMock()
	}
	return notice.Apply(records, filter, sortMode)
}

// RefreshNotices is the write path used by the periodic trigger: one full
// aggregation over the support-notice sources plus the bid source, then a
// best-effort upsert. The in-memory count is reported even when the write
// fails; Success reflects the persistence outcome only.
func (s *Service) RefreshNotices(ctx context.Context) RefreshResult {
	combined := s.aggregator.Run(ctx)
	if s.bids != nil {
		combined = append(combined, s.bids.FetchBids(ctx, "", "", "")...)
	}

	metrics.RefreshRuns.Inc()

	if len(combined) == 0 {
		slog.Warn("Refresh cycle produced no notices")
		return RefreshResult{Success: true, Count: 0}
	}

	if err := s.persist(ctx, combined); err != nil {
		slog.Error("Failed to persist refreshed notices", "count", len(combined), "error", err)
		return RefreshResult{Success: false, Count: len(combined)}
	}

	slog.Info("Refresh cycle completed", "count", len(combined))
	return RefreshResult{Success: true, Count: len(combined)}
}

// ListBids fetches bid notices with an optional keyword and announcement
// date range, defaulting to the recent 30-day window. Results are upserted
// best-effort for later stored reads.
func (s *Service) ListBids(ctx context.Context, keyword, startDate, endDate string) []notice.Notice {
	if s.bids == nil {
		return nil
	}

	bids := s.bids.FetchBids(ctx, keyword, startDate, endDate)
	if len(bids) > 0 {
		if err := s.persist(ctx, bids); err != nil {
			slog.Error("Failed to persist bid notices", "count", len(bids), "error", err)
		}
	}
	return bids
}

// aggregateLive runs the fan-out aggregation and offers the result to the
// persistence boundary. A failed write is logged and the fresh records are
// still returned; the system tolerates a degraded, unpersisted state.
func (s *Service) aggregateLive(ctx context.Context) []notice.Notice {
	combined := s.aggregator.Run(ctx)
	if len(combined) > 0 {
		if err := s.persist(ctx, combined); err != nil {
			slog.Error("Failed to persist aggregated notices", "count", len(combined), "error", err)
		}
	}
	return combined
}

func (s *Service) readStored(ctx context.Context) []notice.Notice {
	if s.repo == nil {
		return nil
	}
	records, err := s.repo.GetAllNotices(ctx)
	if err != nil {
		slog.Error("Failed to read stored notices", "error", err)
		return nil
	}
	return records
}

func (s *Service) persist(ctx context.Context, notices []notice.Notice) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.UpsertNotices(ctx, notices); err != nil {
		return err
	}
	metrics.UpsertedNotices.Add(float64(len(notices)))
	return nil
}
