package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

type ledgerClient interface {
	ReportResult(ctx context.Context, result entity.MatchResult) error
}

// Reporter - delivers round results to the player ledger in the background.
// Reports are never retried and a full queue drops them.
type Reporter struct {
	logger  *slog.Logger
	client  ledgerClient
	timeout time.Duration
	queue   chan entity.MatchResult
}

func NewReporter(logger *slog.Logger, client ledgerClient, queueSize int, timeout time.Duration) *Reporter {
	return &Reporter{
		logger:  logger.With("component", "reporter"),
		client:  client,
		timeout: timeout,
		queue:   make(chan entity.MatchResult, queueSize),
	}
}

// Report - enqueues a result without blocking.
func (that *Reporter) Report(result entity.MatchResult) {
	select {
	case that.queue <- result:
	default:
		that.logger.Warn("report queue is full, dropping result", "player1", result.Player1, "player2", result.Player2)
	}
}

// Run - drains the queue until ctx is done.
func (that *Reporter) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case result := <-that.queue:
			that.send(ctx, result)
		}
	}
}

func (that *Reporter) send(ctx context.Context, result entity.MatchResult) {
	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	if err := that.client.ReportResult(ctx, result); err != nil {
		that.logger.Error("failed to report result", "player1", result.Player1, "player2", result.Player2, "error", err)
		return
	}

	that.logger.Debug("result reported", "player1", result.Player1, "player2", result.Player2)
}
