package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

const (
	MessageRegistered        = "registered successfully"
	MessageAlreadyRegistered = "already registered"

	StatusDrawRecorded   = "draw_recorded"
	StatusResultRecorded = "result_recorded"
)

type PlayerService interface {
	// Register - creates a zeroed record. An existing record is returned as is.
	Register(ctx context.Context, username string) (*entity.Player, bool, error)
	Get(ctx context.Context, username string) (*entity.Player, error)
	// ReportResult - applies a finished round and returns the recorded status.
	ReportResult(ctx context.Context, result entity.MatchResult) (string, error)
}

type playerRepo interface {
	Create(ctx context.Context, username string) (*entity.Player, bool, error)
	GetByUsername(ctx context.Context, username string) (*entity.Player, error)
	RecordResult(ctx context.Context, result entity.MatchResult) error
}

type playerService struct {
	logger     *slog.Logger
	playerRepo playerRepo
}

func NewPlayerService(logger *slog.Logger, playerRepo playerRepo) PlayerService {
	return &playerService{
		logger:     logger.With("component", "player_service"),
		playerRepo: playerRepo,
	}
}

func (that *playerService) Register(ctx context.Context, username string) (*entity.Player, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, apperror.ErrUsernameRequired
	}

	player, created, err := that.playerRepo.Create(ctx, username)
	if err != nil {
		return nil, false, fmt.Errorf("failed to register player: %w", err)
	}

	if created {
		that.logger.Info("player registered", "username", username)
	}

	return player, created, nil
}

func (that *playerService) Get(ctx context.Context, username string) (*entity.Player, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ErrUsernameRequired
	}

	player, err := that.playerRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *playerService) ReportResult(ctx context.Context, result entity.MatchResult) (string, error) {
	log := that.logger.With("method", "ReportResult")

	result.Player1 = strings.TrimSpace(result.Player1)
	result.Player2 = strings.TrimSpace(result.Player2)
	if result.Player1 == "" || result.Player2 == "" {
		return "", apperror.ErrUsernameRequired
	}

	if result.Player1 == result.Player2 {
		return "", apperror.ErrInvalidPlayers
	}

	if !result.IsDraw() && *result.Winner != result.Player1 && *result.Winner != result.Player2 {
		return "", apperror.ErrWinnerNotPlayer
	}

	if err := that.playerRepo.RecordResult(ctx, result); err != nil {
		return "", fmt.Errorf("failed to record result: %w", err)
	}

	if result.IsDraw() {
		log.Info("draw recorded", "player1", result.Player1, "player2", result.Player2)
		return StatusDrawRecorded, nil
	}

	log.Info("result recorded", "player1", result.Player1, "player2", result.Player2, "winner", *result.Winner)
	return StatusResultRecorded, nil
}
