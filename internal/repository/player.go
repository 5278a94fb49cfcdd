package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

const (
	playerKeyPrefix = "player:"

	fieldWins   = "wins"
	fieldLosses = "losses"
	fieldDraws  = "draws"

	maxTxRetries = 5
)

var errTxConflict = errors.New("ledger update kept conflicting")

type PlayerRepository interface {
	// Create - stores a zeroed record unless one exists. The bool reports whether it was created.
	Create(ctx context.Context, username string) (*entity.Player, bool, error)
	GetByUsername(ctx context.Context, username string) (*entity.Player, error)
	// RecordResult - applies one round to both records in a single transaction.
	RecordResult(ctx context.Context, result entity.MatchResult) error
}

type dbPlayer struct {
	client *redis.Client
}

type playerHash struct {
	Wins   int `redis:"wins"`
	Losses int `redis:"losses"`
	Draws  int `redis:"draws"`
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func playerKey(username string) string {
	return playerKeyPrefix + username
}

func (that *dbPlayer) Create(ctx context.Context, username string) (*entity.Player, bool, error) {
	key := playerKey(username)

	var created *redis.BoolCmd
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		created = pipe.HSetNX(ctx, key, fieldWins, 0)
		pipe.HSetNX(ctx, key, fieldLosses, 0)
		pipe.HSetNX(ctx, key, fieldDraws, 0)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create player: %w", err)
	}

	player, err := that.GetByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}

	return player, created.Val(), nil
}

func (that *dbPlayer) GetByUsername(ctx context.Context, username string) (*entity.Player, error) {
	cmd := that.client.HGetAll(ctx, playerKey(username))

	fields, err := cmd.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player by username: %w", err)
	}

	if len(fields) == 0 {
		return nil, apperror.ErrPlayerNotFound
	}

	var hash playerHash
	if err = cmd.Scan(&hash); err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}

	return &entity.Player{
		Username: username,
		Wins:     hash.Wins,
		Losses:   hash.Losses,
		Draws:    hash.Draws,
	}, nil
}

func (that *dbPlayer) RecordResult(ctx context.Context, result entity.MatchResult) error {
	key1, key2 := playerKey(result.Player1), playerKey(result.Player2)

	txf := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key1, key2).Result()
		if err != nil {
			return fmt.Errorf("failed to check players: %w", err)
		}

		if exists != 2 {
			return apperror.ErrPlayerNotFound
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if result.IsDraw() {
				pipe.HIncrBy(ctx, key1, fieldDraws, 1)
				pipe.HIncrBy(ctx, key2, fieldDraws, 1)
				return nil
			}

			loser := result.Player2
			if *result.Winner == result.Player2 {
				loser = result.Player1
			}

			pipe.HIncrBy(ctx, playerKey(*result.Winner), fieldWins, 1)
			pipe.HIncrBy(ctx, playerKey(loser), fieldLosses, 1)
			return nil
		})

		return err
	}

	for range maxTxRetries {
		err := that.client.Watch(ctx, txf, key1, key2)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return err
			}
			return fmt.Errorf("failed to record result: %w", err)
		}

		return nil
	}

	return errTxConflict
}
