package snapshot

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/snapshot/v1"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/errors"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/logger"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/redis"
)

// Store persists book snapshots in Redis, keyed by market pair.
type Store struct {
	pair        string
	logger      *logger.Logger
	redisclient redis.Client
}

var _ snapshotv1.Store = (*Store)(nil)

// NewSnapshotStore creates a snapshot store for the given pair.
func NewSnapshotStore(redisclient redis.Client, pair string, logger *logger.Logger) *Store {
	return &Store{
		pair:        pair,
		redisclient: redisclient,
		logger:      logger,
	}
}

// Store serializes the snapshot and writes it to Redis.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return errors.NewTracer(string(errors.SnapshotMarshalError)).Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.pair, buf, 0); err != nil {
		// a dead connection is recoverable; reconnect and retry once
		if s.redisclient.Ping(ctx) != nil && s.redisclient.Reconnect(ctx) {
			err = s.redisclient.Set(ctx, s.pair, buf, 0)
		}
		if err != nil {
			s.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "pair",
				Value: s.pair,
			})
			return errors.NewTracer(string(errors.SnapshotStoreError)).Wrap(err)
		}
	}

	s.logger.InfoContext(ctx, "Snapshot stored", logger.Field{
		Key:   "pair",
		Value: s.pair,
	}, logger.Field{
		Key:   "orders",
		Value: len(snapshot.OrderBookSnapshot.Orders),
	})
	return nil
}

// Load reads the latest snapshot from Redis. It returns nil without error
// when no snapshot has been stored yet.
func (s *Store) Load(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.pair)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		}, logger.Field{
			Key:   "action",
			Value: "load snapshot",
		})
		return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "No snapshot found", logger.Field{
			Key:   "pair",
			Value: s.pair,
		})
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "pair",
			Value: s.pair,
		}, logger.Field{
			Key:   "action",
			Value: "unmarshal snapshot",
		})
		return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
	}

	return &snapshot, nil
}
