// Package cache provides a small in-process cache with both a TTL bound
// and an LRU size bound.
//
// It deduplicates expensive upstream calls: the record lookup layer and
// the roster grid layer each own their instances, constructed by the
// composition root and injected where needed. There are no process-wide
// cache singletons.
//
// Two properties matter to callers:
//
//   - A non-positive TTL disables the instance completely, so caching
//     can be switched off per deployment without code changes.
//   - Values are copied in and out through the configured CloneFunc, so
//     a returned value is never an alias of cache-internal state.
package cache
