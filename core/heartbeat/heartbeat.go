package heartbeat

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Run pings url every interval until ctx is cancelled. Failures are
// logged at debug level and never abort the loop; the ping exists only
// to keep free-tier hosting from idling the instance.
func Run(ctx context.Context, url string, interval time.Duration, logger *zap.Logger) {
	if url == "" || interval <= 0 {
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				logger.Debug("heartbeat request build failed", zap.Error(err))
				continue
			}
			resp, err := client.Do(req)
			if err != nil {
				logger.Debug("heartbeat failed", zap.Error(err))
				continue
			}
			resp.Body.Close()
		}
	}
}
