package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
)

// Archiver periodically flushes sink snapshots to a GCS bucket so the bounded
// in-memory buffer is not the only record of diagnostic history.
type Archiver struct {
	sink     *Sink
	bucket   string
	interval time.Duration
	log      zerolog.Logger

	lastTotal uint64
}

// NewArchiver creates an archiver writing to the given bucket. It assumes
// Application Default Credentials are configured.
func NewArchiver(sink *Sink, bucket string, interval time.Duration, log zerolog.Logger) *Archiver {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Archiver{sink: sink, bucket: bucket, interval: interval, log: log}
}

// Run flushes on every tick until ctx is cancelled. A failed flush is logged
// and retried on the next tick; records stay in the ring buffer meanwhile.
func (a *Archiver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final best-effort flush with a short deadline.
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := a.Flush(flushCtx); err != nil {
				a.log.Warn().Err(err).Msg("Final audit flush failed")
			}
			cancel()
			return
		case <-ticker.C:
			if err := a.Flush(ctx); err != nil {
				a.log.Warn().Err(err).Msg("Audit flush failed")
			}
		}
	}
}

// Flush writes the current snapshot to a timestamped object. It is a no-op
// when nothing has been appended since the previous flush.
func (a *Archiver) Flush(ctx context.Context) error {
	total := a.sink.Total()
	if total == a.lastTotal {
		return nil
	}

	records := a.sink.Recent(0)
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("Flush: marshaling records: %w", err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("Flush: creating storage client: %w", err)
	}
	defer client.Close()

	objectName := fmt.Sprintf("audit/%s.json", time.Now().UTC().Format("20060102T150405Z"))
	w := client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	if _, err := w.Write(payload); err != nil {
		_ = w.Close()
		return fmt.Errorf("Flush: writing object %q: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("Flush: finalizing object %q: %w", objectName, err)
	}

	a.lastTotal = total
	a.log.Info().Str("object", objectName).Int("records", len(records)).Msg("Flushed audit records to GCS")
	return nil
}
