package memory

import (
	"context"
	"fmt"

	"github.com/ytget/player-bridge/internal/logger"
	"github.com/ytget/player-bridge/internal/model"
	"github.com/ytget/player-bridge/internal/platform"
)

const (
	BytesPerMB = 1024 * 1024
	// DefaultFallbackMB is reported when the platform query fails.
	DefaultFallbackMB = 2048
)

// Reporter converts the platform's total memory to whole megabytes.
type Reporter struct {
	source     platform.MemoryInfo
	fallbackMB int
	log        *logger.Logger
}

// NewReporter creates a reporter; a non-positive fallbackMB means DefaultFallbackMB.
func NewReporter(source platform.MemoryInfo, fallbackMB int, log *logger.Logger) *Reporter {
	if fallbackMB <= 0 {
		fallbackMB = DefaultFallbackMB
	}
	return &Reporter{source: source, fallbackMB: fallbackMB, log: log}
}

// Report queries the platform on every call.
func (r *Reporter) Report(ctx context.Context) (report model.MemoryReport) {
	defer func() {
		if v := recover(); v != nil {
			report = r.assumed(fmt.Errorf("memory query panic: %v", v))
		}
	}()

	total, err := r.source.TotalMemory(ctx)
	if err != nil {
		return r.assumed(err)
	}
	if total == 0 {
		return r.assumed(platform.ErrMemoryUnknown)
	}
	return model.MemoryReport{TotalMB: int(total / BytesPerMB)}
}

// TotalMemoryMB is Report without the details.
func (r *Reporter) TotalMemoryMB(ctx context.Context) int { return r.Report(ctx).TotalMB }

func (r *Reporter) assumed(err error) model.MemoryReport {
	r.log.Warn().Err(err).Int("mb", r.fallbackMB).Msg("Memory query failed, using default")
	return model.MemoryReport{TotalMB: r.fallbackMB, Assumed: true, Err: err}
}
