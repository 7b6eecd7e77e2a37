package recommender

import (
	"log/slog"
	"time"

	"catchup-feed/internal/pkg/config"
)

// Config tunes the recommender's lookback window, fan-out bounds and
// per-source candidate cap.
type Config struct {
	HistoryWindowDays   int
	CandidatesPerSource int
	FetchParallelism    int
	FetchTimeout        time.Duration
	MaxLimit            int
}

// DefaultConfig mirrors the 30-day keyword/category lookback and
// 2-per-source trending cap spec.md's recommender algorithm specifies.
func DefaultConfig() Config {
	return Config{
		HistoryWindowDays:   30,
		CandidatesPerSource: 2,
		FetchParallelism:    8,
		FetchTimeout:        15 * time.Second,
		MaxLimit:            20,
	}
}

var configMetrics = config.NewConfigMetrics("recommender")

// LoadConfigFromEnv loads the recommender's RECOMMENDATION_WINDOW_DAYS
// override on top of DefaultConfig, falling back (with a logged warning)
// on an unset or out-of-range value.
func LoadConfigFromEnv(logger *slog.Logger) Config {
	cfg := DefaultConfig()

	result := config.LoadEnvInt("RECOMMENDATION_WINDOW_DAYS", cfg.HistoryWindowDays, func(v int) error {
		return config.ValidateIntRange(v, 1, 365)
	})
	cfg.HistoryWindowDays = result.Value.(int)
	if result.FallbackApplied {
		configMetrics.RecordValidationError("history_window_days")
		configMetrics.RecordFallback("history_window_days", "default")
		for _, warning := range result.Warnings {
			logger.Warn("recommender configuration fallback applied",
				slog.String("field", "history_window_days"), slog.String("warning", warning))
		}
	}
	configMetrics.SetFallbackActive("", result.FallbackApplied)
	configMetrics.RecordLoadTimestamp()

	return cfg
}

func clampLimit(requested, max int) int {
	if requested <= 0 {
		return max
	}
	if requested > max {
		return max
	}
	return requested
}
