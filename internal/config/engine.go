package config

import (
	"strings"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/logger"
)

// EngineConfig drives week generation, conditions defaults and roadmaps.
type EngineConfig struct {
	Standard        calendar.TierDefaults
	HighDemand      calendar.TierDefaults
	Vacations       []calendar.VacationWindow
	DefaultCurrency string
	Locale          calendar.Locale
}

func LoadEngineConfig() *EngineConfig {
	cfg := &EngineConfig{
		Standard: calendar.TierDefaults{
			FeeCents:         getEnvInt64("WEEK_STANDARD_FEE_CENTS", 60000),
			PerformanceCount: getEnvInt("WEEK_STANDARD_PERFORMANCES", 2),
		},
		HighDemand: calendar.TierDefaults{
			FeeCents:         getEnvInt64("WEEK_HIGH_DEMAND_FEE_CENTS", 100000),
			PerformanceCount: getEnvInt("WEEK_HIGH_DEMAND_PERFORMANCES", 4),
		},
		Vacations:       calendar.DefaultVacationWindows(),
		DefaultCurrency: strings.ToUpper(getEnv("DEFAULT_CURRENCY", "EUR")),
		Locale:          calendar.ParseLocale(getEnv("ROADMAP_LOCALE", string(calendar.LocaleEN))),
	}

	if raw := getEnv("VACATION_WINDOWS", ""); raw != "" {
		windows, err := calendar.ParseVacationWindows(raw)
		if err != nil || len(windows) == 0 {
			logger.Warn("config: invalid VACATION_WINDOWS, using defaults", "value", raw, "err", err)
		} else {
			cfg.Vacations = windows
		}
	}

	return cfg
}

// Planner builds the week generator from the configuration.
func (c *EngineConfig) Planner() calendar.WeekPlanner {
	return calendar.NewWeekPlanner(c.Standard, c.HighDemand, c.Vacations)
}
