package datadog

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/pompput-sizer/internal/config"
	"github.com/thatsimonsguy/pompput-sizer/internal/model"
)

var (
	dogstatsd *statsd.Client
	enabled   bool
)

// InitMetrics creates the DogStatsD client. Metrics stay disabled when
// enable_datadog is off or the client cannot be created.
func InitMetrics(cfg *config.Config) {
	enabled = cfg.EnableDatadog
	if !enabled {
		log.Debug().Msg("Datadog metrics disabled")
		return
	}

	var err error
	dogstatsd, err = statsd.New(cfg.DDAgentAddr,
		statsd.WithNamespace(cfg.DDNamespace),
		statsd.WithTags(cfg.DDTags),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create DogStatsD client")
		dogstatsd = nil
		return
	}

	log.Info().
		Str("addr", cfg.DDAgentAddr).
		Str("namespace", cfg.DDNamespace).
		Strs("tags", cfg.DDTags).
		Msg("Datadog metrics initialized")
}

func Close() {
	if dogstatsd != nil {
		dogstatsd.Close()
		dogstatsd = nil
	}
}

func Gauge(name string, value float64, tags ...string) {
	if dogstatsd != nil {
		err := dogstatsd.Gauge(name, value, tags, 1)
		if err != nil && enabled {
			log.Warn().Err(err).Str("metric", name).Msg("Failed to emit gauge metric")
		}
	}
}

func Incr(name string, tags ...string) {
	if dogstatsd != nil {
		err := dogstatsd.Incr(name, tags, 1)
		if err != nil && enabled {
			log.Warn().Err(err).Str("metric", name).Msg("Failed to emit count metric")
		}
	}
}

// RecordDesign emits the headline numbers of one sizing run.
func RecordDesign(res model.DesignResult, tags ...string) {
	if dogstatsd == nil {
		return
	}
	Incr("calculations", tags...)
	Gauge("inflow.rate_ls", res.InflowRateM3S*1000, tags...)
	Gauge("buffer.volume_m3", res.Buffer.BufferVolumeM3, tags...)
	Gauge("buffer.level_rise_m", res.Buffer.LevelRiseM, tags...)
	Gauge("pipe.velocity_ms", res.HeadLoss.VelocityMS, tags...)
	Gauge("pipe.head_loss_m", res.HeadLoss.TotalHeadLossM, tags...)
	for _, a := range res.Advisories {
		Incr("advisories", append([]string{"kind:" + string(a.Kind)}, tags...)...)
	}
}
