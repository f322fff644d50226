package datadog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thatsimonsguy/pompput-sizer/internal/config"
	"github.com/thatsimonsguy/pompput-sizer/internal/model"
)

func TestDisabledMetricsAreNoOps(t *testing.T) {
	cfg := config.Defaults()
	InitMetrics(&cfg)
	defer Close()

	assert.Nil(t, dogstatsd)
	assert.NotPanics(t, func() {
		Gauge("pipe.head_loss_m", 1.2)
		Incr("calculations")
		RecordDesign(model.DesignResult{Advisories: []model.Advisory{{Kind: model.AdvisorySafety}}})
	})
}

func TestEnabledMetricsCreateClient(t *testing.T) {
	cfg := config.Defaults()
	cfg.EnableDatadog = true
	cfg.DDAgentAddr = "127.0.0.1:18125"
	InitMetrics(&cfg)
	defer Close()

	assert.NotNil(t, dogstatsd)
	assert.NotPanics(t, func() {
		RecordDesign(model.DesignResult{InflowRateM3S: 0.105}, "design:test")
	})
}
