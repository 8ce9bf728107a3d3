package metrics

import (
	"time"

	"github.com/jhoicas/pizza-service/pkg/logger"
)

// SystemSampler reads host CPU and memory utilization percentages.
type SystemSampler func() (cpuPct, memPct int64, err error)

// Reporter periodically pushes system utilization and the cumulative
// per-method request totals. It is owned by the process lifecycle: Start
// launches the loop, Stop halts it and waits for it to finish. Sampling
// failures are logged and never escape the loop.
type Reporter struct {
	registry *Registry
	sample   SystemSampler
	interval time.Duration
	log      *logger.Logger

	stop chan struct{}
	done chan struct{}
}

// NewReporter builds a reporter. The sampler is injectable so tests run
// without touching the host.
func NewReporter(registry *Registry, sample SystemSampler, interval time.Duration, log *logger.Logger) *Reporter {
	return &Reporter{
		registry: registry,
		sample:   sample,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the reporting loop.
func (r *Reporter) Start() {
	go r.run()
}

// Stop halts the loop and blocks until it has exited. Safe to call once.
func (r *Reporter) Stop() {
	close(r.stop)
	<-r.done
}

func (r *Reporter) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Reporter) tick() {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Msg("metrics tick panicked")
		}
	}()
	cpuPct, memPct, err := r.sample()
	if err != nil {
		r.log.Warn().Err(err).Msg("system metrics sample failed")
	} else {
		r.registry.PublishSystem(cpuPct, memPct)
	}
	r.registry.PublishRequestTotals()
}
