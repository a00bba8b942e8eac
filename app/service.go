package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/kilianp07/powerplan/api/plans"
	"github.com/kilianp07/powerplan/api/productionplan"
	"github.com/kilianp07/powerplan/config"
	"github.com/kilianp07/powerplan/core/journal"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	coremon "github.com/kilianp07/powerplan/core/monitoring"
	coremqtt "github.com/kilianp07/powerplan/core/mqtt"
	"github.com/kilianp07/powerplan/core/planner"
	"github.com/kilianp07/powerplan/infra/logger"
	"github.com/kilianp07/powerplan/infra/metrics"
	"github.com/kilianp07/powerplan/infra/monitoring"
	"github.com/kilianp07/powerplan/infra/mqtt"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// Service wires the planner to its HTTP surface and to the bus subscribers
// that record, journal and forward every plan.
type Service struct {
	Planner *planner.Planner

	cfg       *config.Config
	bus       *eventbus.Bus
	sink      coremetrics.PlanSink
	store     journal.Store
	publisher coremqtt.SetpointPublisher
	mqttCli   *mqtt.PahoClient
	log       logger.Logger

	cancel    context.CancelFunc
	done      []<-chan struct{}
	closeOnce sync.Once
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher replaces the MQTT client built from the configuration.
func WithPublisher(p coremqtt.SetpointPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithSink replaces the metrics sinks built from the configuration.
func WithSink(sink coremetrics.PlanSink) Option {
	return func(s *Service) { s.sink = sink }
}

// New creates a Service from the configuration and starts its subscribers.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{cfg: cfg, bus: eventbus.New(), log: logger.New("service")}
	for _, o := range opts {
		o(s)
	}

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	if s.sink == nil {
		sink, err := metrics.NewSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		s.sink = sink
	}
	if cfg.Journal.Enabled {
		store, err := journal.NewStore(cfg.Journal.Options())
		if err != nil {
			return nil, fmt.Errorf("journal: %w", err)
		}
		s.store = store
	}
	if s.publisher == nil && cfg.MQTT.Enabled {
		cli, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			s.closeStore()
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		s.mqttCli = cli
		s.publisher = cli
	}

	s.Planner = planner.New(s.bus, logger.New("planner"))

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = append(s.done, metrics.StartEventCollector(ctx, s.bus, s.sink))
	if s.store != nil {
		s.done = append(s.done, journal.StartWriter(ctx, s.bus, s.store, logger.New("journal")))
	}
	if s.publisher != nil {
		s.done = append(s.done, mqtt.StartForwarder(ctx, s.bus, s.publisher))
	}
	return s, nil
}

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/productionplan", productionplan.NewHandler(s.Planner, logger.New("http")))
	mux.Handle("/healthz", productionplan.HealthHandler())
	if s.store != nil {
		mux.Handle("/plans", plans.NewHandler(s.store, s.cfg.Journal.Token))
	}
	return Recoverer(mux, s.log)
}

// Run serves HTTP until ctx is canceled, then shuts the server down gracefully.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.Server.ReadTimeout(),
		WriteTimeout:      s.cfg.Server.WriteTimeout(),
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close stops the subscribers once they drained the bus and releases the
// journal and the MQTT connection.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.bus.Close()
		for _, d := range s.done {
			<-d
		}
		s.cancel()
		err = s.closeStore()
		if s.mqttCli != nil {
			s.mqttCli.Disconnect()
		}
		if c, ok := s.sink.(interface{ Close() error }); ok {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
		coremon.Flush(2 * time.Second)
	})
	return err
}

func (s *Service) closeStore() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
