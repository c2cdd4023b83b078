package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/service/alarms"
)

// Ticker runs one evaluation pass.
type Ticker interface {
	Tick(ctx context.Context) (alarms.TickResult, error)
}

// Scheduler runs the alarm evaluator on a fixed interval.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	ticker  Ticker
	every   time.Duration
	timeout time.Duration
	logger  *zap.Logger
}

// NewScheduler creates a scheduler that calls ticker every interval. A pass that is
// still running when the next one is due causes that one to be skipped.
func NewScheduler(ticker Ticker, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}

	timeout := interval
	if timeout < time.Second {
		timeout = time.Second
	}

	return &Scheduler{
		ticker:  ticker,
		every:   interval,
		timeout: timeout,
		logger:  logger,
	}
}

// Start registers the evaluation job and starts the cron loop. Calling it while the
// scheduler is running does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return
	}

	cronLogger := zapCronLogger{s.logger}
	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))
	c.Schedule(interval(s.every), cron.FuncJob(s.evaluate))
	c.Start()
	s.cron = c

	s.logger.Info("starting alarm scheduler", zap.Duration("interval", s.every))
}

// Stop halts the loop and waits for an in-flight pass. It is safe to call repeatedly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}

	s.logger.Info("stopping alarm scheduler")
	<-c.Stop().Done()
}

// IsRunning reports whether the loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

func (s *Scheduler) evaluate() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.ticker.Tick(ctx); err != nil {
		s.logger.Error("alarm evaluation failed", zap.Error(err))
	}
}

// interval is a cron.Schedule firing every d, including sub-second periods that
// cron.Every rounds up.
type interval time.Duration

func (i interval) Next(t time.Time) time.Time {
	return t.Add(time.Duration(i))
}

// zapCronLogger adapts zap to cron.Logger.
type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
