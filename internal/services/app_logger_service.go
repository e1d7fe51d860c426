package services

import (
	"context"
	"regexp"
	"strconv"
	"sync"
	"time"

	"todolist/internal/logger"
	"todolist/internal/models"
	"todolist/internal/repositories"
)

var userTagRe = regexp.MustCompile(`\[user (\d+)]`)

// ExtractUserID returns the id from the first "[user <digits>]" tag in msg.
func ExtractUserID(msg string) *int64 {
	m := userTagRe.FindStringSubmatch(msg)
	if m == nil {
		return nil
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func LogLevelFor(l logger.Level) models.LogLevel {
	switch l {
	case logger.LevelError:
		return models.LogLevelError
	case logger.LevelWarn:
		return models.LogLevelWarn
	case logger.LevelDebug:
		return models.LogLevelDebug
	case logger.LevelVerbose:
		return models.LogLevelVerbose
	case logger.LevelFatal:
		return models.LogLevelFatal
	}
	return models.LogLevelLog
}

type AppLoggerOptions struct {
	BatchSize     int
	FlushInterval time.Duration
	QueueSize     int
}

// AppLoggerService is the live logger sink: every entry goes to the console
// and is persisted to the logs table in batches by a single goroutine.
// Persistence failures are reported on the console and never returned.
type AppLoggerService struct {
	repo    repositories.LogRepository
	console logger.Sink
	opts    AppLoggerOptions

	queue chan models.Log
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once
}

func NewAppLoggerService(repo repositories.LogRepository, console logger.Sink, opts AppLoggerOptions) *AppLoggerService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = time.Second
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1024
	}
	s := &AppLoggerService{
		repo:    repo,
		console: console,
		opts:    opts,
		queue:   make(chan models.Log, opts.QueueSize),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *AppLoggerService) Write(e logger.Entry) {
	s.console.Write(e)

	msg := e.Text()
	row := models.Log{
		UserID:  ExtractUserID(msg),
		Message: msg,
		Level:   LogLevelFor(e.Level),
	}
	select {
	case <-s.quit:
		return
	default:
	}
	select {
	case s.queue <- row:
	default:
		s.console.Write(logger.Entry{Level: logger.LevelError, Message: "[logs] queue full, dropped: %s", Params: []any{msg}})
	}
}

func (s *AppLoggerService) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.opts.FlushInterval)
	defer ticker.Stop()

	batch := make([]models.Log, 0, s.opts.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.CreateMany(ctx, batch); err != nil {
			s.console.Write(logger.Entry{Level: logger.LevelError, Message: "[logs] failed to persist %d log(s): %v", Params: []any{len(batch), err}})
		}
		batch = batch[:0]
	}

	for {
		select {
		case row := <-s.queue:
			batch = append(batch, row)
			if len(batch) >= s.opts.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.quit:
			for {
				select {
				case row := <-s.queue:
					batch = append(batch, row)
					if len(batch) >= s.opts.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close flushes what is queued and stops the writer. Entries written after
// Close still reach the console.
func (s *AppLoggerService) Close() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}
