// Package outcome records finished games off the UI goroutine and issues
// coupons for wins.
package outcome

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/outwit/tetris-challenge/internal/storage"
)

// Outcome is the payload reported when a game ends.
type Outcome struct {
	GameID string
	Player string
	Email  string
	Score  int
	Level  int
	Lines  int
	Won    bool
}

// Recorder persists outcomes. *storage.Store implements it.
type Recorder interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
	SaveCoupon(c storage.Coupon) (storage.Coupon, error)
}

var _ Recorder = (*storage.Store)(nil)

// Notice is a non-blocking message for the player about a report.
type Notice struct {
	Text   string
	Coupon string // issued code, set on wins even if saving it failed
	Err    error
}

const queueSize = 8

// Reporter processes outcomes on its own goroutine. Report never blocks
// and failures are logged and surfaced as notices, never retried.
type Reporter struct {
	rec     Recorder
	logger  *log.Logger
	newCode func() string

	queue   chan Outcome
	notices chan Notice
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewReporter starts a reporter. rec may be nil when no store is
// available; wins then still get a code, with an error notice.
func NewReporter(rec Recorder, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.Default()
	}
	r := &Reporter{
		rec:     rec,
		logger:  logger,
		newCode: NewCouponCode,
		queue:   make(chan Outcome, queueSize),
		notices: make(chan Notice, queueSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Report queues an outcome. It returns false if the reporter is closed or
// its queue is full; the outcome is dropped in that case.
func (r *Reporter) Report(o Outcome) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	select {
	case r.queue <- o:
		return true
	default:
		r.logger.Warn("outcome queue full, dropping report", "score", o.Score, "won", o.Won)
		return false
	}
}

// Notices delivers messages for the player. The channel is closed by Close.
func (r *Reporter) Notices() <-chan Notice {
	return r.notices
}

// Close stops accepting reports, waits for queued ones to finish and
// closes the notice channel.
func (r *Reporter) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()
	<-r.done
}

func (r *Reporter) run() {
	defer close(r.done)
	defer close(r.notices)
	for o := range r.queue {
		if n, ok := r.process(o); ok {
			r.notify(n)
		}
	}
}

// notify hands a notice over without blocking the worker.
func (r *Reporter) notify(n Notice) {
	select {
	case r.notices <- n:
	default:
		r.logger.Debug("notice dropped", "text", n.Text)
	}
}

func (r *Reporter) process(o Outcome) (Notice, bool) {
	start := time.Now()
	logger := r.logger.With("game", o.GameID, "player", o.Player, "score", o.Score, "won", o.Won)

	if r.rec == nil {
		logger.Warn("no score store, outcome not recorded")
	} else if _, err := r.rec.SaveScore(storage.ScoreEntry{
		GameID: o.GameID,
		Player: o.Player,
		Score:  o.Score,
		Level:  o.Level,
		Lines:  o.Lines,
		Won:    o.Won,
	}); err != nil {
		logger.Error("cannot record score", "err", err)
		if !o.Won {
			return Notice{Text: "Your score could not be saved.", Err: err}, true
		}
	}

	if !o.Won {
		logger.Debug("outcome recorded", "took", time.Since(start))
		return Notice{}, false
	}

	code := r.newCode()
	if r.rec == nil {
		err := fmt.Errorf("outcome: no coupon store")
		return Notice{Text: "Coupon Generation Error: could not save your coupon.", Coupon: code, Err: err}, true
	}
	if _, err := r.rec.SaveCoupon(storage.Coupon{
		Code:      code,
		UserEmail: o.Email,
		Score:     o.Score,
	}); err != nil {
		logger.Error("cannot save coupon", "code", code, "err", err)
		return Notice{Text: "Coupon Generation Error: could not save your coupon.", Coupon: code, Err: err}, true
	}

	logger.Info("coupon issued", "code", code, "took", time.Since(start))
	return Notice{Text: fmt.Sprintf("Coupon %s is ready for your project submission.", code), Coupon: code}, true
}
