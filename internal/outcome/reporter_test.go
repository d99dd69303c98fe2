package outcome

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outwit/tetris-challenge/internal/logging"
	"github.com/outwit/tetris-challenge/internal/storage"
)

type fakeRecorder struct {
	mu        sync.Mutex
	scores    []storage.ScoreEntry
	coupons   []storage.Coupon
	scoreErr  error
	couponErr error
	block     chan struct{}
}

func (f *fakeRecorder) SaveScore(e storage.ScoreEntry) (int64, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scoreErr != nil {
		return 0, f.scoreErr
	}
	f.scores = append(f.scores, e)
	return int64(len(f.scores)), nil
}

func (f *fakeRecorder) SaveCoupon(c storage.Coupon) (storage.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.couponErr != nil {
		return c, f.couponErr
	}
	f.coupons = append(f.coupons, c)
	return c, nil
}

func TestReporterLossRecordsScoreOnly(t *testing.T) {
	rec := &fakeRecorder{}
	r := NewReporter(rec, logging.Discard())

	require.True(t, r.Report(Outcome{GameID: "tetris", Score: 300, Level: 1, Lines: 2}))
	r.Close()

	require.Len(t, rec.scores, 1)
	assert.Equal(t, 300, rec.scores[0].Score)
	assert.False(t, rec.scores[0].Won)
	assert.Empty(t, rec.coupons)

	_, open := <-r.Notices()
	assert.False(t, open, "a quiet loss produces no notice")
}

func TestReporterWinIssuesCoupon(t *testing.T) {
	rec := &fakeRecorder{}
	r := NewReporter(rec, logging.Discard())
	r.newCode = func() string { return "OUTWIT-AI-TEST1" }

	r.Report(Outcome{GameID: "tetris", Score: 1200, Won: true})
	n := <-r.Notices()
	r.Close()

	assert.Equal(t, "OUTWIT-AI-TEST1", n.Coupon)
	assert.NoError(t, n.Err)
	assert.Contains(t, n.Text, "OUTWIT-AI-TEST1")

	require.Len(t, rec.coupons, 1)
	assert.Equal(t, 1200, rec.coupons[0].Score)
	require.Len(t, rec.scores, 1)
	assert.True(t, rec.scores[0].Won)
}

func TestReporterCouponFailure(t *testing.T) {
	rec := &fakeRecorder{couponErr: errors.New("constraint failed")}
	r := NewReporter(rec, logging.Discard())

	r.Report(Outcome{Score: 1500, Won: true})
	n := <-r.Notices()
	r.Close()

	assert.Error(t, n.Err)
	assert.True(t, ValidCouponCode(n.Coupon), "code is still shown: %q", n.Coupon)
	assert.Contains(t, n.Text, "Coupon Generation Error")
}

func TestReporterScoreFailureOnLoss(t *testing.T) {
	rec := &fakeRecorder{scoreErr: errors.New("disk full")}
	r := NewReporter(rec, logging.Discard())

	r.Report(Outcome{Score: 100})
	n := <-r.Notices()
	r.Close()

	assert.Error(t, n.Err)
	assert.Empty(t, n.Coupon)
}

func TestReporterWithoutStore(t *testing.T) {
	r := NewReporter(nil, logging.Discard())
	r.Report(Outcome{Score: 2000, Won: true})
	n := <-r.Notices()
	r.Close()

	assert.Error(t, n.Err)
	assert.NotEmpty(t, n.Coupon)
}

func TestReporterNeverBlocks(t *testing.T) {
	rec := &fakeRecorder{block: make(chan struct{})}
	r := NewReporter(rec, logging.Discard())

	accepted := 0
	for range queueSize * 3 {
		if r.Report(Outcome{Score: 10}) {
			accepted++
		}
	}
	assert.Less(t, accepted, queueSize*3, "a stuck store must not block Report")
	assert.GreaterOrEqual(t, accepted, queueSize)

	close(rec.block)
	r.Close()
	assert.Len(t, rec.scores, accepted)

	assert.False(t, r.Report(Outcome{Score: 10}), "Report after Close")
	r.Close()
}

func TestReporterWithStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "outcome.db"))
	require.NoError(t, err)
	defer store.Close()

	r := NewReporter(store, logging.Discard())
	r.Report(Outcome{GameID: "tetris", Player: "ann", Email: "ann@example.com", Score: 1100, Won: true, Level: 2, Lines: 11})
	n := <-r.Notices()
	r.Close()
	require.NoError(t, n.Err)

	c, err := store.CouponByCode(n.Coupon)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", c.UserEmail)
	assert.False(t, c.Used)

	scores, err := store.TopScores("tetris", 5)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.True(t, scores[0].Won)
}

func TestNewCouponCode(t *testing.T) {
	seen := make(map[string]bool)
	for range 200 {
		code := NewCouponCode()
		require.True(t, ValidCouponCode(code), "bad code %q", code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 190, "codes should rarely repeat")

	assert.False(t, ValidCouponCode("OUTWIT-AI-abcde"))
	assert.False(t, ValidCouponCode("OUTWIT-AI-ABCDEF"))
	assert.False(t, ValidCouponCode("COUPON-ABCDE"))
}
