package notify

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"memoboard/application/ports"
)

type recordingSink struct {
	mu        sync.Mutex
	shown     []ports.Notification
	dismissed int
}

func (r *recordingSink) Show(n ports.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, n)
}

func (r *recordingSink) Dismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dismissed++
}

func (r *recordingSink) dismissals() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dismissed
}

func TestCenter_LatestOnly(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &recordingSink{}
	c := NewCenter(time.Hour, zap.NewNop(), sink)
	defer c.Close()

	c.Notify("Memo added", ports.SeveritySuccess)
	c.Notify("Failed to delete memo", ports.SeverityError)

	current, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "Failed to delete memo", current.Message)
	assert.Equal(t, ports.SeverityError, current.Severity)
	assert.Len(t, sink.shown, 2)
}

func TestCenter_AutoDismiss(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &recordingSink{}
	c := NewCenter(20*time.Millisecond, zap.NewNop(), sink)
	defer c.Close()

	c.Notify("Memos loaded", ports.SeverityInfo)

	assert.Eventually(t, func() bool {
		_, ok := c.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return sink.dismissals() == 1 }, time.Second, 5*time.Millisecond)
}

func TestCenter_ReplacementRestartsTimer(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &recordingSink{}
	c := NewCenter(300*time.Millisecond, zap.NewNop(), sink)
	defer c.Close()

	c.Notify("first", ports.SeverityInfo)
	time.Sleep(200 * time.Millisecond)
	c.Notify("second", ports.SeverityInfo)
	time.Sleep(200 * time.Millisecond)

	current, ok := c.Current()
	require.True(t, ok, "the replacement is still within its own interval")
	assert.Equal(t, "second", current.Message)
	assert.Equal(t, 0, sink.dismissals())
}

func TestCenter_CloseDropsLaterNotifications(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCenter(time.Hour, zap.NewNop())
	c.Notify("shown", ports.SeverityInfo)
	c.Close()
	c.Notify("dropped", ports.SeverityInfo)

	_, ok := c.Current()
	assert.False(t, ok)
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	sink.Show(ports.Notification{Message: "Memo added", Severity: ports.SeveritySuccess})
	sink.Dismiss()

	assert.Contains(t, buf.String(), "Memo added")
	assert.Contains(t, buf.String(), "✓")
}
