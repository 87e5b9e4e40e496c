package dragdrop

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ajramos/labelpanel/internal/dom"
	"github.com/ajramos/labelpanel/internal/identity"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeApplier struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeApplier) ApplyLabel(_ context.Context, accountKey, messageID, labelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, accountKey+"/"+messageID+"/"+labelID)
	return f.err
}

func (f *fakeApplier) applied() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (f *fakeNotifier) Success(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes = append(f.successes, msg)
}

func (f *fakeNotifier) Failure(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, msg)
}

func (f *fakeNotifier) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.successes), len(f.failures)
}

func snapshot(t *testing.T, html, pageURL string) *dom.Snapshot {
	t.Helper()
	snap, err := dom.ParseString(html, pageURL)
	require.NoError(t, err)
	return snap
}

func newTestController(applier Applier, notifier Notifier) (*Controller, *[]ApplyOutcome, *sync.Mutex) {
	c := NewController(identity.NewResolver(nil), applier, notifier, func() string { return "0" }, nil, nil)
	var mu sync.Mutex
	outcomes := &[]ApplyOutcome{}
	c.OnResult = func(o ApplyOutcome) {
		mu.Lock()
		defer mu.Unlock()
		*outcomes = append(*outcomes, o)
	}
	return c, outcomes, &mu
}

const rowHTML = `<table><tr role="row" data-message-id="18c9a5f2e3b4d6a7"><td><span class="subject">hi</span></td></tr></table>`

func dragOverRow(t *testing.T, c *Controller, snap *dom.Snapshot) {
	t.Helper()
	allowed := c.DragOver(DragOverEvent{
		Types:    []string{MimeLabelID, MimeLabelName},
		Target:   snap.Find("span.subject"),
		Snapshot: snap,
	})
	require.True(t, allowed)
}

func TestController_DragOver_ForeignPayloadIgnored(t *testing.T) {
	snap := snapshot(t, rowHTML, "")
	c, _, _ := newTestController(&fakeApplier{}, &fakeNotifier{})

	allowed := c.DragOver(DragOverEvent{
		Types:    []string{"text/plain"},
		Target:   snap.Find("span.subject"),
		Snapshot: snap,
	})
	assert.False(t, allowed)
	assert.Equal(t, 0, snap.Find("."+HighlightClass).Length())
}

func TestController_DragOver_HighlightsRow(t *testing.T) {
	snap := snapshot(t, rowHTML, "")
	c, _, _ := newTestController(&fakeApplier{}, &fakeNotifier{})

	dragOverRow(t, c, snap)
	assert.True(t, snap.Find(`tr[role="row"]`).HasClass(HighlightClass))

	// Re-entering the same target does not re-add or flicker
	dragOverRow(t, c, snap)
	assert.True(t, snap.Find(`tr[role="row"]`).HasClass(HighlightClass))
}

func TestController_DragOver_OffTargetClearsHighlight(t *testing.T) {
	snap := snapshot(t, rowHTML+`<div class="outside">x</div>`, "")
	c, _, _ := newTestController(&fakeApplier{}, &fakeNotifier{})

	dragOverRow(t, c, snap)
	require.True(t, snap.Find(`tr[role="row"]`).HasClass(HighlightClass))

	allowed := c.DragOver(DragOverEvent{
		Types:    []string{MimeLabelID},
		Target:   snap.Find("div.outside"),
		Snapshot: snap,
	})
	assert.False(t, allowed)
	assert.False(t, snap.Find(`tr[role="row"]`).HasClass(HighlightClass))
}

func TestController_DragLeave_ChildDoesNotFlicker(t *testing.T) {
	snap := snapshot(t, rowHTML, "")
	c, _, _ := newTestController(&fakeApplier{}, &fakeNotifier{})
	dragOverRow(t, c, snap)

	// Pointer moved onto a child of the highlighted row: keep the highlight
	c.DragLeave(DragLeaveEvent{Related: snap.Find("span.subject")})
	assert.True(t, snap.Find(`tr[role="row"]`).HasClass(HighlightClass))

	// Pointer actually left: clear it
	c.DragLeave(DragLeaveEvent{Related: nil})
	assert.False(t, snap.Find(`tr[role="row"]`).HasClass(HighlightClass))
}

func TestController_DragLeave_TargetItselfKeepsHighlight(t *testing.T) {
	// Crossing from a child back onto the row fires dragleave with the row
	// itself as the related element. Containment is inclusive: the target
	// counts as inside itself, so the highlight must survive.
	snap := snapshot(t, rowHTML, "")
	c, _, _ := newTestController(&fakeApplier{}, &fakeNotifier{})
	dragOverRow(t, c, snap)

	c.DragLeave(DragLeaveEvent{Related: snap.Find(`tr[role="row"]`)})
	assert.True(t, snap.Find(`tr[role="row"]`).HasClass(HighlightClass))
}

func TestController_Drop_WithoutHighlightIsNoop(t *testing.T) {
	// A drop that never passed over a valid target must not resolve,
	// notify, or call the API.
	snap := snapshot(t, rowHTML, "")
	applier := &fakeApplier{}
	notifier := &fakeNotifier{}
	c, outcomes, mu := newTestController(applier, notifier)

	c.Drop(context.Background(), DropEvent{
		Payload:  Payload{MimeLabelID: "Label_7", MimeLabelName: "Work"},
		Snapshot: snap,
	})
	c.Wait()

	assert.Empty(t, applier.applied())
	s, f := notifier.counts()
	assert.Zero(t, s)
	assert.Zero(t, f)
	mu.Lock()
	assert.Empty(t, *outcomes)
	mu.Unlock()
}

func TestController_Drop_OptimisticSuccess(t *testing.T) {
	snap := snapshot(t, rowHTML, "")
	applier := &fakeApplier{}
	notifier := &fakeNotifier{}
	c, outcomes, mu := newTestController(applier, notifier)
	dragOverRow(t, c, snap)

	c.Drop(context.Background(), DropEvent{
		Payload:  Payload{MimeLabelID: "Label_7", MimeLabelName: "Work"},
		Snapshot: snap,
	})
	c.Wait()

	assert.Equal(t, []string{"0/18c9a5f2e3b4d6a7/Label_7"}, applier.applied())
	s, f := notifier.counts()
	assert.Equal(t, 2, s) // optimistic "applying" plus confirmation
	assert.Zero(t, f)
	mu.Lock()
	assert.Equal(t, []ApplyOutcome{ApplyPending, ApplyConfirmed}, *outcomes)
	mu.Unlock()

	// Highlight is gone as soon as the drop lands
	assert.False(t, snap.Find(`tr[role="row"]`).HasClass(HighlightClass))
}

func TestController_Drop_FailureCorrectsOptimism(t *testing.T) {
	snap := snapshot(t, rowHTML, "")
	applier := &fakeApplier{err: errors.New("remote unavailable")}
	notifier := &fakeNotifier{}
	c, outcomes, mu := newTestController(applier, notifier)
	dragOverRow(t, c, snap)

	c.Drop(context.Background(), DropEvent{
		Payload:  Payload{MimeLabelID: "Label_7", MimeLabelName: "Work"},
		Snapshot: snap,
	})
	c.Wait()

	s, f := notifier.counts()
	assert.Equal(t, 1, s) // the optimistic indication
	assert.Equal(t, 1, f) // the correction
	mu.Lock()
	assert.Equal(t, []ApplyOutcome{ApplyPending, ApplyCorrected}, *outcomes)
	mu.Unlock()
}

func TestController_Drop_EmptyLabelIDIsNoop(t *testing.T) {
	snap := snapshot(t, rowHTML, "")
	applier := &fakeApplier{}
	c, _, _ := newTestController(applier, &fakeNotifier{})
	dragOverRow(t, c, snap)

	c.Drop(context.Background(), DropEvent{
		Payload:  Payload{MimeLabelName: "Work"},
		Snapshot: snap,
	})
	c.Wait()

	assert.Empty(t, applier.applied())
}

func TestController_Drop_UnresolvableRowFails(t *testing.T) {
	// The row highlights (it is a row) but carries no recoverable ID
	snap := snapshot(t, `<table><tr role="row"><td><span class="subject">hi</span></td></tr></table>`, "")
	applier := &fakeApplier{}
	notifier := &fakeNotifier{}
	c, outcomes, mu := newTestController(applier, notifier)
	dragOverRow(t, c, snap)

	c.Drop(context.Background(), DropEvent{
		Payload:  Payload{MimeLabelID: "Label_7", MimeLabelName: "Work"},
		Snapshot: snap,
	})
	c.Wait()

	assert.Empty(t, applier.applied())
	s, f := notifier.counts()
	assert.Zero(t, s)
	assert.Equal(t, 1, f)
	mu.Lock()
	assert.Empty(t, *outcomes)
	mu.Unlock()
}

func TestController_Drop_RefreshAfterConfirm(t *testing.T) {
	snap := snapshot(t, rowHTML, "")
	var refreshed sync.WaitGroup
	refreshed.Add(1)
	c := NewController(identity.NewResolver(nil), &fakeApplier{}, nil,
		func() string { return "0" }, func() { refreshed.Done() }, nil)
	dragOverRow(t, c, snap)

	c.Drop(context.Background(), DropEvent{
		Payload:  Payload{MimeLabelID: "Label_7", MimeLabelName: "Work"},
		Snapshot: snap,
	})
	c.Wait()
	refreshed.Wait()
}
