package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"beacon-attendance/modules/notification/entity"

	"github.com/google/uuid"
)

type fakeSource struct {
	meetings   []entity.UpcomingMeeting
	recipients map[uuid.UUID][]entity.Recipient
	listErr    error
	panicWith  any
	listCalls  int
}

func (f *fakeSource) ListStartingBetween(_ context.Context, from, to time.Time) ([]entity.UpcomingMeeting, error) {
	f.listCalls++
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.UpcomingMeeting
	for _, m := range f.meetings {
		if !m.StartTime.Before(from) && m.StartTime.Before(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeSource) ListRecipients(_ context.Context, meetingID uuid.UUID) ([]entity.Recipient, error) {
	return f.recipients[meetingID], nil
}

type fakeSender struct {
	sent []PushMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg PushMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type fakeInbox struct {
	rows []*entity.Notification
}

func (f *fakeInbox) Create(_ context.Context, n *entity.Notification) error {
	f.rows = append(f.rows, n)
	return nil
}

var baseNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestNotifier(src *fakeSource, snd *fakeSender, inbox *fakeInbox, now *time.Time) *Notifier {
	n := NewNotifier(src, snd, inbox, NewNotifiedSet(), 30*time.Second, 30*time.Minute)
	n.now = func() time.Time { return *now }
	return n
}

func meetingAt(start time.Time, d time.Duration) entity.UpcomingMeeting {
	end := start.Add(d)
	return entity.UpcomingMeeting{ID: uuid.New(), Title: "Weekly sync", StartTime: start, EndTime: &end}
}

func TestNotifier_FiresOncePerMeeting(t *testing.T) {
	now := baseNow
	m := meetingAt(now.Add(30*time.Minute), time.Hour)
	src := &fakeSource{
		meetings: []entity.UpcomingMeeting{m},
		recipients: map[uuid.UUID][]entity.Recipient{
			m.ID: {{UserID: uuid.New(), PlayerID: "p1"}, {UserID: uuid.New(), PlayerID: "p2"}},
		},
	}
	snd := &fakeSender{}
	inbox := &fakeInbox{}
	n := newTestNotifier(src, snd, inbox, &now)

	if got := n.Tick(context.Background()); got != 1 {
		t.Fatalf("first tick sent %d, want 1", got)
	}
	now = now.Add(30 * time.Second)
	if got := n.Tick(context.Background()); got != 0 {
		t.Fatalf("second tick sent %d, want 0", got)
	}

	if len(snd.sent) != 1 {
		t.Fatalf("expected one push event, got %d", len(snd.sent))
	}
	msg := snd.sent[0]
	if len(msg.PlayerIDs) != 2 {
		t.Errorf("expected batch of 2 player ids, got %v", msg.PlayerIDs)
	}
	if msg.Title != "Upcoming meeting: Weekly sync" || msg.Message != "The meeting starts in 30 minutes." {
		t.Errorf("unexpected message %q / %q", msg.Title, msg.Message)
	}
	if msg.Data["type"] != entity.TypeMeetingStarting {
		t.Errorf("unexpected data %v", msg.Data)
	}
	if len(inbox.rows) != 2 {
		t.Errorf("expected one inbox row per recipient, got %d", len(inbox.rows))
	}
	if inbox.rows[0].MeetingID == nil || *inbox.rows[0].MeetingID != m.ID {
		t.Errorf("inbox row not linked to meeting")
	}
}

func TestNotifier_Window(t *testing.T) {
	now := baseNow
	inside := meetingAt(now.Add(29*time.Minute), time.Hour)
	edge := meetingAt(now.Add(31*time.Minute), time.Hour)
	early := meetingAt(now.Add(29*time.Minute-time.Second), time.Hour)

	src := &fakeSource{
		meetings:   []entity.UpcomingMeeting{inside, edge, early},
		recipients: map[uuid.UUID][]entity.Recipient{},
	}
	for _, m := range src.meetings {
		src.recipients[m.ID] = []entity.Recipient{{UserID: uuid.New(), PlayerID: "p-" + m.ID.String()}}
	}
	snd := &fakeSender{}
	n := newTestNotifier(src, snd, nil, &now)

	from, to := n.Window(now)
	if !from.Equal(now.Add(29*time.Minute)) || !to.Equal(now.Add(31*time.Minute)) {
		t.Fatalf("unexpected window [%v, %v)", from, to)
	}

	if got := n.Tick(context.Background()); got != 1 {
		t.Fatalf("sent %d, want 1", got)
	}
	if snd.sent[0].Data["meeting_id"] != inside.ID.String() {
		t.Errorf("notified the wrong meeting: %v", snd.sent[0].Data)
	}
}

func TestNotifier_NoDevicesLeavesMeetingUnmarked(t *testing.T) {
	now := baseNow
	m := meetingAt(now.Add(30*time.Minute), time.Hour)
	src := &fakeSource{
		meetings: []entity.UpcomingMeeting{m},
		recipients: map[uuid.UUID][]entity.Recipient{
			m.ID: {{UserID: uuid.New(), PlayerID: ""}},
		},
	}
	snd := &fakeSender{}
	n := newTestNotifier(src, snd, nil, &now)

	if got := n.Tick(context.Background()); got != 0 {
		t.Fatalf("sent %d, want 0", got)
	}
	if n.notified.Contains(m.ID) {
		t.Fatal("meeting without devices must not be marked notified")
	}

	src.recipients[m.ID] = []entity.Recipient{{UserID: uuid.New(), PlayerID: "p1"}}
	now = now.Add(30 * time.Second)
	if got := n.Tick(context.Background()); got != 1 {
		t.Fatalf("sent %d after device registration, want 1", got)
	}
}

func TestNotifier_SendFailureStillMarks(t *testing.T) {
	now := baseNow
	m := meetingAt(now.Add(30*time.Minute), time.Hour)
	src := &fakeSource{
		meetings:   []entity.UpcomingMeeting{m},
		recipients: map[uuid.UUID][]entity.Recipient{m.ID: {{UserID: uuid.New(), PlayerID: "p1"}}},
	}
	snd := &fakeSender{err: stderrors.New("provider down")}
	n := newTestNotifier(src, snd, nil, &now)

	n.Tick(context.Background())
	n.Tick(context.Background())

	if len(snd.sent) != 1 {
		t.Fatalf("failed delivery must not be retried, got %d sends", len(snd.sent))
	}
}

func TestNotifier_EvictsEndedMeetings(t *testing.T) {
	now := baseNow
	m := meetingAt(now.Add(30*time.Minute), time.Hour)
	src := &fakeSource{
		meetings:   []entity.UpcomingMeeting{m},
		recipients: map[uuid.UUID][]entity.Recipient{m.ID: {{UserID: uuid.New(), PlayerID: "p1"}}},
	}
	n := newTestNotifier(src, &fakeSender{}, nil, &now)

	n.Tick(context.Background())
	if n.notified.Len() != 1 {
		t.Fatalf("expected one tracked meeting, got %d", n.notified.Len())
	}

	now = m.EndTime.Add(time.Second)
	n.Tick(context.Background())
	if n.notified.Len() != 0 {
		t.Fatalf("expected ended meeting to be evicted, %d left", n.notified.Len())
	}
}

func TestNotifier_SwallowsFailures(t *testing.T) {
	now := baseNow

	t.Run("source error", func(t *testing.T) {
		n := newTestNotifier(&fakeSource{listErr: stderrors.New("db down")}, &fakeSender{}, nil, &now)
		if got := n.Tick(context.Background()); got != 0 {
			t.Fatalf("sent %d, want 0", got)
		}
	})

	t.Run("panic", func(t *testing.T) {
		src := &fakeSource{panicWith: "boom"}
		n := newTestNotifier(src, &fakeSender{}, nil, &now)
		n.Tick(context.Background())
		// the guard must be released after a recovered panic
		n.Tick(context.Background())
		if src.listCalls != 2 {
			t.Fatalf("expected two sweeps, got %d", src.listCalls)
		}
	})
}

func TestNotifier_TickIsNotReentrant(t *testing.T) {
	now := baseNow
	src := &fakeSource{}
	n := newTestNotifier(src, &fakeSender{}, nil, &now)

	n.running.Lock()
	got := n.Tick(context.Background())
	n.running.Unlock()

	if got != 0 || src.listCalls != 0 {
		t.Fatalf("overlapping tick must be skipped, sent=%d calls=%d", got, src.listCalls)
	}
}

func TestNotifier_RunStopsOnCancel(t *testing.T) {
	now := baseNow
	src := &fakeSource{}
	n := newTestNotifier(src, &fakeSender{}, nil, &now)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
