package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"beacon-attendance/core/constants"
	coreEntity "beacon-attendance/core/entity"
	"beacon-attendance/core/logger"
	"beacon-attendance/modules/notification/entity"

	"github.com/google/uuid"
)

// MeetingSource is what the notifier reads on every sweep.
type MeetingSource interface {
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]entity.UpcomingMeeting, error)
	ListRecipients(ctx context.Context, meetingID uuid.UUID) ([]entity.Recipient, error)
}

// Inbox stores the in-app copy of a reminder.
type Inbox interface {
	Create(ctx context.Context, notification *entity.Notification) error
}

// Notifier periodically reminds invitees of meetings that start in LeadTime.
type Notifier struct {
	source   MeetingSource
	sender   Sender
	inbox    Inbox
	notified *NotifiedSet

	interval time.Duration
	lead     time.Duration
	now      func() time.Time

	running sync.Mutex
}

// NewNotifier builds a notifier. inbox may be nil, in which case only push
// events are emitted.
func NewNotifier(source MeetingSource, sender Sender, inbox Inbox, notified *NotifiedSet, interval, lead time.Duration) *Notifier {
	if notified == nil {
		notified = NewNotifiedSet()
	}
	if interval <= 0 {
		interval = constants.DefaultNotifierIntervalSecond * time.Second
	}
	if lead <= 0 {
		lead = constants.DefaultNotifierLeadMinutes * time.Minute
	}
	return &Notifier{
		source:   source,
		sender:   sender,
		inbox:    inbox,
		notified: notified,
		interval: interval,
		lead:     lead,
		now:      time.Now,
	}
}

// Run sweeps once immediately and then on every interval until ctx is done.
func (n *Notifier) Run(ctx context.Context) {
	logger.Info("Notifier:Run", "interval", n.interval.String(), "lead", n.lead.String())

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	n.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Notifier:Run:Stopped")
			return
		case <-ticker.C:
			n.Tick(ctx)
		}
	}
}

// Window returns the half-open start range [now+lead-1m, now+lead+1m).
func (n *Notifier) Window(now time.Time) (time.Time, time.Time) {
	tolerance := constants.NotificationWindowTolerance
	return now.Add(n.lead - tolerance), now.Add(n.lead + tolerance)
}

// Tick runs one sweep and returns the number of meetings notified. A tick
// that is already in progress makes concurrent calls return immediately.
// Errors and panics are logged, never propagated.
func (n *Notifier) Tick(ctx context.Context) (sent int) {
	if !n.running.TryLock() {
		logger.Warn("Notifier:Tick:Skipped", "reason", "previous tick still running")
		return 0
	}
	defer n.running.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Notifier:Tick:Panic", "panic", fmt.Sprint(r))
		}
	}()

	now := n.now().UTC()
	from, to := n.Window(now)

	meetings, err := n.source.ListStartingBetween(ctx, from, to)
	if err != nil {
		logger.Error("Notifier:Tick:ListStartingBetween", err)
		return 0
	}

	for _, m := range meetings {
		if n.notified.Contains(m.ID) {
			continue
		}

		ok, err := n.notifyMeeting(ctx, m)
		if err != nil {
			logger.Error("Notifier:Tick:NotifyMeeting", "meeting_id", m.ID, "error", err)
			return sent
		}
		if ok {
			sent++
		}
	}

	if evicted := n.notified.EvictEnded(now); evicted > 0 {
		logger.Debug("Notifier:Tick:Evicted", "count", evicted)
	}
	return sent
}

// notifyMeeting reports whether a push event was emitted for m. Meetings
// without any registered device are left unmarked.
func (n *Notifier) notifyMeeting(ctx context.Context, m entity.UpcomingMeeting) (bool, error) {
	recipients, err := n.source.ListRecipients(ctx, m.ID)
	if err != nil {
		return false, err
	}

	playerIDs := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r.PlayerID != "" {
			playerIDs = append(playerIDs, r.PlayerID)
		}
	}
	if len(playerIDs) == 0 {
		logger.Debug("Notifier:NotifyMeeting:NoDevices", "meeting_id", m.ID)
		return false, nil
	}

	minutes := int(n.lead / time.Minute)
	msg := PushMessage{
		PlayerIDs: playerIDs,
		Title:     fmt.Sprintf("Upcoming meeting: %s", m.Title),
		Message:   fmt.Sprintf("The meeting starts in %d minutes.", minutes),
		Data: map[string]any{
			"type":           entity.TypeMeetingStarting,
			"meeting_id":     m.ID.String(),
			"meeting_title":  m.Title,
			"minutes_before": minutes,
		},
	}

	// Delivery is fire-and-forget: a failed send is logged and the meeting
	// still counts as notified.
	if err := n.sender.Send(ctx, msg); err != nil {
		logger.Error("Notifier:NotifyMeeting:Send", "meeting_id", m.ID, "error", err)
	}

	until := m.StartTime
	if m.EndTime != nil {
		until = *m.EndTime
	}
	n.notified.Add(m.ID, until)

	n.storeInbox(ctx, m, recipients, msg)
	logger.Info("Notifier:NotifyMeeting", "meeting_id", m.ID, "recipients", len(playerIDs))
	return true, nil
}

func (n *Notifier) storeInbox(ctx context.Context, m entity.UpcomingMeeting, recipients []entity.Recipient, msg PushMessage) {
	if n.inbox == nil {
		return
	}
	now := n.now().UTC()
	meetingID := m.ID
	for _, r := range recipients {
		notif := &entity.Notification{
			UserID:    r.UserID,
			MeetingID: &meetingID,
			Title:     msg.Title,
			Message:   msg.Message,
			Type:      entity.TypeMeetingStarting,
			Data:      entity.JSONB(msg.Data),
			BaseEntity: coreEntity.BaseEntity{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if err := n.inbox.Create(ctx, notif); err != nil {
			logger.Warn("Notifier:StoreInbox", "meeting_id", m.ID, "user_id", r.UserID, "error", err)
		}
	}
}
