package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b9s/b9s/internal/pager"
)

func init() {
	RegisterAccessor(&NotificationRID, &NotificationAccessor{})
}

// Notification is one customer-facing announcement as returned by the backend.
type Notification struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Channel     string     `json:"channel"`  // "email", "push" or "sms"
	Audience    string     `json:"audience"` // "all", "segment:<name>"
	Status      string     `json:"status"`   // "draft", "scheduled" or "sent"
	ScheduledAt *time.Time `json:"scheduledAt"`
	SentAt      *time.Time `json:"sentAt"`
	CreatedAt   *time.Time `json:"createdAt"`
}

// NotificationAccessor is the DAO for customer notifications.
type NotificationAccessor struct {
	APIResource
}

// List returns one page of notifications.
func (n *NotificationAccessor) List(ctx context.Context, params pager.FetchParams) (*pager.Response[Object], error) {
	return listResource(ctx, &n.APIResource, params, notificationToObject)
}

// Get retrieves a single notification by id.
func (n *NotificationAccessor) Get(ctx context.Context, id string) (Object, error) {
	return getResource(ctx, &n.APIResource, id, notificationToObject)
}

// Update replaces a draft notification with an edited body.
func (n *NotificationAccessor) Update(ctx context.Context, id string, body map[string]interface{}) (Object, error) {
	return updateResource(ctx, &n.APIResource, id, body, notificationToObject)
}

// Send dispatches a draft or scheduled notification immediately.
func (n *NotificationAccessor) Send(ctx context.Context, id string) error {
	return actionResource(ctx, &n.APIResource, id, "send", nil)
}

// Delete removes a notification. Sent notifications are kept for audit
// unless force is set.
func (n *NotificationAccessor) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		obj, err := n.Get(ctx, id)
		if err != nil {
			return err
		}
		if obj.GetStatus() == "sent" {
			return fmt.Errorf("notification %s was already sent", id)
		}
	}
	return deleteResource(ctx, &n.APIResource, id)
}

// Describe returns a formatted description of the notification.
func (n *NotificationAccessor) Describe(ctx context.Context, id string) (string, error) {
	obj, err := n.Get(ctx, id)
	if err != nil {
		return "", err
	}

	note, ok := obj.GetRaw().(Notification)
	if !ok {
		return "", fmt.Errorf("invalid notification object")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Notification: %s\n", note.Title))
	sb.WriteString(fmt.Sprintf("ID: %s\n", note.ID))
	sb.WriteString(fmt.Sprintf("Status: %s\n", note.Status))
	sb.WriteString(fmt.Sprintf("Channel: %s\n", note.Channel))
	sb.WriteString(fmt.Sprintf("Audience: %s\n", note.Audience))
	if note.ScheduledAt != nil {
		sb.WriteString(fmt.Sprintf("Scheduled: %s\n", note.ScheduledAt.Format("2006-01-02 15:04:05")))
	}
	if note.SentAt != nil {
		sb.WriteString(fmt.Sprintf("Sent: %s\n", note.SentAt.Format("2006-01-02 15:04:05")))
	}
	if note.Body != "" {
		sb.WriteString(fmt.Sprintf("Body:\n%s\n", note.Body))
	}

	return sb.String(), nil
}

// ToJSON returns a JSON representation of the notification.
func (n *NotificationAccessor) ToJSON(ctx context.Context, id string) (string, error) {
	obj, err := n.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return toJSON(obj)
}

// notificationToObject wraps a notification into a generic Object.
func notificationToObject(note Notification) Object {
	return &BaseObject{
		ID:        note.ID,
		Name:      note.Title,
		Status:    note.Status,
		CreatedAt: note.CreatedAt,
		Raw:       note,
	}
}
