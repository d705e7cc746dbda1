package render

import (
	"fmt"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// Notification renders customer notifications
type Notification struct {
	Base
}

// Header returns the notification header
func (n *Notification) Header(env string) model1.Header {
	return model1.Header{
		{Name: "TITLE"},
		{Name: "CHANNEL"},
		{Name: "AUDIENCE", Attrs: model1.Attrs{Wide: true}},
		{Name: "STATUS"},
		{Name: "SCHEDULED", Attrs: model1.Attrs{Wide: true}},
		{Name: "SENT", Attrs: model1.Attrs{Wide: true}},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a notification to a row
func (n *Notification) Render(i any, env string, row *model1.Row) error {
	obj, ok := i.(dao.Object)
	if !ok {
		return fmt.Errorf("expected Object, got %T", i)
	}

	note, ok := obj.GetRaw().(dao.Notification)
	if !ok {
		return fmt.Errorf("expected Notification, got %T", obj.GetRaw())
	}

	row.ID = note.ID
	row.Fields = model1.Fields{
		Truncate(NA(note.Title), 50),
		NA(note.Channel),
		NA(note.Audience),
		note.Status,
		ToTimestamp(note.ScheduledAt),
		ToTimestamp(note.SentAt),
		ToAge(note.CreatedAt),
	}
	return nil
}

// ColorerFunc returns the notification colorer
func (n *Notification) ColorerFunc() model1.ColorerFunc {
	return func(env string, h model1.Header, re *model1.RowEvent) tcell.Color {
		statusIdx, ok := h.IndexOf("STATUS", true)
		if !ok || statusIdx >= len(re.Row.Fields) {
			return model1.DefaultColorer(env, h, re)
		}

		switch re.Row.Fields[statusIdx] {
		case StatusDraft:
			return model1.PendingColor
		case StatusScheduled:
			return model1.AddColor
		case StatusSent:
			return model1.CompletedColor
		default:
			return model1.StdColor
		}
	}
}
