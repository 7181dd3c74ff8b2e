// Package ics формирует документы iCalendar из уведомлений о документах.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"calendarvault/internal/calendar/domain"
	"calendarvault/internal/calendar/domain/entities"
)

// Постоянные части документа.
const (
	Version    = "2.0"
	ProductID  = "-//Validity.Red//Document expiration calendar 1.0//EN"
	ProductTag = "validity.extr.app"

	// EventDuration - длительность каждого события.
	EventDuration = time.Hour

	timestampLayout = "20060102T150405"
)

// emptyDocument - календарь без событий. go-ical не кодирует VCALENDAR без компонентов,
// поэтому заголовок повторяет его вывод: свойства в алфавитном порядке.
const emptyDocument = "BEGIN:VCALENDAR\r\n" +
	"PRODID:" + ProductID + "\r\n" +
	"VERSION:" + Version + "\r\n" +
	"END:VCALENDAR\r\n"

// EventWindow форматирует начало и конец события по местным часам пояса loc.
// Суффикс Z сохраняется ради совместимости с уже выданными календарями.
func EventWindow(instant time.Time, loc *time.Location) (start, end string) {
	local := instant.In(loc)
	return formatStamp(local), formatStamp(local.Add(EventDuration))
}

func formatStamp(t time.Time) string {
	return t.Format(timestampLayout) + "Z"
}

// Renderer превращает уведомления в календарь. Не имеет состояния.
type Renderer struct{}

// NewRenderer создает Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render строит календарь с одним событием на уведомление в порядке входа.
// loc должен быть получен через domain.LoadTimezone.
func (r *Renderer) Render(notifications []entities.Notification, loc *time.Location) (string, error) {
	if loc == nil {
		return "", fmt.Errorf("%w: nil location", domain.ErrInvalidTimezone)
	}
	if len(notifications) == 0 {
		return emptyDocument, nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, Version)
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, n := range notifications {
		cal.Children = append(cal.Children, newEvent(n, loc).Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRender, err)
	}
	return buf.String(), nil
}

func newEvent(n entities.Notification, loc *time.Location) *ical.Event {
	start, end := EventWindow(n.NotificationDate, loc)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, n.NotificationID)
	setRaw(event.Props, ical.PropDateTimeStamp, start)
	setRaw(event.Props, ical.PropDateTimeStart, start)
	setRaw(event.Props, ical.PropDateTimeEnd, end)
	event.Props.SetText(ical.PropSummary, n.DocumentTitle)
	event.Props.SetText(ical.PropDescription, n.DocumentTitle+"\n"+ProductTag)
	return event
}

// setRaw записывает значение без экранирования и без параметра TZID.
func setRaw(props ical.Props, name, value string) {
	prop := ical.NewProp(name)
	prop.Value = value
	props.Set(prop)
}
