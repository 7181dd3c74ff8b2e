package calendarv1

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ErrUnexpectedMessage возвращается при попытке преобразовать сообщение чужого типа.
var ErrUnexpectedMessage = errors.New("unexpected message type")

// CalendarEntity - уведомление о сроке действия документа.
type CalendarEntity struct {
	DocumentID       string
	NotificationID   string
	DocumentTitle    string
	NotificationDate *timestamppb.Timestamp
	ExpiresAt        *timestamppb.Timestamp
}

// CreateCalendarRequest - запрос на создание или замену календаря.
type CreateCalendarRequest struct {
	CalendarID       string
	CalendarIV       []byte
	CalendarEntities []*CalendarEntity
	Timezone         string
}

// CreateCalendarResponse - пустой ответ на CreateCalendar.
type CreateCalendarResponse struct{}

// GetCalendarRequest - запрос на чтение календаря.
type GetCalendarRequest struct {
	CalendarID string
	CalendarIV []byte
}

// GetCalendarResponse содержит расшифрованный документ iCalendar.
type GetCalendarResponse struct {
	Calendar []byte
}

// GetNotificationDate возвращает дату уведомления или nil.
func (e *CalendarEntity) GetNotificationDate() *timestamppb.Timestamp {
	if e == nil {
		return nil
	}
	return e.NotificationDate
}

// GetCalendarEntities возвращает уведомления запроса или nil.
func (r *CreateCalendarRequest) GetCalendarEntities() []*CalendarEntity {
	if r == nil {
		return nil
	}
	return r.CalendarEntities
}

// GetCalendar возвращает содержимое календаря или nil.
func (r *GetCalendarResponse) GetCalendar() []byte {
	if r == nil {
		return nil
	}
	return r.Calendar
}

// ToMessage преобразует запрос в сообщение для передачи по сети.
func (r *CreateCalendarRequest) ToMessage() *dynamicpb.Message {
	m := dynamicpb.NewMessage(createCalendarRequestDesc)
	if r == nil {
		return m
	}

	setString(m, "calendar_id", r.CalendarID)
	setBytes(m, "calendar_iv", r.CalendarIV)
	setString(m, "timezone", r.Timezone)

	if len(r.CalendarEntities) > 0 {
		list := m.Mutable(fieldByName(m, "calendar_entities")).List()
		for _, entity := range r.CalendarEntities {
			elem := list.NewElement()
			entity.fill(elem.Message())
			list.Append(elem)
		}
	}
	return m
}

// ToMessage преобразует ответ в сообщение для передачи по сети.
func (r *CreateCalendarResponse) ToMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(createCalendarResponseDesc)
}

// ToMessage преобразует запрос в сообщение для передачи по сети.
func (r *GetCalendarRequest) ToMessage() *dynamicpb.Message {
	m := dynamicpb.NewMessage(getCalendarRequestDesc)
	if r == nil {
		return m
	}
	setString(m, "calendar_id", r.CalendarID)
	setBytes(m, "calendar_iv", r.CalendarIV)
	return m
}

// ToMessage преобразует ответ в сообщение для передачи по сети.
func (r *GetCalendarResponse) ToMessage() *dynamicpb.Message {
	m := dynamicpb.NewMessage(getCalendarResponseDesc)
	if r == nil {
		return m
	}
	setBytes(m, "calendar", r.Calendar)
	return m
}

// ToMessage преобразует уведомление в отдельное сообщение CalendarEntity.
func (e *CalendarEntity) ToMessage() *dynamicpb.Message {
	m := dynamicpb.NewMessage(calendarEntityDesc)
	e.fill(m)
	return m
}

func (e *CalendarEntity) fill(m protoreflect.Message) {
	if e == nil {
		return
	}
	setString(m, "document_id", e.DocumentID)
	setString(m, "notification_id", e.NotificationID)
	setString(m, "document_title", e.DocumentTitle)
	setTimestamp(m, "notification_date", e.NotificationDate)
	setTimestamp(m, "expires_at", e.ExpiresAt)
}

// CreateCalendarRequestFromMessage читает запрос из сообщения.
func CreateCalendarRequestFromMessage(msg proto.Message) (*CreateCalendarRequest, error) {
	m, err := expect(msg, CreateCalendarRequestName)
	if err != nil {
		return nil, err
	}

	req := &CreateCalendarRequest{
		CalendarID: m.Get(fieldByName(m, "calendar_id")).String(),
		CalendarIV: cloneBytes(m.Get(fieldByName(m, "calendar_iv")).Bytes()),
		Timezone:   m.Get(fieldByName(m, "timezone")).String(),
	}

	list := m.Get(fieldByName(m, "calendar_entities")).List()
	if list.Len() > 0 {
		req.CalendarEntities = make([]*CalendarEntity, 0, list.Len())
		for i := range list.Len() {
			req.CalendarEntities = append(req.CalendarEntities, entityFromReflect(list.Get(i).Message()))
		}
	}
	return req, nil
}

// CreateCalendarResponseFromMessage читает ответ из сообщения.
func CreateCalendarResponseFromMessage(msg proto.Message) (*CreateCalendarResponse, error) {
	if _, err := expect(msg, CreateCalendarResponseName); err != nil {
		return nil, err
	}
	return &CreateCalendarResponse{}, nil
}

// GetCalendarRequestFromMessage читает запрос из сообщения.
func GetCalendarRequestFromMessage(msg proto.Message) (*GetCalendarRequest, error) {
	m, err := expect(msg, GetCalendarRequestName)
	if err != nil {
		return nil, err
	}
	return &GetCalendarRequest{
		CalendarID: m.Get(fieldByName(m, "calendar_id")).String(),
		CalendarIV: cloneBytes(m.Get(fieldByName(m, "calendar_iv")).Bytes()),
	}, nil
}

// GetCalendarResponseFromMessage читает ответ из сообщения.
func GetCalendarResponseFromMessage(msg proto.Message) (*GetCalendarResponse, error) {
	m, err := expect(msg, GetCalendarResponseName)
	if err != nil {
		return nil, err
	}
	return &GetCalendarResponse{
		Calendar: cloneBytes(m.Get(fieldByName(m, "calendar")).Bytes()),
	}, nil
}

// CalendarEntityFromMessage читает уведомление из сообщения.
func CalendarEntityFromMessage(msg proto.Message) (*CalendarEntity, error) {
	m, err := expect(msg, CalendarEntityName)
	if err != nil {
		return nil, err
	}
	return entityFromReflect(m), nil
}

func entityFromReflect(m protoreflect.Message) *CalendarEntity {
	return &CalendarEntity{
		DocumentID:       m.Get(fieldByName(m, "document_id")).String(),
		NotificationID:   m.Get(fieldByName(m, "notification_id")).String(),
		DocumentTitle:    m.Get(fieldByName(m, "document_title")).String(),
		NotificationDate: getTimestamp(m, "notification_date"),
		ExpiresAt:        getTimestamp(m, "expires_at"),
	}
}

func expect(msg proto.Message, name protoreflect.FullName) (protoreflect.Message, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil, want %s", ErrUnexpectedMessage, name)
	}
	m := msg.ProtoReflect()
	if got := m.Descriptor().FullName(); got != name {
		return nil, fmt.Errorf("%w: %s, want %s", ErrUnexpectedMessage, got, name)
	}
	return m, nil
}

func fieldByName(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return m.Descriptor().Fields().ByName(name)
}

func setString(m protoreflect.Message, name protoreflect.Name, v string) {
	if v == "" {
		return
	}
	m.Set(fieldByName(m, name), protoreflect.ValueOfString(v))
}

func setBytes(m protoreflect.Message, name protoreflect.Name, v []byte) {
	if len(v) == 0 {
		return
	}
	m.Set(fieldByName(m, name), protoreflect.ValueOfBytes(cloneBytes(v)))
}

func setTimestamp(m protoreflect.Message, name protoreflect.Name, ts *timestamppb.Timestamp) {
	if ts == nil {
		return
	}
	sub := m.Mutable(fieldByName(m, name)).Message()
	fields := sub.Descriptor().Fields()
	sub.Set(fields.ByName("seconds"), protoreflect.ValueOfInt64(ts.GetSeconds()))
	sub.Set(fields.ByName("nanos"), protoreflect.ValueOfInt32(ts.GetNanos()))
}

func getTimestamp(m protoreflect.Message, name protoreflect.Name) *timestamppb.Timestamp {
	fd := fieldByName(m, name)
	if !m.Has(fd) {
		return nil
	}
	sub := m.Get(fd).Message()
	fields := sub.Descriptor().Fields()
	return &timestamppb.Timestamp{
		Seconds: sub.Get(fields.ByName("seconds")).Int(),
		Nanos:   int32(sub.Get(fields.ByName("nanos")).Int()),
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
