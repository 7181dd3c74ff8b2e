// Package calendarv1 содержит схему gRPC API сервиса календарей.
//
// Дескрипторы строятся во время инициализации из описания в calendar.proto
// и регистрируются в protoregistry.GlobalFiles, поэтому пакет не требует protoc.
// Сообщения передаются по сети как dynamicpb.Message и преобразуются в
// типизированные структуры этого пакета.
package calendarv1

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	_ "google.golang.org/protobuf/types/known/timestamppb" // регистрирует google/protobuf/timestamp.proto
)

// Имена файла схемы и пакета.
const (
	ProtoFile    = "calendar/v1/calendar.proto"
	ProtoPackage = "calendar.v1"
	timestampDep = "google/protobuf/timestamp.proto"
	timestampRef = ".google.protobuf.Timestamp"
)

// Полные имена сообщений и сервиса.
const (
	CalendarEntityName         protoreflect.FullName = ProtoPackage + ".CalendarEntity"
	CreateCalendarRequestName  protoreflect.FullName = ProtoPackage + ".CreateCalendarRequest"
	CreateCalendarResponseName protoreflect.FullName = ProtoPackage + ".CreateCalendarResponse"
	GetCalendarRequestName     protoreflect.FullName = ProtoPackage + ".GetCalendarRequest"
	GetCalendarResponseName    protoreflect.FullName = ProtoPackage + ".GetCalendarResponse"
	CalendarServiceName        protoreflect.FullName = ProtoPackage + ".CalendarService"
)

// FileDescriptor - дескриптор calendar.proto.
var FileDescriptor protoreflect.FileDescriptor

var (
	calendarEntityDesc         protoreflect.MessageDescriptor
	createCalendarRequestDesc  protoreflect.MessageDescriptor
	createCalendarResponseDesc protoreflect.MessageDescriptor
	getCalendarRequestDesc     protoreflect.MessageDescriptor
	getCalendarResponseDesc    protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("%s: build descriptor: %v", ProtoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("%s: register descriptor: %v", ProtoFile, err))
	}

	FileDescriptor = fd
	messages := fd.Messages()
	calendarEntityDesc = messages.ByName(CalendarEntityName.Name())
	createCalendarRequestDesc = messages.ByName(CreateCalendarRequestName.Name())
	createCalendarResponseDesc = messages.ByName(CreateCalendarResponseName.Name())
	getCalendarRequestDesc = messages.ByName(GetCalendarRequestName.Name())
	getCalendarResponseDesc = messages.ByName(GetCalendarResponseName.Name())
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(ProtoFile),
		Package:    proto.String(ProtoPackage),
		Syntax:     proto.String("proto3"),
		Dependency: []string{timestampDep},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("calendarvault/pkg/api/calendar/v1;calendarv1"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			message(CalendarEntityName,
				scalarField("document_id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalarField("notification_id", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalarField("document_title", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				messageField("notification_date", 4, timestampRef, false),
				messageField("expires_at", 5, timestampRef, false),
			),
			message(CreateCalendarRequestName,
				scalarField("calendar_id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalarField("calendar_iv", 2, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
				messageField("calendar_entities", 3, "."+string(CalendarEntityName), true),
				scalarField("timezone", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message(CreateCalendarResponseName),
			message(GetCalendarRequestName,
				scalarField("calendar_id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalarField("calendar_iv", 2, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
			),
			message(GetCalendarResponseName,
				scalarField("calendar", 1, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String(string(CalendarServiceName.Name())),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("CreateCalendar", CreateCalendarRequestName, CreateCalendarResponseName),
				method("GetCalendar", GetCalendarRequestName, GetCalendarResponseName),
			},
		}},
	}
}

func message(name protoreflect.FullName, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:  proto.String(string(name.Name())),
		Field: fields,
	}
}

func scalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(jsonName(name)),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

func messageField(name string, number int32, typeName string, repeated bool) *descriptorpb.FieldDescriptorProto {
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	if repeated {
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(jsonName(name)),
		Number:   proto.Int32(number),
		Label:    label.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(typeName),
	}
}

func method(name string, input, output protoreflect.FullName) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String("." + string(input)),
		OutputType: proto.String("." + string(output)),
	}
}

// jsonName переводит snake_case в lowerCamelCase, как это делает protoc.
func jsonName(name string) string {
	out := make([]byte, 0, len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}
