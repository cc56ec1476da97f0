package resolver

import (
	"sort"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// MessageResolver implements Resolver over the fields of a protobuf message.
// Fields are looked up by their proto name first, then by JSON name.  Message
// fields resolve to proto.Message, repeated and map fields to
// protoreflect.List and protoreflect.Map.
type MessageResolver struct {
	msg protoreflect.Message
}

func NewMessageResolver(msg proto.Message) *MessageResolver {
	r := &MessageResolver{}
	if msg != nil {
		r.msg = msg.ProtoReflect()
	}
	return r
}

// Resolve implements the Resolver interface
func (r *MessageResolver) Resolve(name string) (any, bool, error) {
	if r.msg == nil {
		return nil, false, nil
	}
	fields := r.msg.Descriptor().Fields()
	fd := fields.ByName(protoreflect.Name(name))
	if fd == nil {
		fd = fields.ByJSONName(name)
	}
	if fd == nil {
		return nil, false, nil
	}
	return fieldValue(fd, r.msg.Get(fd)), true, nil
}

// Names implements the Resolver interface
func (r *MessageResolver) Names() []string {
	if r.msg == nil {
		return nil
	}
	fields := r.msg.Descriptor().Fields()
	names := make([]string, 0, fields.Len())
	for i := 0; i < fields.Len(); i++ {
		names = append(names, string(fields.Get(i).Name()))
	}
	sort.Strings(names)
	return names
}

func fieldValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch {
	case fd.IsList():
		return v.List()
	case fd.IsMap():
		return v.Map()
	case fd.Message() != nil:
		return v.Message().Interface()
	case fd.Enum() != nil:
		return v.Enum()
	default:
		return v.Interface()
	}
}
