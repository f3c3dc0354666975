package proto

import "google.golang.org/protobuf/types/known/structpb"

// String returns the string field key of s, or "" when absent or not a string.
func String(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

// Bool returns the bool field key of s, or false when absent.
func Bool(s *structpb.Struct, key string) bool {
	if s == nil {
		return false
	}
	return s.GetFields()[key].GetBoolValue()
}

// Struct returns the nested struct field key of s, or nil.
func Struct(s *structpb.Struct, key string) *structpb.Struct {
	if s == nil {
		return nil
	}
	return s.GetFields()[key].GetStructValue()
}

// UserStruct builds the {id, name, email} user object.
func UserStruct(id, name, email string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":    structpb.NewStringValue(id),
		"name":  structpb.NewStringValue(name),
		"email": structpb.NewStringValue(email),
	}}
}
