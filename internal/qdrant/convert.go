package qdrant

import "github.com/qdrant/go-client/qdrant"

// ValuesToMap converts a Qdrant payload or metadata map into plain Go values.
func ValuesToMap(values map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = ValueToAny(v)
	}
	return out
}

// ValueToAny converts a single Qdrant value into the corresponding Go value.
func ValueToAny(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_ListValue:
		out := make([]any, len(val.ListValue.Values))
		for i, lv := range val.ListValue.Values {
			out[i] = ValueToAny(lv)
		}
		return out
	case *qdrant.Value_StructValue:
		out := make(map[string]any, len(val.StructValue.Fields))
		for k, sv := range val.StructValue.Fields {
			out[k] = ValueToAny(sv)
		}
		return out
	}
	return nil
}
