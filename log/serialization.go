package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// LogMessageWire is the JSON wire format for a log message from guest to host.
type LogMessageWire struct {
	Timestamp time.Time     `json:"timestamp"`
	Source    *SourceWire   `json:"source,omitempty"`
	Attrs     []LogAttrWire `json:"attrs,omitempty"`
	Level     string        `json:"level"`
	Message   string        `json:"message"`
}

// SourceWire is the call site of a record, present with WithSource(true).
type SourceWire struct {
	Function string `json:"function,omitempty"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// LogAttrWire represents a single slog attribute for wire transfer.
type LogAttrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"`  // "string", "int64", "bool", "float64", "time", "error", "json", "any"
	Value string `json:"value"` // String representation of the value
}

// ParseLogMessage decodes a debug_print line produced by WasmLogHandler.
// ok is false for plain text lines.
func ParseLogMessage(line []byte) (msg LogMessageWire, ok bool) {
	if len(line) == 0 || line[0] != '{' {
		return LogMessageWire{}, false
	}
	if err := json.Unmarshal(line, &msg); err != nil || msg.Level == "" {
		return LogMessageWire{}, false
	}
	return msg, true
}

func qualify(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// flattenAttr converts attr to wire form, expanding groups into dotted keys.
func flattenAttr(prefix string, attr slog.Attr) []LogAttrWire {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() != slog.KindGroup {
		if attr.Equal(slog.Attr{}) {
			return nil
		}
		wire := toLogAttrWire(attr)
		wire.Key = qualify(prefix, attr.Key)
		return []LogAttrWire{wire}
	}

	group := attr.Value.Group()
	if len(group) == 0 {
		return nil
	}
	inner := prefix
	if attr.Key != "" {
		inner = qualify(prefix, attr.Key)
	}
	var out []LogAttrWire
	for _, a := range group {
		out = append(out, flattenAttr(inner, a)...)
	}
	return out
}

// toLogAttrWire converts a slog.Attr to LogAttrWire.
func toLogAttrWire(attr slog.Attr) LogAttrWire {
	wire := LogAttrWire{
		Key: attr.Key,
	}
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		wire.Type = "string"
		wire.Value = attr.Value.String()
	case slog.KindInt64:
		wire.Type = "int64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Int64())
	case slog.KindUint64:
		wire.Type = "uint64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Uint64())
	case slog.KindBool:
		wire.Type = "bool"
		wire.Value = fmt.Sprintf("%t", attr.Value.Bool())
	case slog.KindFloat64:
		wire.Type = "float64"
		wire.Value = fmt.Sprintf("%f", attr.Value.Float64())
	case slog.KindTime:
		wire.Type = "time"
		wire.Value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		wire.Type = "duration"
		wire.Value = attr.Value.Duration().String()
	case slog.KindAny:
		switch v := attr.Value.Any().(type) {
		case nil:
			wire.Type = "any"
			wire.Value = "<nil>"
		case error:
			wire.Type = "error"
			wire.Value = v.Error()
		case fmt.Stringer:
			// Addresses and 128-bit integers read better in their text form.
			wire.Type = "string"
			wire.Value = v.String()
		default:
			if data, err := json.Marshal(v); err == nil {
				wire.Type = "json"
				wire.Value = string(data)
			} else {
				wire.Type = "any"
				wire.Value = fmt.Sprintf("%v", v)
			}
		}
	default:
		wire.Type = "any"
		wire.Value = fmt.Sprintf("%v", attr.Value.Any())
	}
	return wire
}
