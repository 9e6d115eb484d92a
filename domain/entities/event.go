package entities

// ValueKind is the wire tag of an attribute value.
type ValueKind uint8

const (
	// ValueInt64 tags an 8-byte little-endian signed integer.
	ValueInt64 ValueKind = 0

	// ValueString tags a length-prefixed UTF-8 string.
	ValueString ValueKind = 1
)

func (k ValueKind) String() string {
	switch k {
	case ValueInt64:
		return "int64"
	case ValueString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is an attribute value: an Int64 or a String, selected by Kind.
type Value struct {
	Str  string    `json:"str,omitempty"`
	Int  int64     `json:"int,omitempty"`
	Kind ValueKind `json:"kind"`
}

// Int64Value wraps an integer attribute value.
func Int64Value(v int64) Value { return Value{Kind: ValueInt64, Int: v} }

// StringValue wraps a text attribute value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// Attribute is one key/value pair of an Event.
type Attribute struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// Event is a typed, ordered attribute list emitted by a contract. Attribute
// order is preserved on the wire and duplicate keys are allowed.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// NewEvent creates an event of the given type with no attributes.
func NewEvent(eventType string) *Event {
	return &Event{Type: eventType}
}

// Add appends an attribute.
func (e *Event) Add(key string, value Value) *Event {
	e.Attributes = append(e.Attributes, Attribute{Key: key, Value: value})
	return e
}

// AddInt64 appends an integer attribute.
func (e *Event) AddInt64(key string, v int64) *Event {
	return e.Add(key, Int64Value(v))
}

// AddString appends a text attribute.
func (e *Event) AddString(key, v string) *Event {
	return e.Add(key, StringValue(v))
}
