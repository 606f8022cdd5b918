package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain fields

func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

// ClassID takes anything with a String method so callers can pass uml.Identity
// without this package importing the model.
func ClassID(id interface{ String() string }) Field {
	return String("class_id", id.String())
}

func ClassName(name string) Field {
	return String("class_name", name)
}

// Member names the attribute or method involved, e.g. Member("attribute", "x").
func Member(kind, name string) Field {
	return Field{Key: kind, Value: name}
}

func Index(i int) Field {
	return Int("index", i)
}

func Version(v uint64) Field {
	return Uint64("version", v)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}
