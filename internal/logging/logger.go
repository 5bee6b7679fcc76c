// Package logging is the structured log surface of the report pipeline.
//
// Every load of an export is tagged with a load_id. Under that id the
// normalizer reports one entry per section with its source key, kept count
// and dropped rows, and warns with the row index for each value it could not
// parse. The CLI logs the files it writes together with the CSV delimiter.
// Field names are shared through the constants in this package so entries
// from different stages can be joined on them.
package logging

// Logger is the handle every stage receives from its constructor.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError attaches err to every entry of the returned logger.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	// WithFields scopes the returned logger, e.g. to one load_id.
	WithFields(fields ...Field) Logger

	// Fatalf logs and exits the process.
	Fatalf(msg string, args ...interface{})
}

// Field is one key/value pair of a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
