// Package logging defines the structured logging surface shared by the
// client, the publishers and the CLI runtime.
package logging

// Logger logs msg with obj attached as a structured field named key.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) InfoObj(string, string, interface{})  {}
func (Nop) DebugObj(string, string, interface{}) {}
func (Nop) WarnObj(string, string, interface{})  {}
func (Nop) ErrorObj(string, string, interface{}) {}

// OrNop returns log, or Nop when log is nil.
func OrNop(log Logger) Logger {
	if log == nil {
		return Nop{}
	}
	return log
}
