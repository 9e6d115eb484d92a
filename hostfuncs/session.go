package hostfuncs

import (
	"sync"

	"github.com/c123chain/cdk-go/domain/entities"
	cdklog "github.com/c123chain/cdk-go/log"
)

// DefaultMaxDebugOutput caps the debug_print output retained per session
// (1 MiB). Lines past the cap are counted but dropped.
const DefaultMaxDebugOutput = 1024 * 1024

// DebugLine is one debug_print message. Structured lines written by the
// contract's slog handler are parsed into Log.
type DebugLine struct {
	Text string
	Log  *cdklog.LogMessageWire
}

// Session collects everything a contract reports during one invocation.
// It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	result    *entities.ContractResult
	rawResult []byte
	events    []*entities.Event
	debug     []DebugLine
	debugSize int
	dropped   int
	maxDebug  int
	aborted   bool
	abortMsg  string
	destroyed bool
	migrated  *entities.Address
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{maxDebug: DefaultMaxDebugOutput}
}

// SetResult records the contract's return_contract payload. Only the first
// result counts.
func (s *Session) SetResult(raw []byte, r entities.ContractResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result != nil {
		return false
	}
	s.result = &r
	s.rawResult = raw
	return true
}

// Result returns the recorded result.
func (s *Session) Result() (entities.ContractResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return entities.ContractResult{}, false
	}
	return *s.result, true
}

// RawResult returns the encoded result bytes as the contract sent them.
func (s *Session) RawResult() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawResult
}

// AddEvent appends an emitted event.
func (s *Session) AddEvent(e *entities.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns the emitted events in order.
func (s *Session) Events() []*entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entities.Event(nil), s.events...)
}

// AddDebug appends a debug line, subject to DefaultMaxDebugOutput.
func (s *Session) AddDebug(text string) {
	line := DebugLine{Text: text}
	if msg, ok := cdklog.ParseLogMessage([]byte(text)); ok {
		line.Log = &msg
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debugSize+len(text) > s.maxDebug {
		s.dropped++
		return
	}
	s.debugSize += len(text)
	s.debug = append(s.debug, line)
}

// Debug returns the retained debug lines.
func (s *Session) Debug() []DebugLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DebugLine(nil), s.debug...)
}

// DroppedDebug returns the number of debug lines dropped by the cap.
func (s *Session) DroppedDebug() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Abort records a panic_contract message.
func (s *Session) Abort(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.aborted {
		return
	}
	s.aborted = true
	s.abortMsg = message
}

// Aborted returns the abort message, if any.
func (s *Session) Aborted() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.abortMsg, s.aborted
}

// MarkDestroyed records destroy_contract.
func (s *Session) MarkDestroyed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
}

// Destroyed reports whether the contract destroyed itself.
func (s *Session) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// SetMigrated records the address returned by a successful migration.
func (s *Session) SetMigrated(addr entities.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.migrated = &addr
}

// Migrated returns the new contract address after a migration.
func (s *Session) Migrated() (entities.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.migrated == nil {
		return entities.Address{}, false
	}
	return *s.migrated, true
}
