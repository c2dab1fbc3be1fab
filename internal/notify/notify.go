// Package notify is the announcement channel from the state subsystem to
// the UI layer. The board publishes history availability after every
// mutation and animation start/stop by element ID.
package notify

import (
	"log"

	"github.com/ivlev/whiteboard/internal/identity"
)

// Sink receives state announcements. Implementations must not call back
// into the board; they run on the board's single execution context.
type Sink interface {
	HistoryChanged(canUndo, canRedo bool)
	AnimationStarted(eid identity.EID, kind string)
	AnimationStopped(eid identity.EID, kind string)
	// Notice is a user-visible, non-fatal message ("nothing to undo").
	Notice(msg string)
}

// LogSink writes announcements to the standard logger. It is the default
// sink when no UI is attached (headless runs, tests with -v).
type LogSink struct{}

func (LogSink) HistoryChanged(canUndo, canRedo bool) {
	log.Printf("[*] history: undo=%v redo=%v", canUndo, canRedo)
}

func (LogSink) AnimationStarted(eid identity.EID, kind string) {
	log.Printf("[*] animation %s started on %s", kind, eid)
}

func (LogSink) AnimationStopped(eid identity.EID, kind string) {
	log.Printf("[*] animation %s stopped on %s", kind, eid)
}

func (LogSink) Notice(msg string) {
	log.Printf("[!] %s", msg)
}

// Discard drops every announcement.
type Discard struct{}

func (Discard) HistoryChanged(bool, bool) {}
func (Discard) AnimationStarted(identity.EID, string) {}
func (Discard) AnimationStopped(identity.EID, string) {}
func (Discard) Notice(string) {}
