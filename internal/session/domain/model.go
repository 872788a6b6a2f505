package domain

import (
	"errors"
	"time"

	spec "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

// WorkingCopyTTL bounds how long an unsaved working chart is restored.
const WorkingCopyTTL = 24 * time.Hour

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrBusy            = errors.New("a generation is already running for this session")
)

// State is where a session sits in the project lifecycle.
type State string

const (
	StateNoProject State = "no-project"
	StateDraft     State = "draft"
	StatePersisted State = "persisted"
)

// Session is one dashboard tab: the project it is writing to, if any.
type Session struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId,omitempty"`
	Owner     string    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkingCopy is the chart currently on screen.
type WorkingCopy struct {
	ChartConfig spec.Spec `json:"chartConfig"`
	Prompt      string    `json:"prompt"`
	SavedAt     time.Time `json:"savedAt"`
}

// Fresh reports whether the copy is recent enough to restore.
func (w *WorkingCopy) Fresh(now time.Time) bool {
	return w != nil && now.Sub(w.SavedAt) < WorkingCopyTTL
}

// View is the session as reported to clients.
type View struct {
	SessionID   string       `json:"session_id"`
	State       State        `json:"state"`
	ProjectID   string       `json:"project_id,omitempty"`
	Version     int          `json:"version,omitempty"`
	WorkingCopy *WorkingCopy `json:"working_copy,omitempty"`
}

// Describe derives the lifecycle state from a session and its working copy.
func Describe(s *Session, wc *WorkingCopy) *View {
	v := &View{SessionID: s.ID, ProjectID: s.ProjectID, WorkingCopy: wc}
	switch {
	case s.ProjectID != "":
		v.State = StatePersisted
		if wc != nil {
			v.Version, _ = wc.ChartConfig.Version()
		}
	case wc != nil:
		v.State = StateDraft
	default:
		v.State = StateNoProject
	}
	return v
}
