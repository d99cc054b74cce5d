// Package toast queues short-lived user notifications that expire on their own.
package toast

import (
	"strconv"
	"time"

	domain "github.com/example/rentlink/domain/toast"
	"github.com/example/rentlink/modules/schedule"
)

// DisplayDuration is how long a toast stays visible.
const DisplayDuration = 3000 * time.Millisecond

// Manager owns the toast queue. Every pushed toast arms exactly one expiry
// task on the shared schedule; dismissing a toast cancels it.
type Manager struct {
	sched  *schedule.Queue
	toasts []domain.Toast
	lastID int64
}

// NewManager creates a manager that arms expiry tasks on sched.
func NewManager(sched *schedule.Queue) *Manager {
	return &Manager{sched: sched}
}

// Push enqueues a toast and schedules its removal DisplayDuration after now.
// Ids are derived from now in milliseconds and forced to increase, so two
// toasts pushed in the same millisecond still get distinct ids.
func (m *Manager) Push(now time.Time, message string, kind domain.Kind) int64 {
	id := now.UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id

	m.toasts = append(m.toasts, domain.Toast{ID: id, Message: message, Kind: kind})
	m.sched.Schedule(taskKey(id), now.Add(DisplayDuration), func(time.Time) {
		m.remove(id)
	})
	return id
}

// Dismiss removes a toast early. Unknown or already expired ids are ignored.
func (m *Manager) Dismiss(id int64) bool {
	m.sched.Cancel(taskKey(id))
	return m.remove(id)
}

// List returns the visible toasts in push order.
func (m *Manager) List() []domain.Toast {
	out := make([]domain.Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Len returns the number of visible toasts.
func (m *Manager) Len() int {
	return len(m.toasts)
}

// Last returns the most recently pushed visible toast.
func (m *Manager) Last() (domain.Toast, bool) {
	if len(m.toasts) == 0 {
		return domain.Toast{}, false
	}
	return m.toasts[len(m.toasts)-1], true
}

// Clear dismisses every toast and cancels their expiry tasks.
func (m *Manager) Clear() {
	for _, t := range m.toasts {
		m.sched.Cancel(taskKey(t.ID))
	}
	m.toasts = nil
}

func (m *Manager) remove(id int64) bool {
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return true
		}
	}
	return false
}

func taskKey(id int64) string {
	return "toast:" + strconv.FormatInt(id, 10)
}
