package domain

import "sync"

// NoCurrent marks a session without a current report.
const NoCurrent = -1

// Session is the per-browser state: the report history mirror and which
// entry is current. Callers hold the embedded lock across a whole action.
type Session struct {
	sync.Mutex

	ID      string
	history []Report
	current int
}

// NewSession starts a session from the persisted history. The last entry
// becomes current.
func NewSession(id string, history []Report) *Session {
	h := make([]Report, len(history))
	copy(h, history)
	return &Session{ID: id, history: h, current: len(h) - 1}
}

// History returns a copy of the report history.
func (s *Session) History() []Report {
	h := make([]Report, len(s.history))
	copy(h, s.history)
	return h
}

// Len 历史报告数量
func (s *Session) Len() int { return len(s.history) }

// Current returns the current report, if any.
func (s *Session) Current() (Report, bool) {
	if s.current < 0 || s.current >= len(s.history) {
		return Report{}, false
	}
	return s.history[s.current], true
}

// CurrentIndex is the history index of the current report or NoCurrent.
func (s *Session) CurrentIndex() int { return s.current }

// Append adds r to the end of the history and makes it current.
func (s *Session) Append(r Report) int {
	s.history = append(s.history, r)
	s.current = len(s.history) - 1
	return s.current
}

// View makes entry i current.
func (s *Session) View(i int) bool {
	if i < 0 || i >= len(s.history) {
		return false
	}
	s.current = i
	return true
}

// Delete removes entry i keeping the order of the rest. Deleting the
// current entry clears it; deleting an earlier one keeps pointing at the
// same report.
func (s *Session) Delete(i int) bool {
	if i < 0 || i >= len(s.history) {
		return false
	}
	s.history = append(s.history[:i], s.history[i+1:]...)
	switch {
	case i == s.current:
		s.current = NoCurrent
	case i < s.current:
		s.current--
	}
	return true
}

// Snapshot 当前会话快照
func (s *Session) Snapshot() ReportView {
	return ReportView{History: s.History(), Current: s.current}
}
