// Package assistant implements the rule-based chat helper: a keyword
// matcher over a fixed intent table, with per-conversation state kept in
// memory. No NLU, no persistence.
package assistant

import (
	"fmt"
	"strings"
	"sync"
)

type Reply struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Engine answers one message at a time. The lookup hooks are provided by
// the HTTP layer so the engine itself stays free of storage concerns.
type Engine struct {
	// DoctorsBySpeciality returns display names of active doctors.
	DoctorsBySpeciality func(speciality string) []string
	// NextAvailableSlot returns a human-readable slot label for the
	// doctor's next open slot, or ok=false when nothing is open.
	NextAvailableSlot func(doctorName string) (label string, ok bool)
	// Specialities returns the specialities that currently have doctors.
	Specialities func() []string

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	awaitingSpeciality bool
	awaitingDoctor     bool
	speciality         string
}

type intent struct {
	keywords []string
	handle   func(e *Engine, s *session, msg string) Reply
}

// Order matters: cancel sits above book so that "cancel my appointment"
// never falls into the booking flow via the broad "appointment" keyword.
var intents = []intent{
	{[]string{"hello", "hi ", "hey", "good morning", "good evening"}, (*Engine).greet},
	{[]string{"cancel"}, (*Engine).cancel},
	{[]string{"book", "appointment", "schedule", "see a doctor"}, (*Engine).book},
	{[]string{"available", "slot", "free", "when can"}, (*Engine).slots},
	{[]string{"record", "report", "document", "upload"}, (*Engine).records},
	{[]string{"dependent", "family", "child", "my son", "my daughter"}, (*Engine).dependents},
	{[]string{"thank", "bye"}, (*Engine).thanks},
	{[]string{"help", "what can you"}, (*Engine).help},
}

func (e *Engine) session(id string) *session {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sessions == nil {
		e.sessions = make(map[string]*session)
	}
	s, ok := e.sessions[id]
	if !ok {
		s = &session{}
		e.sessions[id] = s
	}
	return s
}

// Reset drops a conversation's state.
func (e *Engine) Reset(sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, sessionID)
}

// Respond matches msg against the intent table, honoring any pending
// question from the previous turn first.
func (e *Engine) Respond(sessionID, msg string) Reply {
	s := e.session(sessionID)
	lower := strings.ToLower(strings.TrimSpace(msg))

	if s.awaitingSpeciality {
		return e.pickSpeciality(s, lower)
	}
	if s.awaitingDoctor {
		return e.pickDoctor(s, msg)
	}

	for _, in := range intents {
		for _, kw := range in.keywords {
			if strings.Contains(lower, kw) {
				return in.handle(e, s, lower)
			}
		}
	}

	// A bare speciality name also starts the booking flow.
	if e.matchSpeciality(lower) != "" {
		s.awaitingSpeciality = true
		return e.pickSpeciality(s, lower)
	}

	return Reply{
		Text:        "Sorry, I didn't catch that. I can help you book an appointment, check a doctor's availability, or manage your health records.",
		Suggestions: []string{"Book an appointment", "Help"},
	}
}

func (e *Engine) greet(s *session, msg string) Reply {
	return Reply{
		Text:        "Hello! I can help you book appointments, check doctor availability, and answer questions about your records.",
		Suggestions: []string{"Book an appointment", "Check availability", "Help"},
	}
}

func (e *Engine) book(s *session, msg string) Reply {
	if sp := e.matchSpeciality(msg); sp != "" {
		return e.listDoctors(s, sp)
	}
	s.awaitingSpeciality = true
	return Reply{
		Text:        "Which speciality do you need?",
		Suggestions: e.specialities(),
	}
}

func (e *Engine) pickSpeciality(s *session, msg string) Reply {
	sp := e.matchSpeciality(msg)
	if sp == "" {
		return Reply{
			Text:        "I don't recognise that speciality. Please pick one of these:",
			Suggestions: e.specialities(),
		}
	}
	s.awaitingSpeciality = false
	return e.listDoctors(s, sp)
}

func (e *Engine) listDoctors(s *session, speciality string) Reply {
	var doctors []string
	if e.DoctorsBySpeciality != nil {
		doctors = e.DoctorsBySpeciality(speciality)
	}
	if len(doctors) == 0 {
		return Reply{Text: fmt.Sprintf("No %s doctors are available right now. Try another speciality?", speciality)}
	}
	s.speciality = speciality
	s.awaitingDoctor = true
	return Reply{
		Text:        fmt.Sprintf("Here are our %s doctors. Whose schedule should I check?", speciality),
		Suggestions: doctors,
	}
}

func (e *Engine) pickDoctor(s *session, msg string) Reply {
	s.awaitingDoctor = false
	name := strings.TrimSpace(msg)
	if e.NextAvailableSlot == nil {
		return Reply{Text: "I can't check schedules right now. Please use the booking page."}
	}
	label, ok := e.NextAvailableSlot(name)
	if !ok {
		return Reply{Text: fmt.Sprintf("%s has no open slots in the next few days. Want to try another doctor?", name)}
	}
	return Reply{
		Text:        fmt.Sprintf("%s's next open slot is %s. You can confirm it from the booking page.", name, label),
		Suggestions: []string{"Book an appointment"},
	}
}

func (e *Engine) slots(s *session, msg string) Reply {
	return e.book(s, msg)
}

func (e *Engine) cancel(s *session, msg string) Reply {
	return Reply{Text: "You can cancel an upcoming appointment from your appointments list. Cancellations free the slot immediately and notify the doctor."}
}

func (e *Engine) records(s *session, msg string) Reply {
	return Reply{Text: "Health records live under your profile. You can upload PDF, JPEG or PNG files up to 10 MB, mark them private, and see who has viewed them."}
}

func (e *Engine) dependents(s *session, msg string) Reply {
	return Reply{Text: "You can add family members as dependents under your profile and then book appointments on their behalf."}
}

func (e *Engine) thanks(s *session, msg string) Reply {
	return Reply{Text: "You're welcome! Take care."}
}

func (e *Engine) help(s *session, msg string) Reply {
	return Reply{
		Text:        "I can: find doctors by speciality, check their next open slot, and explain booking, cancellation, dependents and health records.",
		Suggestions: []string{"Book an appointment", "Check availability"},
	}
}

func (e *Engine) specialities() []string {
	if e.Specialities != nil {
		return e.Specialities()
	}
	return nil
}

func (e *Engine) matchSpeciality(msg string) string {
	for _, sp := range e.specialities() {
		if strings.Contains(msg, strings.ToLower(sp)) {
			return sp
		}
	}
	return ""
}
