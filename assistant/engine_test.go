package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	return &Engine{
		Specialities: func() []string { return []string{"Cardiology", "Dermatology"} },
		DoctorsBySpeciality: func(sp string) []string {
			if sp == "Cardiology" {
				return []string{"Dr. Asha Rao"}
			}
			return nil
		},
		NextAvailableSlot: func(name string) (string, bool) {
			if name == "Dr. Asha Rao" {
				return "Monday 09:00 AM - 10:00 AM", true
			}
			return "", false
		},
	}
}

func TestGreeting(t *testing.T) {
	e := testEngine()
	reply := e.Respond("s1", "Hello there")
	assert.Contains(t, reply.Text, "book appointments")
	assert.NotEmpty(t, reply.Suggestions)
}

func TestBookingFlowAsksForSpeciality(t *testing.T) {
	e := testEngine()

	reply := e.Respond("s1", "I want to book an appointment")
	assert.Contains(t, reply.Text, "speciality")
	assert.Equal(t, []string{"Cardiology", "Dermatology"}, reply.Suggestions)

	reply = e.Respond("s1", "cardiology please")
	assert.Contains(t, reply.Text, "Cardiology doctors")
	require.Equal(t, []string{"Dr. Asha Rao"}, reply.Suggestions)

	reply = e.Respond("s1", "Dr. Asha Rao")
	assert.Contains(t, reply.Text, "Monday 09:00 AM - 10:00 AM")
}

func TestBookingWithInlineSpecialitySkipsQuestion(t *testing.T) {
	e := testEngine()
	reply := e.Respond("s1", "book me a cardiology appointment")
	assert.Contains(t, reply.Text, "Cardiology doctors")
}

func TestUnknownSpecialityReprompts(t *testing.T) {
	e := testEngine()
	e.Respond("s1", "book an appointment")
	reply := e.Respond("s1", "astrology")
	assert.Contains(t, reply.Text, "don't recognise")
	assert.Equal(t, []string{"Cardiology", "Dermatology"}, reply.Suggestions)
}

func TestEmptySpecialityRoster(t *testing.T) {
	e := testEngine()
	e.Respond("s1", "book an appointment")
	reply := e.Respond("s1", "dermatology")
	assert.Contains(t, reply.Text, "No Dermatology doctors")
}

func TestNoOpenSlots(t *testing.T) {
	e := testEngine()
	e.Respond("s1", "book a cardiology appointment")
	e.sessions["s1"].awaitingDoctor = true
	reply := e.Respond("s1", "Dr. Unknown")
	assert.Contains(t, reply.Text, "no open slots")
}

func TestCancelBeatsBookingKeywords(t *testing.T) {
	e := testEngine()

	reply := e.Respond("s1", "cancel my appointment")
	assert.Contains(t, reply.Text, "cancel an upcoming appointment")

	// The session must not be left waiting for a speciality answer.
	reply = e.Respond("s1", "hello")
	assert.Contains(t, reply.Text, "Hello")
}

func TestSessionsAreIndependent(t *testing.T) {
	e := testEngine()
	e.Respond("a", "book an appointment")

	// Session b never entered the booking flow, so a speciality name in a
	// new session starts fresh instead of answering a's question.
	reply := e.Respond("b", "cancel my appointment")
	assert.Contains(t, reply.Text, "cancel")
}

func TestFallback(t *testing.T) {
	e := testEngine()
	reply := e.Respond("s1", "what is the meaning of life")
	assert.Contains(t, reply.Text, "didn't catch that")
}

func TestReset(t *testing.T) {
	e := testEngine()
	e.Respond("s1", "book an appointment")
	e.Reset("s1")
	reply := e.Respond("s1", "hello")
	assert.Contains(t, reply.Text, "Hello")
}
