package cron

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The dedupe check matches the tag as a substring, so no tag may be a
// prefix of another: a patient holding the reminder for appointment 10
// must still receive the one for appointment 1.
func TestReminderTagIsDelimited(t *testing.T) {
	assert.False(t, strings.Contains(reminderTag(10), reminderTag(1)))
	assert.False(t, strings.Contains(reminderTag(110), reminderTag(11)))
	assert.False(t, strings.Contains(reminderTag(1), reminderTag(10)))

	message := "Your appointment " + reminderTag(1) + " with Dr. Rao starts at 09:00 AM."
	assert.True(t, strings.Contains(message, reminderTag(1)))
	assert.False(t, strings.Contains(message, reminderTag(10)))
}
