package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotKeyIncludesGranularity(t *testing.T) {
	assert.Equal(t, "slots:7:2025-03-10:30", slotKey(7, "2025-03-10", 30))
	assert.NotEqual(t, slotKey(7, "2025-03-10", 30), slotKey(7, "2025-03-10", 60))
}

func TestSlotKeyScopedPerDoctorAndDate(t *testing.T) {
	assert.NotEqual(t, slotKey(7, "2025-03-10", 60), slotKey(8, "2025-03-10", 60))
	assert.NotEqual(t, slotKey(7, "2025-03-10", 60), slotKey(7, "2025-03-11", 60))
}
