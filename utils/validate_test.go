package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	assert.Nil(t, Required(map[string]string{"email": "a@b.co", "name": "x"}))

	err := Required(map[string]string{"email": "", "name": "  ", "phone": "123"})
	require.NotNil(t, err)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Contains(t, err.Message, "email")
	assert.Contains(t, err.Message, "name")
	assert.NotContains(t, err.Message, "phone")
}

func TestValidEmail(t *testing.T) {
	assert.Nil(t, ValidEmail("jane.doe@example.org"))
	for _, bad := range []string{"", "plain", "a@b", "a b@c.de", "@x.com"} {
		assert.NotNil(t, ValidEmail(bad), bad)
	}
}

func TestValidPassword(t *testing.T) {
	assert.NotNil(t, ValidPassword("short"))
	assert.Nil(t, ValidPassword("long enough"))
}

func TestValidUpload(t *testing.T) {
	assert.Nil(t, ValidUpload(1024, "application/pdf"))
	assert.Nil(t, ValidUpload(1024, "IMAGE/PNG"))
	assert.NotNil(t, ValidUpload(0, "application/pdf"))
	assert.NotNil(t, ValidUpload(MaxUploadBytes+1, "application/pdf"))
	assert.NotNil(t, ValidUpload(1024, "application/zip"))
}

func TestHumanID(t *testing.T) {
	id := HumanID("PAT")
	assert.True(t, strings.HasPrefix(id, "PAT-"))
	assert.Len(t, id, 10)
	assert.NotContains(t, id, "O")
	assert.NotContains(t, id, "0")

	// Two draws colliding would mean the generator is not random at all.
	assert.NotEqual(t, HumanID("DOC"), HumanID("DOC"))
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()
	require.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9')
	}
}
