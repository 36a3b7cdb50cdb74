package doctor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/clinic-app/models"
)

// The listing view must not leak where the file lives: a doctor only
// gets a URL through ViewRecord, which writes the access log.
func TestRecordSummaryOmitsFileLocation(t *testing.T) {
	record := models.HealthRecord{
		OwnerID:  3,
		FileURL:  "https://res.example.com/health_records/record_3_abc",
		PublicID: "record_3_abc",
		FileName: "scan.pdf",
		FileSize: 2048,
		MimeType: "application/pdf",
	}

	raw, err := json.Marshal(summarize(&record))
	require.NoError(t, err)

	body := string(raw)
	assert.NotContains(t, body, record.FileURL)
	assert.NotContains(t, body, record.PublicID)
	assert.Contains(t, body, "scan.pdf")
}
