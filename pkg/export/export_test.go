package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Lessons 2025-03-03 ~ 2025-03-09",
		Headers: []string{"Date", "Time", "Teacher", "Student"},
		Rows: []map[string]string{
			{"Date": "2025-03-03", "Time": "17:00~17:50", "Teacher": "Kim", "Student": "Lee"},
			{"Date": "2025-03-04", "Time": "18:00~18:50", "Teacher": "Park", "Student": "Choi"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	body := strings.TrimPrefix(string(out), utf8BOM)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Time,Teacher,Student", lines[0])
	assert.Equal(t, "2025-03-03,17:00~17:50,Kim,Lee", lines[1])
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	r, err := ForFormat(FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "pdf", r.Extension())

	r, err = ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, "csv", r.Extension())

	_, err = ForFormat("xlsx")
	assert.Error(t, err)
}
