package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Amount"},
		Rows: [][]string{
			{"1", "500.00"},
			{"2", "300.00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ID,Amount\n1,500.00\n2,300.00\n", string(out))
}

func TestCSVExporterRenderEmptyHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestCSVExporterRenderRowLengthMismatch(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Amount"},
		Rows:    [][]string{{"1"}},
	})
	require.Error(t, err)
}

func TestCSVExporterEscapesCommas(t *testing.T) {
	exporter := NewCSVExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Name"},
		Rows:    [][]string{{"Doe, John"}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Doe, John"`)
}
