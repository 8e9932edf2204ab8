package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Amount"},
		Rows:    [][]string{{"1", "500.00"}},
	}, "Payments")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRenderRowLengthMismatch(t *testing.T) {
	exporter := NewPDFExporter()

	_, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Amount"},
		Rows:    [][]string{{"1"}},
	}, "")
	require.Error(t, err)
}

func TestPDFExporterRenderReceipt(t *testing.T) {
	exporter := NewPDFExporter()

	out, err := exporter.RenderReceipt(Receipt{
		Title: "Invoice Receipt",
		Fields: []ReceiptField{
			{Label: "Invoice No.", Value: "42"},
			{Label: "Amount", Value: "500.00"},
		},
		Footer: "Generated by school-admin",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRenderReceiptNoFields(t *testing.T) {
	exporter := NewPDFExporter()

	_, err := exporter.RenderReceipt(Receipt{Title: "Empty"})
	require.Error(t, err)
}
