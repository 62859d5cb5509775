package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func payrollDataset() Dataset {
	ds := NewDataset("Name", "Department", "Net Salary")
	ds.AddRow("John Doe", "Finance", 49100)
	ds.AddRow("Jane Smith", "HR, Admin", 53330.5)
	return ds
}

func TestCSVRender(t *testing.T) {
	out, err := NewCSVExporter().Render(payrollDataset())
	require.NoError(t, err)
	assert.Equal(t, "Name,Department,Net Salary\nJohn Doe,Finance,49100\nJane Smith,\"HR, Admin\",53330.5", string(out))
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestAddRowPadsMissingValues(t *testing.T) {
	ds := NewDataset("A", "B")
	ds.AddRow("only")
	assert.Equal(t, []string{"only", ""}, ds.Record(0))
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(payrollDataset(), "Payroll Report")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(payrollDataset(), "Payroll")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Department", "Net Salary"}, rows[0])
	assert.Equal(t, "49100", rows[1][2])
}

func TestRenderText(t *testing.T) {
	out := RenderText(TextDocument{
		Title:  "TapTime Account Credentials",
		Fields: []Field{{Label: "Company Code", Value: "COMPAB12CD"}},
		Footer: []string{"Keep these credentials secure!"},
	})
	assert.Equal(t, "TapTime Account Credentials\n============================\n\nCompany Code: COMPAB12CD\n\nKeep these credentials secure!\n", string(out))
}
