package tabular_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"benefitdesk/internal/tabular"
)

func TestReadFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.csv")
	content := " Card Code ,Name, AMOUNT PAID ,Status\n" +
		" C100 , Asha ,2000,active\n" +
		"C101,Binu,1000\n" // short row: status missing
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := tabular.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Headers lower-cased and trimmed, values trimmed.
	assert.Equal(t, "C100", rows[0]["card code"])
	assert.Equal(t, "Asha", rows[0]["name"])
	assert.Equal(t, "2000", rows[0]["amount paid"])
	assert.Equal(t, "active", rows[0]["status"])

	// Short rows pad missing trailing fields with empty strings.
	assert.Equal(t, "C101", rows[1]["card code"])
	assert.Equal(t, "", rows[1]["status"])
}

func TestReadFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benefits.xlsx")

	f := excelize.NewFile()
	header := []interface{}{"Benefit Code", "Vessel Type", "Mutton", "Egg (in dozen)"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	row := []interface{}{" 262k-01 ", "steel", "2 kg", "1"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := tabular.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "262k-01", rows[0]["benefit code"])
	assert.Equal(t, "steel", rows[0]["vessel type"])
	assert.Equal(t, "2 kg", rows[0]["mutton"])
	assert.Equal(t, "1", rows[0]["egg (in dozen)"])
}

func TestReadFile_UnsupportedFormat(t *testing.T) {
	_, err := tabular.ReadFile("master.pdf")
	assert.Error(t, err)
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := tabular.ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
