package importer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, addr, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

var header = []interface{}{"name", "category", "power_kw", "quantity", "ku", "cos_phi", "voltage_v"}

func TestParseLoads(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		header,
		{"Press", "motori", 100, 1, 1, 0.85, 400},
		{"Lighting", "illuminazione", "12,5", 4},
		{},
		{"Broken", "prese", "abc"},
		{"Zero cos", "prese", 3, 1, 1, 0, 400},
		{"Single phase", "prese", 2, 3, 0.5, 0.9, 230},
	})

	imp, err := ParseLoads(buf)
	require.NoError(t, err)
	require.Len(t, imp.Loads, 3)

	assert.Equal(t, "Press", imp.Loads[0].Name)
	assert.Equal(t, 100.0, imp.Loads[0].PowerKW)

	light := imp.Loads[1]
	assert.Equal(t, 12.5, light.PowerKW)
	assert.Equal(t, 4, light.Quantity)
	assert.Equal(t, 1.0, light.Ku)
	assert.Equal(t, 0.85, light.CosPhi)
	assert.Equal(t, 400.0, light.VoltageV)

	assert.Equal(t, 1, imp.Loads[2].Phases)

	require.Len(t, imp.Skipped, 2)
	assert.Equal(t, 5, imp.Skipped[0].Row)
	assert.Contains(t, imp.Skipped[0].Reason, "power_kw")
	assert.Equal(t, 6, imp.Skipped[1].Row)
	assert.Contains(t, imp.Skipped[1].Reason, "cos_phi")
}

func TestParseLoads_Errors(t *testing.T) {
	_, err := ParseLoads(workbook(t, [][]interface{}{header}))
	assert.True(t, errors.Is(err, ErrEmptySheet))

	_, err = ParseLoads(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}

func TestParseLoads_RejectsBadNumbers(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		header,
		{"Not a number", "motori", "NaN"},
		{"Endless", "motori", "Inf"},
		{"Fraction", "motori", 10, "2.7"},
		{"Pump", "motori", 10, "2"},
	})

	imp, err := ParseLoads(buf)
	require.NoError(t, err)
	require.Len(t, imp.Loads, 1)
	assert.Equal(t, 2, imp.Loads[0].Quantity)

	require.Len(t, imp.Skipped, 3)
	assert.Contains(t, imp.Skipped[0].Reason, "power_kw")
	assert.Contains(t, imp.Skipped[1].Reason, "power_kw")
	assert.Equal(t, 4, imp.Skipped[2].Row)
	assert.Contains(t, imp.Skipped[2].Reason, "quantity")
}
