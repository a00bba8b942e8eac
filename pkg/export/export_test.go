package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/powerplan/core/model"
)

var entries = []model.PlanEntry{{Name: "windpark1", Power: 900}, {Name: "tj1", Power: 5}}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, entries))
	var out []model.PlanEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, entries, out)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))
	assert.Equal(t, "name,power_mw\nwindpark1,90\ntj1,0.5\n", buf.String())
}

func TestWriteChartHTML(t *testing.T) {
	var buf bytes.Buffer
	plants := []model.RankedPlant{
		{Name: "windpark1", AvailablePower: 900, DispatchedPower: 900},
		{Name: "gasfiredbig1", AvailablePower: 4600, DispatchedPower: 3690},
	}
	require.NoError(t, WriteChartHTML(&buf, "Plan p1", plants))
	html := buf.String()
	assert.True(t, strings.Contains(html, "<html"), "expected an html document")
	assert.Contains(t, html, "gasfiredbig1")
	assert.Contains(t, html, "369")
}
