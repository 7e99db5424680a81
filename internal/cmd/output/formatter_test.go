package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propilot/fbohub/pkg/fbo"
)

func sampleRecords() []fbo.Record {
	jetA := 7.89
	ramp := 350.0
	waived := true
	phone := "(650) 877-8750"
	return []fbo.Record{
		{
			LocationCode:  "KSFO",
			Name:          "Signature Flight Support SFO",
			Phone:         &phone,
			JetAPrice:     &jetA,
			RampFee:       &ramp,
			RampFeeWaived: &waived,
			IsVerified:    true,
			HasCrewCar:    true,
			HasDeice:      true,
			UpdatedBy:     fbo.ImportLabel,
		},
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, sampleRecords()))

	var out []fbo.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "KSFO", out[0].LocationCode)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, sampleRecords()))
	assert.Contains(t, buf.String(), "location_code: KSFO")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := Data{
		Headers: []string{"NAME", "JET A"},
		Rows:    [][]string{{"Signature Flight Support SFO", "$7.89"}},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	assert.Contains(t, buf.String(), "NAME")
	assert.Contains(t, buf.String(), "$7.89")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"count": 3}))
	assert.Contains(t, buf.String(), `"count"`)
}

func TestFormatRecords(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatRecords(&buf, sampleRecords(), FormatTable))
		out := buf.String()
		assert.Contains(t, out, "Signature Flight Support SFO")
		assert.Contains(t, out, "$7.89")
		assert.Contains(t, out, "waived w/ fuel")
		assert.NotContains(t, out, "crew car", "amenities only show in wide output")
	})

	t.Run("wide", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatRecords(&buf, sampleRecords(), FormatWide))
		out := buf.String()
		assert.Contains(t, out, "crew car")
		assert.Contains(t, out, "deice")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatRecords(&buf, sampleRecords(), FormatJSON))
		var out []fbo.Record
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out, 1)
	})
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "json", "YAML", "wide", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, "format %q should parse", s)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("yaml"))
	assert.Equal(t, FormatJSON, DetectFormat("JSON"))
}
