// Package dataset loads the bundled baseline facility data: a version
// manifest plus a CSV of curated rows. Parsing is tolerant the way bulk
// imports need to be; a malformed row is skipped and reported as a warning
// instead of failing the whole bundle.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/fbo"
)

const (
	manifestFile = "manifest.yaml"
	recordsFile  = "fbos.csv"
)

// Column order of the records CSV. The bundle generator and this parser
// must agree on it.
const (
	colLocationCode = iota
	colName
	colPhone
	colFrequency
	colWebsite
	colJetAPrice
	colAvgasPrice
	colCrewCar
	colCrewLounge
	colCatering
	colMaintenance
	colHangars
	colDeice
	colOxygen
	colGPU
	colLavService
	colHandlingFee
	colOvernightFee
	colRampFee
	colRampFeeWaived

	columnCount = iota
)

var columnNames = []string{
	"airport_code", "name", "phone", "unicom", "website",
	"jet_a_price", "avgas_price",
	"crew_cars", "crew_lounge", "catering", "maintenance", "hangars",
	"deice", "oxygen", "gpu", "lav",
	"handling_fee", "overnight_fee", "ramp_fee", "ramp_fee_waived",
}

// Warning describes a row the parser had to skip.
type Warning struct {
	Row     int    // line number in the CSV, counting the header as line 1
	Message string
}

// Dataset is a parsed baseline bundle. Records are flat across locations;
// use ByLocation to group them for reconciliation.
type Dataset struct {
	Version  int
	Records  []fbo.Record
	Skipped  int
	Warnings []Warning
}

// ByLocation groups the dataset's records by airport code.
func (d *Dataset) ByLocation() map[string][]fbo.Record {
	out := make(map[string][]fbo.Record)
	for _, r := range d.Records {
		out[r.LocationCode] = append(out[r.LocationCode], r)
	}
	return out
}

type manifest struct {
	Version   int    `yaml:"version"`
	Name      string `yaml:"name"`
	Generated string `yaml:"generated"`
	Source    string `yaml:"source"`
}

// Load parses the embedded bundle. Rows become verified records attributed
// to fbo.ImportLabel with LastUpdated set to now.
func Load(now utc.Time) (*Dataset, error) {
	sub, err := fs.Sub(FS, "data")
	if err != nil {
		return nil, errors.WrapParse("bundle", "data", err)
	}
	return LoadFS(sub, now)
}

// LoadDir parses an external bundle directory laid out like the embedded
// one: manifest.yaml next to fbos.csv.
func LoadDir(dir string, now utc.Time) (*Dataset, error) {
	return LoadFS(os.DirFS(dir), now)
}

// LoadFS parses a bundle from any filesystem.
func LoadFS(fsys fs.FS, now utc.Time) (*Dataset, error) {
	m, err := readManifest(fsys)
	if err != nil {
		return nil, err
	}
	raw, err := fs.ReadFile(fsys, recordsFile)
	if err != nil {
		return nil, errors.WrapParse("csv", recordsFile, err)
	}
	ds, err := parseRecords(raw, now)
	if err != nil {
		return nil, err
	}
	ds.Version = m.Version
	return ds, nil
}

func readManifest(fsys fs.FS) (*manifest, error) {
	raw, err := fs.ReadFile(fsys, manifestFile)
	if err != nil {
		return nil, errors.WrapParse("yaml", manifestFile, err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.WrapParse("yaml", manifestFile, err)
	}
	if m.Version < 1 {
		return nil, errors.NewParseError("yaml", manifestFile, "dataset version must be positive", nil)
	}
	return &m, nil
}

func parseRecords(raw []byte, now utc.Time) (*Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	// Row width is checked per row so one bad line cannot abort the read.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.WrapParse("csv", recordsFile, err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	ds := &Dataset{Records: []fbo.Record{}}
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			ds.skip(row, err.Error())
			continue
		}
		record, reason := parseRow(fields, now)
		if reason != "" {
			ds.skip(row, reason)
			continue
		}
		ds.Records = append(ds.Records, record)
	}
	return ds, nil
}

func (d *Dataset) skip(row int, message string) {
	d.Skipped++
	d.Warnings = append(d.Warnings, Warning{Row: row, Message: message})
}

func checkHeader(header []string) error {
	if len(header) != columnCount {
		return errors.NewParseError("csv", recordsFile,
			fmt.Sprintf("expected %d header columns, got %d", columnCount, len(header)), nil)
	}
	for i, want := range columnNames {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return errors.NewParseError("csv", recordsFile,
				fmt.Sprintf("unexpected column %d: %q", i+1, header[i]), nil)
		}
	}
	return nil
}

func parseRow(fields []string, now utc.Time) (fbo.Record, string) {
	if len(fields) != columnCount {
		return fbo.Record{}, fmt.Sprintf("expected %d columns, got %d", columnCount, len(fields))
	}
	code := strings.ToUpper(strings.TrimSpace(fields[colLocationCode]))
	if code == "" {
		return fbo.Record{}, "missing airport code"
	}
	name := fbo.DisplayName(fields[colName])
	if name == "" {
		return fbo.Record{}, "missing facility name"
	}

	jetA, err := parsePrice(fields[colJetAPrice])
	if err != nil {
		return fbo.Record{}, "bad jet_a_price: " + err.Error()
	}
	avgas, err := parsePrice(fields[colAvgasPrice])
	if err != nil {
		return fbo.Record{}, "bad avgas_price: " + err.Error()
	}
	handling, err := parsePrice(fields[colHandlingFee])
	if err != nil {
		return fbo.Record{}, "bad handling_fee: " + err.Error()
	}
	overnight, err := parsePrice(fields[colOvernightFee])
	if err != nil {
		return fbo.Record{}, "bad overnight_fee: " + err.Error()
	}
	ramp, err := parsePrice(fields[colRampFee])
	if err != nil {
		return fbo.Record{}, "bad ramp_fee: " + err.Error()
	}

	record := fbo.Record{
		LocationCode:   code,
		Name:           name,
		Phone:          optional(fields[colPhone]),
		Frequency:      optional(fields[colFrequency]),
		Website:        optional(fields[colWebsite]),
		HasCrewCar:     parseBool(fields[colCrewCar]),
		HasCrewLounge:  parseBool(fields[colCrewLounge]),
		HasCatering:    parseBool(fields[colCatering]),
		HasMaintenance: parseBool(fields[colMaintenance]),
		HasHangars:     parseBool(fields[colHangars]),
		HasDeice:       parseBool(fields[colDeice]),
		HasOxygen:      parseBool(fields[colOxygen]),
		HasGPU:         parseBool(fields[colGPU]),
		HasLavService:  parseBool(fields[colLavService]),
		HandlingFee:    handling,
		OvernightFee:   overnight,
		RampFee:        ramp,
		LastUpdated:    now,
		UpdatedBy:      fbo.ImportLabel,
		IsVerified:     true,
	}
	// A waived flag without a fee is meaningless, so it only rides along
	// with one.
	if ramp != nil {
		if raw := strings.TrimSpace(fields[colRampFeeWaived]); raw != "" {
			waived := parseBool(raw)
			record.RampFeeWaived = &waived
		}
	}
	if jetA != nil || avgas != nil {
		record.SetFuelPrice(jetA, avgas, now, fbo.ImportLabel)
	}
	return record, ""
}

// parsePrice parses an optional dollar amount. Empty means absent; anything
// else must be a non-negative number, with or without a leading "$".
func parsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	if v < 0 {
		return nil, fmt.Errorf("negative amount: %q", s)
	}
	return &v, nil
}

// parseBool follows the bundle convention: "1", "yes", and "true" in any
// case mean true, every other value means false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "yes", "true":
		return true
	}
	return false
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
