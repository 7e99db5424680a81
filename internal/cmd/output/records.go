package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/propilot/fbohub/pkg/fbo"
)

// FormatRecords writes a facility collection in the requested format. Table
// output shows the columns pilots ask about first; wide adds amenities and
// provenance.
func FormatRecords(w io.Writer, records []fbo.Record, format Format) error {
	formatter := NewFormatter(format)
	switch format {
	case FormatTable, FormatWide, "":
		return formatter.Format(w, recordsToTableData(records, format == FormatWide))
	default:
		return formatter.Format(w, records)
	}
}

func recordsToTableData(records []fbo.Record, wide bool) Data {
	headers := []string{"NAME", "PHONE", "JET A", "100LL", "RAMP FEE", "VERIFIED"}
	if wide {
		headers = append(headers, "AMENITIES", "UPDATED BY", "UPDATED", "PENDING")
	}
	data := Data{Headers: headers}
	for i := range records {
		r := &records[i]
		row := []string{
			r.Name,
			orDash(r.Phone),
			price(r.JetAPrice),
			price(r.AvgasPrice),
			rampFee(r),
			yesNo(r.IsVerified),
		}
		if wide {
			row = append(row,
				amenities(r),
				r.UpdatedBy,
				r.LastUpdated.Format("2006-01-02"),
				yesNo(r.PendingPush),
			)
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

func orDash(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func price(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *p)
}

func rampFee(r *fbo.Record) string {
	if r.RampFee == nil {
		return "-"
	}
	s := fmt.Sprintf("$%.0f", *r.RampFee)
	if r.RampFeeWaived != nil && *r.RampFeeWaived {
		s += " (waived w/ fuel)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func amenities(r *fbo.Record) string {
	var tags []string
	if r.HasCrewCar {
		tags = append(tags, "crew car")
	}
	if r.HasCrewLounge {
		tags = append(tags, "lounge")
	}
	if r.HasCatering {
		tags = append(tags, "catering")
	}
	if r.HasMaintenance {
		tags = append(tags, "mx")
	}
	if r.HasHangars {
		tags = append(tags, "hangar")
	}
	if r.HasDeice {
		tags = append(tags, "deice")
	}
	if r.HasOxygen {
		tags = append(tags, "oxygen")
	}
	if r.HasGPU {
		tags = append(tags, "gpu")
	}
	if r.HasLavService {
		tags = append(tags, "lav")
	}
	return strings.Join(tags, ", ")
}
