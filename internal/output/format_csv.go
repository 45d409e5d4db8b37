package output

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/planwise/taxgo/internal/domain"
)

// CSVFormatter writes projection rows as CSV for spreadsheet import.
type CSVFormatter struct{}

// FormatProjection generates CSV output for a multi-year projection.
func (cf *CSVFormatter) FormatProjection(rows []domain.YearProjection) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Year",
		"Regime",
		"Gross Income",
		"AGI",
		"Taxable Income",
		"Federal Tax",
		"Capital Gains Tax",
		"State Tax",
		"SE Tax",
		"NIIT",
		"Total Tax",
		"Effective Rate",
		"Take-Home",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Year),
			string(r.Regime),
			r.GrossIncome.StringFixed(2),
			r.AGI.StringFixed(2),
			r.TaxableIncome.StringFixed(2),
			r.FederalTax.StringFixed(2),
			r.CapitalGainsTax.StringFixed(2),
			r.StateTax.StringFixed(2),
			r.SelfEmploymentTax.StringFixed(2),
			r.NetInvestmentIncomeTax.StringFixed(2),
			r.TotalTax.StringFixed(2),
			r.EffectiveRate.StringFixed(4),
			r.TakeHome.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
