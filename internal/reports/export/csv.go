// Package export serialises reports to downloadable formats.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/freightwise/freightwise/internal/reports"
)

// WriteCustomerCSV serialises the per-customer report.
func WriteCustomerCSV(w io.Writer, report *reports.CustomerReport) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Customer", "Bills", "Revenue", "Total Cost", "Invoiced Cost", "Profit", "Margin %", "Share %"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := writer.Write([]string{
			row.Name,
			strconv.Itoa(row.BillCount),
			money(row.Revenue),
			money(row.Costs.Total()),
			money(row.Costs.Invoiced),
			money(row.Profit),
			pct(row.Margin),
			pct(row.Percentage),
		}); err != nil {
			return err
		}
	}
	t := report.Totals
	if err := writer.Write([]string{"Total", strconv.Itoa(t.BillCount), money(t.Revenue), money(t.TotalCost), money(t.InvoicedCost), money(t.Profit), pct(t.Margin), ""}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteSupplierCSV serialises the per-supplier cost report.
func WriteSupplierCSV(w io.Writer, report *reports.SupplierReport) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Supplier", "Cost Lines", "Invoiced", "Paid On Behalf", "No Invoice", "Total", "Share %"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := writer.Write([]string{
			row.SupplierName,
			strconv.Itoa(row.CostCount),
			money(row.Costs.Invoiced),
			money(row.Costs.PaidOnBehalf),
			money(row.Costs.NoInvoice),
			money(row.Total),
			pct(row.Percentage),
		}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{"Total", "", "", "", "", money(report.TotalCost), ""}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteProfitLossCSV serialises the monthly profit-and-loss series.
func WriteProfitLossCSV(w io.Writer, report *reports.ProfitLossReport) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Month", "Bills", "Revenue", "Total Cost", "Invoiced Cost", "Profit", "Margin %"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := writer.Write([]string{
			row.Label,
			strconv.Itoa(row.BillCount),
			money(row.Revenue),
			money(row.Costs.Total()),
			money(row.Costs.Invoiced),
			money(row.Profit),
			pct(row.Margin),
		}); err != nil {
			return err
		}
	}
	t := report.Totals
	if err := writer.Write([]string{"Total", strconv.Itoa(t.BillCount), money(t.Revenue), money(t.TotalCost), money(t.InvoicedCost), money(t.Profit), pct(t.Margin)}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteBillDetailCSV serialises one customer's bill lines, keeping the
// per-bill summary and grand-total rows.
func WriteBillDetailCSV(w io.Writer, report *reports.BillDetailReport) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Bill", "Date", "Cost Type", "Supplier", "Category", "Cost", "Revenue", "Profit"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		record := []string{
			row.BillNumber,
			"",
			row.CostTypeName,
			row.SupplierName,
			string(row.Category),
			money(row.Cost),
			money(row.Revenue),
			money(row.Profit),
		}
		if !row.Date.IsZero() {
			record[1] = row.Date.Format("2006-01-02")
		}
		switch row.Kind {
		case reports.RowSummary:
			record[2] = "Bill total"
		case reports.RowTotal:
			record[0] = "Grand total"
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func money(v decimal.Decimal) string {
	return v.StringFixed(0)
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
