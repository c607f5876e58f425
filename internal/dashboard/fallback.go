package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freightwise/freightwise/internal/finance"
)

// fallbackBills is the canned dataset served when the live query loses the
// race. It is deliberately small and obviously representative rather than
// real; the Source field on the payload tells clients which one they got.
var fallbackBills = buildFallbackBills()

func buildFallbackBills() []finance.BillInput {
	base := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	vnd := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return []finance.BillInput{
		{
			ID: 1, Number: "FW-2501-001",
			CustomerID: 1, CustomerName: "Saigon Textiles Co",
			ServiceID: 1, ServiceName: "Sea Freight FCL",
			Date:          base,
			DirectRevenue: vnd(42_000_000),
			Costs: []finance.CostLine{
				{ID: 1, BillID: 1, CostTypeID: 1, CostTypeName: "Ocean freight", SupplierID: 1, SupplierName: "Hai Phong Lines", Amount: vnd(25_000_000), Date: base, Category: finance.CategoryInvoiced},
				{ID: 2, BillID: 1, CostTypeID: 2, CostTypeName: "Customs duty", SupplierID: 2, SupplierName: "Customs Dept", Amount: vnd(6_000_000), Date: base, Category: finance.CategoryPaidOnBehalf},
			},
		},
		{
			ID: 2, Number: "FW-2501-002",
			CustomerID: 2, CustomerName: "Delta Agro Export",
			ServiceID: 2, ServiceName: "Air Freight",
			Date:          base.AddDate(0, 0, 4),
			DirectRevenue: vnd(18_500_000),
			Costs: []finance.CostLine{
				{ID: 3, BillID: 2, CostTypeID: 3, CostTypeName: "Air freight", SupplierID: 3, SupplierName: "VN Cargo Air", Amount: vnd(11_000_000), Date: base.AddDate(0, 0, 4), Category: finance.CategoryInvoiced},
				{ID: 4, BillID: 2, CostTypeID: 4, CostTypeName: "Local trucking", SupplierID: 4, SupplierName: "Mekong Trucking", Amount: vnd(1_800_000), Date: base.AddDate(0, 0, 4), Category: finance.CategoryNoInvoice},
			},
		},
		{
			ID: 3, Number: "FW-2501-003",
			CustomerID: 1, CustomerName: "Saigon Textiles Co",
			ServiceID: 2, ServiceName: "Air Freight",
			Date:          base.AddDate(0, 0, 9),
			DirectRevenue: vnd(9_200_000),
			Costs: []finance.CostLine{
				{ID: 5, BillID: 3, CostTypeID: 3, CostTypeName: "Air freight", SupplierID: 3, SupplierName: "VN Cargo Air", Amount: vnd(5_400_000), Date: base.AddDate(0, 0, 9), Category: finance.CategoryInvoiced},
			},
		},
	}
}
