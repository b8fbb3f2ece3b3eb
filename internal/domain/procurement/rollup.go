package procurement

import "sort"

const topSupplierLimit = 10

// Summary is the aggregate view over a window of orders.
type Summary struct {
	TotalSpend        float64             `json:"total_spend"`
	OrderCount        int                 `json:"order_count"`
	AverageOrderValue float64             `json:"average_order_value"`
	TopSuppliers      []SupplierSpend     `json:"top_suppliers"`
	Categories        []CategoryBreakdown `json:"categories"`
	MonthlyTrend      []MonthlySpend      `json:"monthly_trend"`
	StatusCounts      map[string]int      `json:"status_counts"`
}

type SupplierSpend struct {
	SupplierName string  `json:"supplier_name"`
	Spend        float64 `json:"spend"`
	OrderCount   int     `json:"order_count"`
	Percentage   float64 `json:"percentage"`
}

type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Spend      float64 `json:"spend"`
	Percentage float64 `json:"percentage"`
}

type MonthlySpend struct {
	Month      string  `json:"month"`
	Spend      float64 `json:"spend"`
	OrderCount int     `json:"order_count"`
}

// Rollup aggregates orders in a single pass. Percentages are shares of
// grand-total spend and are 0 when the grand total is 0, so empty or
// zero-value input never divides by zero.
func Rollup(orders []*Order) *Summary {
	s := &Summary{StatusCounts: make(map[string]int)}

	supplierSpend := make(map[string]*SupplierSpend)
	categorySpend := make(map[string]float64)
	monthly := make(map[string]*MonthlySpend)

	for _, o := range orders {
		s.TotalSpend += o.TotalAmount
		s.OrderCount++
		s.StatusCounts[string(o.Status)]++

		sup, ok := supplierSpend[o.SupplierName]
		if !ok {
			sup = &SupplierSpend{SupplierName: o.SupplierName}
			supplierSpend[o.SupplierName] = sup
		}
		sup.Spend += o.TotalAmount
		sup.OrderCount++

		month := o.OrderDate.Format("2006-01")
		m, ok := monthly[month]
		if !ok {
			m = &MonthlySpend{Month: month}
			monthly[month] = m
		}
		m.Spend += o.TotalAmount
		m.OrderCount++

		for _, it := range o.Items {
			categorySpend[it.Category] += it.Subtotal
		}
	}

	if s.OrderCount > 0 {
		s.AverageOrderValue = s.TotalSpend / float64(s.OrderCount)
	}

	for _, sup := range supplierSpend {
		if s.TotalSpend > 0 {
			sup.Percentage = sup.Spend / s.TotalSpend * 100
		}
		s.TopSuppliers = append(s.TopSuppliers, *sup)
	}
	sort.Slice(s.TopSuppliers, func(i, j int) bool {
		if s.TopSuppliers[i].Spend != s.TopSuppliers[j].Spend {
			return s.TopSuppliers[i].Spend > s.TopSuppliers[j].Spend
		}
		return s.TopSuppliers[i].SupplierName < s.TopSuppliers[j].SupplierName
	})
	if len(s.TopSuppliers) > topSupplierLimit {
		s.TopSuppliers = s.TopSuppliers[:topSupplierLimit]
	}

	var categoryTotal float64
	for _, spend := range categorySpend {
		categoryTotal += spend
	}
	for cat, spend := range categorySpend {
		b := CategoryBreakdown{Category: cat, Spend: spend}
		if categoryTotal > 0 {
			b.Percentage = spend / categoryTotal * 100
		}
		s.Categories = append(s.Categories, b)
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		return s.Categories[i].Category < s.Categories[j].Category
	})

	for _, m := range monthly {
		s.MonthlyTrend = append(s.MonthlyTrend, *m)
	}
	sort.Slice(s.MonthlyTrend, func(i, j int) bool {
		return s.MonthlyTrend[i].Month < s.MonthlyTrend[j].Month
	})

	return s
}
