package models

// CategoryTotal is one row of the expense breakdown. The `_id` key holds the
// category name.
type CategoryTotal struct {
	Category    Category `json:"_id"`
	TotalAmount float64  `json:"totalAmount"`
	Count       int      `json:"count"`
}

type Totals struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type ExpenseStats struct {
	CategoryWise []CategoryTotal `json:"categoryWise"`
	Overall      Totals          `json:"overall"`
}

// DailyTotal feeds the calendar heatmap. Date is formatted YYYY-MM-DD.
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type Summary struct {
	Income   Totals  `json:"income"`
	Expenses Totals  `json:"expenses"`
	Balance  float64 `json:"balance"`
}
