package handlers

import (
	"net/http"
	"time"

	"fintrack-server/src/apperr"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
	"fintrack-server/src/response"
	"fintrack-server/src/service"
	"fintrack-server/src/util"
)

type ExpenseLedger = service.Ledger[*models.Expense]

func GetExpenses(ledger *ExpenseLedger, rw response.Writer) http.HandlerFunc {
	return listEntries(ledger, "category", rw)
}

func GetExpense(ledger *ExpenseLedger, rw response.Writer) http.HandlerFunc {
	return getEntry(ledger, rw)
}

func CreateExpense(ledger *ExpenseLedger, rw response.Writer) http.HandlerFunc {
	return createEntry[*models.Expense, models.ExpenseRequest](ledger, rw)
}

func UpdateExpense(ledger *ExpenseLedger, rw response.Writer) http.HandlerFunc {
	return updateEntry[*models.Expense, models.ExpenseRequest](ledger, rw)
}

func DeleteExpense(ledger *ExpenseLedger, rw response.Writer) http.HandlerFunc {
	return deleteEntry(ledger, "Expense deleted successfully", rw)
}

func GetExpenseStats(reports *service.Reporting, rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := reports.ExpenseStats(r.Context(), middleware.CallerID(r))
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		response.Data(w, http.StatusOK, stats)
	}
}

// GetExpenseCalendar answers ?month=YYYY-MM, defaulting to the current month.
func GetExpenseCalendar(reports *service.Reporting, rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month := time.Now().UTC()
		if v := r.URL.Query().Get("month"); v != "" {
			parsed, err := util.ParseMonth(v)
			if err != nil {
				rw.Error(w, r, apperr.Validation("Invalid month, expected YYYY-MM"))
				return
			}
			month = parsed
		}

		days, err := reports.Calendar(r.Context(), middleware.CallerID(r), month)
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		response.List(w, days)
	}
}
