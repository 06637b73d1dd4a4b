package handlers

import (
	"net/http"

	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
	"fintrack-server/src/response"
	"fintrack-server/src/service"
)

type IncomeLedger = service.Ledger[*models.Income]

func GetIncomes(ledger *IncomeLedger, rw response.Writer) http.HandlerFunc {
	return listEntries(ledger, "source", rw)
}

func GetIncome(ledger *IncomeLedger, rw response.Writer) http.HandlerFunc {
	return getEntry(ledger, rw)
}

func CreateIncome(ledger *IncomeLedger, rw response.Writer) http.HandlerFunc {
	return createEntry[*models.Income, models.IncomeRequest](ledger, rw)
}

func UpdateIncome(ledger *IncomeLedger, rw response.Writer) http.HandlerFunc {
	return updateEntry[*models.Income, models.IncomeRequest](ledger, rw)
}

func DeleteIncome(ledger *IncomeLedger, rw response.Writer) http.HandlerFunc {
	return deleteEntry(ledger, "Income deleted successfully", rw)
}

func GetIncomeTotal(reports *service.Reporting, rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := reports.IncomeTotal(r.Context(), middleware.CallerID(r))
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		response.Data(w, http.StatusOK, total)
	}
}
