package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fintrack-server/src/handlers"
	"fintrack-server/src/middleware"
	"fintrack-server/src/response"
	"fintrack-server/src/service"
)

// Services bundles everything the HTTP surface calls into.
type Services struct {
	Identity *service.Identity
	Expenses *handlers.ExpenseLedger
	Incomes  *handlers.IncomeLedger
	Reports  *service.Reporting
}

type Options struct {
	CORSOrigins  []string
	IsDemo       bool
	ErrorDetails bool
}

func NewRouter(svc Services, opts Options) *chi.Mux {
	rw := response.Writer{Detailed: opts.ErrorDetails}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))
	r.Use(middleware.DemoModeMiddleware(opts.IsDemo))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusNotFound, "Route not found")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register(svc.Identity, rw))
		r.Post("/auth/login", handlers.Login(svc.Identity, rw))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(svc.Identity)).Group(func(r chi.Router) {
			r.Get("/auth/me", handlers.GetProfile(svc.Identity, rw))

			// Expenses
			r.Get("/expenses", handlers.GetExpenses(svc.Expenses, rw))
			r.Post("/expenses", handlers.CreateExpense(svc.Expenses, rw))
			r.Get("/expenses/stats", handlers.GetExpenseStats(svc.Reports, rw))
			r.Get("/expenses/calendar", handlers.GetExpenseCalendar(svc.Reports, rw))
			r.Get("/expenses/{id}", handlers.GetExpense(svc.Expenses, rw))
			r.Put("/expenses/{id}", handlers.UpdateExpense(svc.Expenses, rw))
			r.Delete("/expenses/{id}", handlers.DeleteExpense(svc.Expenses, rw))

			// Income
			r.Get("/income", handlers.GetIncomes(svc.Incomes, rw))
			r.Post("/income", handlers.CreateIncome(svc.Incomes, rw))
			r.Get("/income/total", handlers.GetIncomeTotal(svc.Reports, rw))
			r.Get("/income/{id}", handlers.GetIncome(svc.Incomes, rw))
			r.Put("/income/{id}", handlers.UpdateIncome(svc.Incomes, rw))
			r.Delete("/income/{id}", handlers.DeleteIncome(svc.Incomes, rw))

			r.Get("/summary", handlers.GetSummary(svc.Reports, rw))
		})
	})

	return r
}
