package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"fintrack-server/src/auth"
	"fintrack-server/src/db/sqlite"
	"fintrack-server/src/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type RouterTestSuite struct {
	suite.Suite
	store  *sqlite.Store
	router http.Handler
}

func newServices(store *sqlite.Store) Services {
	identity := service.NewIdentity(
		store.Users,
		auth.NewPasswordHasher(bcrypt.MinCost),
		auth.NewTokenManager("router-secret", time.Hour),
		nil,
	)
	return Services{
		Identity: identity,
		Expenses: service.NewExpenseLedger(store.Expenses),
		Incomes:  service.NewIncomeLedger(store.Incomes),
		Reports:  service.NewReporting(store.Expenses, store.Incomes),
	}
}

func (s *RouterTestSuite) SetupTest() {
	store, err := sqlite.New(":memory:")
	require.NoError(s.T(), err)
	s.store = store
	s.router = NewRouter(newServices(store), Options{CORSOrigins: []string{"*"}})
}

func (s *RouterTestSuite) TearDownTest() {
	s.store.Close()
}

func (s *RouterTestSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s *RouterTestSuite) registerUser(email string) string {
	rec, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ana",
		"email":    email,
		"password": "secret123",
		"gender":   "Female",
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	var user struct {
		ID    string `json:"_id"`
		Token string `json:"token"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &user))
	require.NotEmpty(s.T(), user.Token)
	return user.Token
}

func (s *RouterTestSuite) createExpense(token string, body map[string]any) string {
	rec, env := s.do(http.MethodPost, "/api/expenses", token, body)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"_id"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &created))
	return created.ID
}

func lunchBody() map[string]any {
	return map[string]any{"title": "Lunch", "amount": 250, "category": "Food", "date": "2025-01-10"}
}

func (s *RouterTestSuite) TestHealth() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{"status":"OK","message":"Server is running"}`, rec.Body.String())
}

func (s *RouterTestSuite) TestRegisterLoginAndProfile() {
	s.registerUser("ana@example.com")

	rec, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "x", "gender": "Female",
	})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "User already exists with this email", env.Message)

	rec, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "password": "wrong"})
	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
	assert.Equal(s.T(), "Invalid credentials", env.Message)
	assert.False(s.T(), env.Success)

	rec, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "password": "secret123"})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &login))

	rec, env = s.do(http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var profile map[string]any
	require.NoError(s.T(), json.Unmarshal(env.Data, &profile))
	assert.Equal(s.T(), "ana@example.com", profile["email"])
	assert.NotContains(s.T(), profile, "token")
	assert.NotContains(s.T(), profile, "password")
}

func (s *RouterTestSuite) TestProtectedRoutesRequireToken() {
	rec, env := s.do(http.MethodGet, "/api/expenses", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
	assert.Equal(s.T(), "Not authorized, no token", env.Message)

	rec, env = s.do(http.MethodGet, "/api/expenses", "not-a-jwt", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
	assert.Equal(s.T(), "Not authorized, token failed", env.Message)
}

func (s *RouterTestSuite) TestExpenseLifecycle() {
	token := s.registerUser("ana@example.com")
	id := s.createExpense(token, lunchBody())

	rec, env := s.do(http.MethodGet, "/api/expenses/"+id, token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(s.T(), json.Unmarshal(env.Data, &got))
	assert.Equal(s.T(), "Lunch", got["title"])
	assert.Equal(s.T(), float64(250), got["amount"])

	rec, env = s.do(http.MethodPut, "/api/expenses/"+id, token, map[string]any{"amount": 300})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NoError(s.T(), json.Unmarshal(env.Data, &got))
	assert.Equal(s.T(), float64(300), got["amount"])
	assert.Equal(s.T(), "Lunch", got["title"])

	rec, env = s.do(http.MethodDelete, "/api/expenses/"+id, token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "Expense deleted successfully", env.Message)

	rec, env = s.do(http.MethodGet, "/api/expenses/"+id, token, nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
	assert.Equal(s.T(), "Expense not found", env.Message)
}

func (s *RouterTestSuite) TestCreateExpenseValidation() {
	token := s.registerUser("ana@example.com")

	rec, env := s.do(http.MethodPost, "/api/expenses", token, map[string]any{"title": "Lunch"})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "Please provide title, amount, category, and date", env.Message)

	body := lunchBody()
	body["amount"] = -5
	rec, _ = s.do(http.MethodPost, "/api/expenses", token, body)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/expenses", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NotNil(s.T(), env.Count)
	assert.Equal(s.T(), 0, *env.Count)
	assert.JSONEq(s.T(), `[]`, string(env.Data))
}

func (s *RouterTestSuite) TestOwnershipIsEnforced() {
	alice := s.registerUser("alice@example.com")
	bob := s.registerUser("bob@example.com")
	id := s.createExpense(alice, lunchBody())

	rec, env := s.do(http.MethodGet, "/api/expenses/"+id, bob, nil)
	assert.Equal(s.T(), http.StatusForbidden, rec.Code)
	assert.Equal(s.T(), "Not authorized to access this expense", env.Message)
	assert.Empty(s.T(), env.Data)

	rec, _ = s.do(http.MethodPut, "/api/expenses/"+id, bob, map[string]any{"amount": 1})
	assert.Equal(s.T(), http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodDelete, "/api/expenses/"+id, bob, nil)
	assert.Equal(s.T(), http.StatusForbidden, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/expenses", bob, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), 0, *env.Count)
}

func (s *RouterTestSuite) TestListFiltersAndStats() {
	token := s.registerUser("ana@example.com")
	meeting := lunchBody()
	meeting["title"] = "Lunch Meeting"
	s.createExpense(token, meeting)
	s.createExpense(token, map[string]any{"title": "Taxi", "amount": 40, "category": "Transport", "date": "2025-01-12"})

	rec, env := s.do(http.MethodGet, "/api/expenses?search=lunch", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), 1, *env.Count)

	rec, env = s.do(http.MethodGet, "/api/expenses?startDate=2025-01-12&endDate=2025-01-12", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), 1, *env.Count)

	rec, env = s.do(http.MethodGet, "/api/expenses?startDate=yesterday", token, nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "Invalid startDate", env.Message)

	rec, env = s.do(http.MethodGet, "/api/expenses/stats", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{
		"categoryWise": [
			{"_id": "Food", "totalAmount": 250, "count": 1},
			{"_id": "Transport", "totalAmount": 40, "count": 1}
		],
		"overall": {"total": 290, "count": 2}
	}`, string(env.Data))

	rec, env = s.do(http.MethodGet, "/api/expenses/calendar?month=2025-01", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), 2, *env.Count)

	rec, _ = s.do(http.MethodGet, "/api/expenses/calendar?month=January", token, nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestIncomeAndSummary() {
	token := s.registerUser("ana@example.com")

	rec, env := s.do(http.MethodGet, "/api/income/total", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{"total":0,"count":0}`, string(env.Data))

	rec, env = s.do(http.MethodPost, "/api/income", token, map[string]any{"amount": 1000, "source": "Salary", "date": "2025-01-01"})
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"_id"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &created))

	rec, _ = s.do(http.MethodGet, "/api/income/"+created.ID, token, nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/income?source=Bonus", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), 0, *env.Count)

	s.createExpense(token, lunchBody())
	rec, env = s.do(http.MethodGet, "/api/summary", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{"income":{"total":1000,"count":1},"expenses":{"total":250,"count":1},"balance":750}`, string(env.Data))

	rec, env = s.do(http.MethodDelete, "/api/income/"+created.ID, token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "Income deleted successfully", env.Message)
}

func (s *RouterTestSuite) TestOversizedBodyRejected() {
	token := s.registerUser("ana@example.com")

	body := lunchBody()
	body["description"] = strings.Repeat("x", 2<<20)
	rec, env := s.do(http.MethodPost, "/api/expenses", token, body)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "Invalid request body", env.Message)

	rec, env = s.do(http.MethodGet, "/api/expenses", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), 0, *env.Count)
}

func (s *RouterTestSuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/api/health", "", nil)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "fintrack_http_requests_total")
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestDemoModeBlocksWrites(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer store.Close()
	router := NewRouter(newServices(store), Options{CORSOrigins: []string{"*"}, IsDemo: true})

	body, _ := json.Marshal(map[string]string{"name": "Ana", "email": "demo@example.com", "password": "pw", "gender": "Other"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/expenses", bytes.NewReader([]byte(`{}`))))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Demo mode: only GET requests are allowed")
}
