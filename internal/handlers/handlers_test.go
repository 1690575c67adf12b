package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/handlers"
)

type HandlersTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockDebt      *MockDebtService
	mockJournal   *MockJournalService
	mockReporting *MockReportingService
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
	suite.router = gin.New()

	suite.mockDebt = new(MockDebtService)
	suite.mockJournal = new(MockJournalService)
	suite.mockReporting = new(MockReportingService)

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Debt:      suite.mockDebt,
		Journal:   suite.mockJournal,
		Reporting: suite.mockReporting,
	})
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestCreateDebtor_Success() {
	req := dto.CreateDebtorRequest{CustomerName: "Amina", InitialDebt: 100000}
	account := &domain.DebtAccount{AccountID: "acc-1", CustomerName: "Amina", TotalDebt: 100000}
	suite.mockDebt.On("CreateDebtor", mock.Anything, req).Return(account, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/debtors", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.DebtAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp.AccountID)
	suite.Equal(domain.StatusActive, resp.Status)
	suite.mockDebt.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestCreateDebtor_BindingRejectsZeroDebt() {
	w := suite.do(http.MethodPost, "/api/v1/debtors", map[string]any{"customerName": "Amina", "initialDebt": 0})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDebt.AssertNotCalled(suite.T(), "CreateDebtor", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestRecordMovement_RejectsUnknownKind() {
	w := suite.do(http.MethodPost, "/api/v1/debtors/acc-1/movements", map[string]any{"kind": "lend", "amount": 10, "note": "x"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDebt.AssertNotCalled(suite.T(), "RecordMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestRecordMovement_NotFound() {
	req := dto.RecordMovementRequest{Kind: domain.Receive, Amount: 40000, Note: "cash"}
	suite.mockDebt.On("RecordMovement", mock.Anything, "missing", req).
		Return(nil, fmt.Errorf("%w: debt account missing", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodPost, "/api/v1/debtors/missing/movements", req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockDebt.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestPayOff_InvalidStateIsConflict() {
	suite.mockDebt.On("PayOff", mock.Anything, "acc-1").
		Return(nil, fmt.Errorf("%w: no outstanding debt", apperrors.ErrInvalidState)).Once()

	w := suite.do(http.MethodPost, "/api/v1/debtors/acc-1/payoff", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestPayOff_Success() {
	movement := &domain.DebtMovement{MovementID: "m-2", DebtAccountID: "acc-1", Kind: domain.Receive, Amount: 60000, Note: "full payoff"}
	suite.mockDebt.On("PayOff", mock.Anything, "acc-1").Return(movement, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/debtors/acc-1/payoff", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.DebtMovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(60000), resp.Amount)
}

func (suite *HandlersTestSuite) TestSetDueDate_Clear() {
	account := &domain.DebtAccount{AccountID: "acc-1", TotalDebt: 5}
	suite.mockDebt.On("SetDueDate", mock.Anything, "acc-1", (*time.Time)(nil)).Return(account, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/debtors/acc-1/due-date", map[string]any{"dueDate": nil})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDebt.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestDeleteDebtor() {
	suite.mockDebt.On("DeleteDebtor", mock.Anything, "acc-1").Return(nil).Once()
	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/debtors/acc-1", nil).Code)

	suite.mockDebt.On("DeleteDebtor", mock.Anything, "acc-1").Return(apperrors.ErrNotFound).Once()
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/v1/debtors/acc-1", nil).Code)
}

func (suite *HandlersTestSuite) TestHistory() {
	history := []domain.RunningBalanceEntry{
		{Movement: domain.DebtMovement{MovementID: "m-2", Kind: domain.Receive, Amount: 40}, Balance: 60},
		{Movement: domain.DebtMovement{MovementID: "m-1", Kind: domain.Give, Amount: 100}, Balance: 100},
	}
	suite.mockDebt.On("RunningBalanceHistory", mock.Anything, "acc-1").Return(history, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/debtors/acc-1/history", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.RunningBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal("m-2", resp[0].Movement.MovementID)
}

func (suite *HandlersTestSuite) TestDispatchReminders() {
	suite.mockDebt.On("DispatchOverdueReminders", mock.Anything, mock.AnythingOfType("time.Time")).Return(3, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/debtors/reminders", nil)

	suite.Equal(http.StatusAccepted, w.Code)
	suite.JSONEq(`{"sent":3}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestRecordTransaction_Success() {
	req := dto.RecordTransactionRequest{Kind: domain.Income, GrossAmount: 1500, Note: "cut"}
	txn := &domain.FinancialTransaction{TransactionID: "t-1", Kind: domain.Income, GrossAmount: 1500, Note: "cut", PaymentStatus: domain.Settled}
	suite.mockJournal.On("RecordTransaction", mock.Anything, req).Return(txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.LineProfit)
	suite.Equal(int64(1500), *resp.LineProfit)
}

func (suite *HandlersTestSuite) TestRecordTransaction_ValidationFromService() {
	req := dto.RecordTransactionRequest{Kind: domain.Expense, GrossAmount: 10, Note: "x"}
	suite.mockJournal.On("RecordTransaction", mock.Anything, req).Return(nil, apperrors.ErrValidation).Once()

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/api/v1/transactions", req).Code)
}

func (suite *HandlersTestSuite) TestListTransactions_BindsQuery() {
	params := dto.ListTransactionsParams{Search: "tea", Kind: domain.Expense, PaymentStatus: domain.Owed}
	suite.mockJournal.On("ListTransactions", mock.Anything, params).Return([]domain.FinancialTransaction{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?search=tea&kind=expense&paymentStatus=owed", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestListTransactions_RejectsBadKind() {
	w := suite.do(http.MethodGet, "/api/v1/transactions?kind=gift", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCategoryPrefill() {
	prefill := domain.TransactionPrefill{Category: "Haircut", GrossAmount: 15000, Matched: true}
	suite.mockJournal.On("ApplyCategoryTemplate", mock.Anything, "haircut").Return(prefill).Once()

	w := suite.do(http.MethodGet, "/api/v1/categories/haircut/prefill", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.TransactionPrefill
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(prefill, resp)
}

func (suite *HandlersTestSuite) TestSummary() {
	summary := &domain.FinancialSummary{
		Window:              domain.WindowThisMonth,
		TotalRevenue:        150000,
		ProfitMarginPercent: decimal.RequireFromString("46.67"),
	}
	suite.mockReporting.On("Summary", mock.Anything, domain.WindowThisMonth, mock.AnythingOfType("time.Time")).Return(summary, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/summary?window=this-month", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"46.67"`)
}

func (suite *HandlersTestSuite) TestSummary_UnknownWindow() {
	suite.mockReporting.On("Summary", mock.Anything, domain.PeriodWindow("fortnight"), mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/reports/summary?window=fortnight", nil).Code)
}

func (suite *HandlersTestSuite) TestSummary_ExplicitReferenceTime() {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	suite.mockReporting.On("Summary", mock.Anything, domain.WindowToday, now).
		Return(&domain.FinancialSummary{Window: domain.WindowToday}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/summary?window=today&now=2025-03-15T10:00:00Z", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/reports/summary?now=yesterday", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestExportDebtors_InternalError() {
	suite.mockReporting.On("ExportDebtors", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("disk gone")).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/debtors/export", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Failed to export debtors"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestListTransactions_Paginates() {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := []domain.FinancialTransaction{
		{TransactionID: "t-1", Kind: domain.Income, GrossAmount: 1, CreatedAt: created},
		{TransactionID: "t-2", Kind: domain.Income, GrossAmount: 2, CreatedAt: created},
		{TransactionID: "t-3", Kind: domain.Expense, GrossAmount: 3, CreatedAt: created},
	}
	suite.mockJournal.On("ListTransactions", mock.Anything, mock.Anything).Return(txns, nil)

	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var first dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &first))
	suite.Require().Len(first.Transactions, 2)
	suite.Require().NotNil(first.NextToken)

	w = suite.do(http.MethodGet, "/api/v1/transactions?limit=2&nextToken="+url.QueryEscape(*first.NextToken), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var second dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &second))
	suite.Require().Len(second.Transactions, 1)
	suite.Equal("t-3", second.Transactions[0].TransactionID)
	suite.Nil(second.NextToken)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/transactions?nextToken=garbage!", nil).Code)
}
