// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/application/usecase/categorization"
	"github.com/spendlens/backend/internal/application/usecase/duplicate"
	"github.com/spendlens/backend/internal/application/usecase/ingestion"
	"github.com/spendlens/backend/internal/application/usecase/recurring"
	"github.com/spendlens/backend/internal/application/usecase/report"
	"github.com/spendlens/backend/internal/application/usecase/transaction"
	"github.com/spendlens/backend/internal/domain/valueobject"
	"github.com/spendlens/backend/internal/infra/server/router"
	"github.com/spendlens/backend/internal/integration/adapters"
	"github.com/spendlens/backend/internal/integration/email/templates"
	"github.com/spendlens/backend/internal/integration/entrypoint/controller"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
	"github.com/spendlens/backend/internal/integration/persistence"
	"github.com/spendlens/backend/internal/integration/persistence/model"
	"github.com/spendlens/backend/test/integration/mock"
)

const (
	testJWTSecret    = "test-jwt-secret-key-for-testing-purposes"
	testIngestAPIKey = "test-ingest-key"
)

var (
	serverInit   sync.Once
	testServer   *httptest.Server
	testDB       *mock.Db
	emailMock    *mock.EmailSender
	tokenService adapter.TokenService
)

// testContext holds per-scenario state.
type testContext struct {
	client            *http.Client
	headers           map[string]string
	accessToken       string
	lastTransactionID uuid.UUID
	response          *response
}

type response struct {
	status int
	raw    []byte
	body   any
}

// InitializeTestSuite sets up resources shared by all scenarios.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		// Rate limiting is skipped in the test environment.
		_ = os.Setenv("ENV", "test")
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		startServer()
		test.headers = make(map[string]string)
		test.accessToken = ""
		test.lastTransactionID = uuid.Nil
		test.response = nil
		emailMock.Reset()
		if err := testDB.ClearDB(); err != nil {
			return ctx, err
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Auth and header steps
	ctx.Given(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Data setup steps
	ctx.Given(`^the following transactions exist for user "([^"]*)":$`, test.theFollowingTransactionsExistForUser)
	ctx.Given(`^email delivery is not configured$`, test.emailDeliveryIsNotConfigured)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)

	// Database and email assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^one digest email should have been sent to "([^"]*)"$`, test.oneDigestEmailShouldHaveBeenSentTo)
	ctx.Then(`^no digest email should have been sent$`, test.noDigestEmailShouldHaveBeenSent)
}

// startServer builds the full application stack once, backed by the shared
// in-memory database and the recording email sender.
func startServer() {
	serverInit.Do(func() {
		testDB = mock.NewDb(map[string]any{
			"transactions": &model.TransactionModel{},
			"sms_messages": &model.SMSMessageModel{},
		})
		emailMock = mock.NewEmailSender()

		transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
		smsRepo := persistence.NewSMSMessageRepository(testDB.DbConn)

		// No API key: categorization and insights run on the deterministic rules.
		aiService := adapters.NewGeminiService("", "", 0)
		tokenService = adapters.NewTokenService(testJWTSecret, time.Hour)
		renderer, err := templates.NewRenderer()
		if err != nil {
			panic(err)
		}

		duplicateConfig := valueobject.DefaultDuplicateConfig()
		recurringConfig := valueobject.DefaultRecurringConfig()

		categorizeUseCase := categorization.NewCategorizeUseCase(aiService)
		checkDuplicateUseCase := duplicate.NewCheckDuplicateUseCase(transactionRepo, duplicateConfig)
		findGroupsUseCase := duplicate.NewFindGroupsUseCase(transactionRepo, duplicateConfig)
		detectPatternsUseCase := recurring.NewDetectPatternsUseCase(transactionRepo, recurringConfig)
		matchPatternUseCase := recurring.NewMatchPatternUseCase(recurringConfig)

		createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categorizeUseCase, checkDuplicateUseCase)
		listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
		deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

		ingestSMSUseCase := ingestion.NewIngestSMSUseCase(
			transactionRepo,
			smsRepo,
			categorizeUseCase,
			checkDuplicateUseCase,
			detectPatternsUseCase,
			matchPatternUseCase,
		)
		listMessagesUseCase := ingestion.NewListMessagesUseCase(smsRepo)

		summarizeUseCase := report.NewSummarizeUseCase(transactionRepo)
		insightsUseCase := report.NewInsightsUseCase(aiService)
		sendDigestUseCase := report.NewSendDigestUseCase(summarizeUseCase, insightsUseCase, renderer, emailMock)

		healthController := controller.NewHealthController(
			func() bool { return testDB != nil && testDB.DbConn != nil },
			nil,
		)
		ingestController := controller.NewIngestController(ingestSMSUseCase, listMessagesUseCase)
		transactionController := controller.NewTransactionController(
			createTransactionUseCase,
			listTransactionsUseCase,
			deleteTransactionUseCase,
		)
		reportController := controller.NewReportController(
			detectPatternsUseCase,
			findGroupsUseCase,
			summarizeUseCase,
			insightsUseCase,
			sendDigestUseCase,
		)

		authMiddleware := middleware.NewAuthMiddleware(tokenService)
		ingestKeyMiddleware := middleware.NewIngestKeyMiddleware(testIngestAPIKey)
		ingestRateLimiter := middleware.NewRateLimiter(0, 0)

		r := router.NewRouter(
			healthController,
			ingestController,
			transactionController,
			reportController,
			authMiddleware,
			ingestKeyMiddleware,
			ingestRateLimiter,
		)

		testServer = httptest.NewServer(r.Setup("test"))
	})
}

// Step implementations

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(testServer.URL + "/health")
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) iAmAuthenticatedAs(userID string) error {
	token, err := tokenService.GenerateAccessToken(userID)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theFollowingTransactionsExistForUser(userID string, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("transactions table needs a header row and at least one data row")
	}

	columns := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}

	for _, row := range table.Rows[1:] {
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row.Cells) {
				return ""
			}
			return row.Cells[idx].Value
		}

		amount, err := decimal.NewFromString(cell("amount"))
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", cell("amount"), err)
		}
		daysAgo, err := strconv.Atoi(cell("days_ago"))
		if err != nil {
			return fmt.Errorf("invalid days_ago %q: %w", cell("days_ago"), err)
		}

		date := time.Now().UTC().AddDate(0, 0, -daysAgo)
		txn := &model.TransactionModel{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      amount,
			Description: cell("description"),
			Category:    cell("category"),
			Source:      cell("source"),
			Date:        date,
			CreatedAt:   date,
		}
		if err := testDB.DbConn.Create(txn).Error; err != nil {
			return err
		}
		t.lastTransactionID = txn.ID
	}

	return nil
}

func (t *testContext) emailDeliveryIsNotConfigured() error {
	emailMock.SetConfigured(false)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	return strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, testServer.URL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, raw: raw}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err == nil {
		t.response.body = parsed
		t.captureTransactionID(parsed)
	} else {
		t.response.body = string(raw)
	}

	return nil
}

func (t *testContext) captureTransactionID(body map[string]any) {
	txn, ok := body["transaction"].(map[string]any)
	if !ok {
		return
	}
	idStr, ok := txn["id"].(string)
	if !ok {
		return
	}
	if id, err := uuid.Parse(idStr); err == nil {
		t.lastTransactionID = id
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), expected) {
		return fmt.Errorf("response does not contain %q (body: %s)", expected, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	actual := fmt.Sprintf("%v", value)
	if actual != expectedValue {
		return fmt.Errorf("field %q expected %q, got %q (body: %s)", field, expectedValue, actual, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if value := getFieldValue(t.response.body, field); value != nil {
		return fmt.Errorf("field %q should not exist but was %v", field, value)
	}
	return nil
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return nil, fmt.Errorf("field %q not found in response (body: %s)", field, string(t.response.raw))
	}
	return value, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table %q not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))

	if err := testDB.DbConn.Find(slicePtr.Interface()).Error; err != nil {
		return err
	}

	count := slicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q, got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) oneDigestEmailShouldHaveBeenSentTo(address string) error {
	sent := emailMock.Sent()
	if len(sent) != 1 {
		return fmt.Errorf("expected 1 sent email, got %d", len(sent))
	}
	if sent[0].To != address {
		return fmt.Errorf("expected email to %q, got %q", address, sent[0].To)
	}
	return nil
}

func (t *testContext) noDigestEmailShouldHaveBeenSent() error {
	if sent := emailMock.Sent(); len(sent) != 0 {
		return fmt.Errorf("expected no sent emails, got %d", len(sent))
	}
	return nil
}

// getFieldValue resolves a dot-separated path against a decoded JSON value.
// Numeric path segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	field := object
	for _, current := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(current); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[current]
	}
	return field
}
