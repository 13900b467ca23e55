package accounts_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brave-intl/restpipe/libs/correlation"
	"github.com/brave-intl/restpipe/libs/handlers"
	"github.com/brave-intl/restpipe/libs/logging"
	"github.com/brave-intl/restpipe/libs/middleware"
	"github.com/brave-intl/restpipe/libs/pipeline"
	"github.com/brave-intl/restpipe/services/accounts"
	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type ControllersTestSuite struct {
	suite.Suite
	buffer *bytes.Buffer
	router *chi.Mux
}

func TestControllersTestSuite(t *testing.T) {
	suite.Run(t, new(ControllersTestSuite))
}

func (suite *ControllersTestSuite) SetupTest() {
	suite.buffer = &bytes.Buffer{}
	logger := zerolog.New(suite.buffer)

	service := accounts.NewService(accounts.NewMemory())
	p := pipeline.New(&logger, pipeline.WithAPIVersion("v1"), pipeline.WithCallerContextSeed(true))

	suite.router = chi.NewRouter()
	suite.router.Mount("/v1/accounts", accounts.Router(service, p, middleware.InstrumentHandler))
}

func (suite *ControllersTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, r)
	return w
}

func (suite *ControllersTestSuite) data(w *httptest.ResponseRecorder) map[string]interface{} {
	var envelope struct {
		Data       map[string]interface{} `json:"data"`
		APIVersion string                 `json:"apiVersion"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.Require().Equal("v1", envelope.APIVersion)
	return envelope.Data
}

func (suite *ControllersTestSuite) events(message string) []map[string]interface{} {
	var events []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(suite.buffer.String()), "\n") {
		var event map[string]interface{}
		if json.Unmarshal([]byte(line), &event) == nil && event["message"] == message {
			events = append(events, event)
		}
	}
	return events
}

func (suite *ControllersTestSuite) lastEvent(message string) map[string]interface{} {
	events := suite.events(message)
	suite.Require().NotEmpty(events, message)
	return events[len(events)-1]
}

func (suite *ControllersTestSuite) createAccount(deposit string) string {
	w := suite.do(http.MethodPost, "/v1/accounts",
		fmt.Sprintf(`{"owner":"alice","pin":"1234","initialDeposit":"%s"}`, deposit))
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return suite.data(w)["id"].(string)
}

func (suite *ControllersTestSuite) TestCreateAccountMasksPin() {
	w := suite.do(http.MethodPost, "/v1/accounts", `{"owner":"alice","pin":"86420135","initialDeposit":"10"}`)

	suite.Require().Equal(http.StatusCreated, w.Code)
	data := suite.data(w)
	suite.Assert().Equal("alice", data["owner"])
	suite.Assert().Equal("10", data["balance"])
	suite.Assert().NotContains(data, "pin")
	suite.Assert().Equal(w.Header().Get(correlation.HeaderKey), data["correlationId"])

	inbound := suite.lastEvent("Rest request received")
	suite.Assert().Equal(`{"owner":"alice","pin":"**********","initialDeposit":"10"}`, inbound[logging.RequestBodyField])
	suite.Assert().Equal(logging.SensitiveRawBodyPlaceholder, inbound[logging.RawRequestBodyField])
	suite.Assert().NotContains(suite.buffer.String(), "86420135")
}

func (suite *ControllersTestSuite) TestCreateAccountWithoutBody() {
	w := suite.do(http.MethodPost, "/v1/accounts", "")

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Assert().Equal(
		`{"error":{"code":"400","message":"BadRequest","errors":[{"message":"request body is required","reason":"NULL_REQUEST"}]}}`,
		w.Body.String())
}

func (suite *ControllersTestSuite) TestCreateAccountMalformedBody() {
	w := suite.do(http.MethodPost, "/v1/accounts", `{"owner":`)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Assert().Contains(w.Body.String(), `"reason":"PARSE_ERROR"`)
	suite.Assert().NotContains(w.Body.String(), handlers.ReasonValidationError)
}

func (suite *ControllersTestSuite) TestCreateAccountContractViolations() {
	w := suite.do(http.MethodPost, "/v1/accounts", `{"pin":"12","initialDeposit":"-1"}`)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Assert().Contains(w.Body.String(), `"reason":"VALIDATION_ERROR"`)
	suite.Assert().Contains(w.Body.String(), "owner: non zero value required")
	suite.Assert().Contains(w.Body.String(), "pin: 12 does not validate as stringlength(4|8)")
	suite.Assert().Contains(w.Body.String(), "initialDeposit: must not be negative")
}

func (suite *ControllersTestSuite) TestCreateAccountMasksCaseVariantPin() {
	w := suite.do(http.MethodPost, "/v1/accounts", `{"owner":"alice","PIN":"98765432"}`)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	inbound := suite.lastEvent("Rest request received")
	suite.Assert().Equal(`{"owner":"alice","PIN":"**********"}`, inbound[logging.RequestBodyField])
	suite.Assert().NotContains(suite.buffer.String(), "98765432")
}

func (suite *ControllersTestSuite) TestGetAccount() {
	id := suite.createAccount("5")

	w := suite.do(http.MethodGet, "/v1/accounts/"+id, "")

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Assert().Equal(id, suite.data(w)["id"])

	outbound := suite.lastEvent("Rest response sent")
	suite.Assert().Equal(float64(http.StatusOK), outbound[logging.StatusCodeField])
	suite.Assert().Equal("AccountsController.Get", outbound[logging.ControllerField])
	suite.Assert().Contains(outbound[logging.ResponseBodyField], id)
}

func (suite *ControllersTestSuite) TestGetUnknownAccount() {
	id := "0f8fad5b-d9cb-469f-a165-70867728950e"
	w := suite.do(http.MethodGet, "/v1/accounts/"+id, "")

	suite.Require().Equal(http.StatusNotFound, w.Code)
	suite.Assert().Equal(
		`{"error":{"code":"404","message":"NotFound","errors":[{"message":"account `+id+` not found","reason":"ACCOUNT_NOT_FOUND"}]}}`,
		w.Body.String())
}

func (suite *ControllersTestSuite) TestGetAccountInvalidIdentifier() {
	w := suite.do(http.MethodGet, "/v1/accounts/not-a-uuid", "")

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Assert().Contains(w.Body.String(), `"reason":"VALIDATION_ERROR"`)
}

func (suite *ControllersTestSuite) TestPatchAccount() {
	id := suite.createAccount("0")

	w := suite.do(http.MethodPatch, "/v1/accounts/"+id, `{"pin":"97531864","nickname":"savings"}`)

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Assert().Equal("savings", suite.data(w)["nickname"])

	inbound := suite.lastEvent("Rest request received")
	suite.Assert().Equal(`{"pin":"**********","nickname":"savings"}`, inbound[logging.RequestBodyField])
	suite.Assert().NotContains(suite.buffer.String(), "97531864")

	w = suite.do(http.MethodPatch, "/v1/accounts/"+id, `{}`)
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Assert().Contains(w.Body.String(), "at least one of nickname, pin is required")
}

func (suite *ControllersTestSuite) TestWithdrawInsufficientFunds() {
	id := suite.createAccount("5")

	w := suite.do(http.MethodPost, "/v1/accounts/"+id+"/withdrawals", `{"amount":"50","pin":"1234"}`)

	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Assert().Equal(
		`{"error":{"code":"422","message":"Unprocessable Entity","errors":[{"message":"BUSINESS_VIOLATION","reason":"INSUFFICIENT_FUNDS"}]}}`,
		w.Body.String())
	suite.Assert().Empty(suite.events("Critical exception occured while processing request in controller AccountsController.Withdraw"))
}

func (suite *ControllersTestSuite) TestWithdrawPinMismatch() {
	id := suite.createAccount("5")

	w := suite.do(http.MethodPost, "/v1/accounts/"+id+"/withdrawals", `{"amount":"1","pin":"0000"}`)

	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Assert().Contains(w.Body.String(), `"reason":"PIN_MISMATCH"`)
}

func (suite *ControllersTestSuite) TestWithdrawNonPositiveAmount() {
	id := suite.createAccount("5")

	w := suite.do(http.MethodPost, "/v1/accounts/"+id+"/withdrawals", `{"amount":"0","pin":"1234"}`)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Assert().Contains(w.Body.String(), `"reason":"VALIDATION_ERROR"`)

	w = suite.do(http.MethodPost, "/v1/accounts/"+id+"/withdrawals", `{"reference":"rent"}`)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Assert().Contains(w.Body.String(), "amount: non zero value required")
	suite.Assert().Contains(w.Body.String(), "pin: non zero value required")
}

func (suite *ControllersTestSuite) TestWithdrawSeedsCorrelationFromCallerContext() {
	id := suite.createAccount("5")
	caller := "9b2e4a2c-1f36-4c3e-8f5e-1c2d8f5b6a70"

	w := suite.do(http.MethodPost, "/v1/accounts/"+id+"/withdrawals",
		`{"amount":"1.5","pin":"1234","reference":"coffee","callerContext":"`+caller+`"}`)

	suite.Require().Equal(http.StatusCreated, w.Code)
	data := suite.data(w)
	suite.Assert().Equal("3.5", data["balance"])
	suite.Assert().Equal(caller, data["correlationId"])
	suite.Assert().Equal(caller, w.Header().Get(correlation.HeaderKey))

	inbound := suite.lastEvent("Rest request received")
	suite.Assert().Equal(caller, inbound["correlationId"])
	annotations := inbound[logging.AnnotationsField].(map[string]interface{})
	suite.Assert().Equal(caller, annotations[correlation.CallerContextAnnotation])
}

func (suite *ControllersTestSuite) TestStatementIsStreamed() {
	id := suite.createAccount("5")
	suite.Require().Equal(http.StatusCreated,
		suite.do(http.MethodPost, "/v1/accounts/"+id+"/withdrawals", `{"amount":"2","pin":"1234","reference":"rent"}`).Code)

	w := suite.do(http.MethodGet, "/v1/accounts/"+id+"/statement", "")

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Assert().Equal(accounts.StatementMediaType, w.Header().Get("content-type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	suite.Require().Len(lines, 3)
	suite.Assert().Contains(lines[1], ",deposit,5,5,opening deposit,")
	suite.Assert().Contains(lines[2], ",withdrawal,2,3,rent,")

	outbound := suite.lastEvent("Rest response sent")
	suite.Assert().Equal(accounts.StatementMediaType, outbound[logging.MediaTypeField])
	suite.Assert().NotContains(outbound, logging.ResponseBodyField)
}
