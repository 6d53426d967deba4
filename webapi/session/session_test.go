package session

import (
	"net/http"
	"testing"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/Coconhat/Currency-converter/webapi/common"
	"github.com/Coconhat/Currency-converter/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SessionRoutesTestSuite struct {
	suite.Suite
	conv *testutils.StubConverter
	app  *fiber.App
}

func (s *SessionRoutesTestSuite) SetupTest() {
	s.conv = &testutils.StubConverter{Rate: 0.9235}
	cfg := testutils.TestConfig()
	// Lookups only run when a test flushes them.
	cfg.Converter.Debounce = time.Hour
	a := testutils.NewTestApp(s.T(), s.conv, cfg)

	s.app = fiber.New(fiber.Config{ErrorHandler: common.ErrorHandler})
	Routes(s.app, a.SessionService)
}

func (s *SessionRoutesTestSuite) create() SessionResponse {
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, "/api/sessions", "")
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	return testutils.DecodeResponse[SessionResponse](s.T(), resp).Data
}

func (s *SessionRoutesTestSuite) path(id uuid.UUID, suffix string) string {
	return "/api/sessions/" + id.String() + suffix
}

func (s *SessionRoutesTestSuite) TestCreateReturnsDefaultState() {
	created := s.create()

	s.NotEqual(uuid.Nil, created.ID)
	s.Equal("USD", created.State.Source)
	s.Equal("EUR", created.State.Target)
	s.Equal(converter.DisplayPrompt, created.Display.Kind)
	s.False(created.Pending)
}

func (s *SessionRoutesTestSuite) TestConvertFlow() {
	created := s.create()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPatch, s.path(created.ID, ""), `{"amount":"100"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	updated := testutils.DecodeResponse[SessionResponse](s.T(), resp).Data
	s.Equal("100", updated.State.AmountText)
	s.True(updated.Pending)
	s.Zero(s.conv.Calls())

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, s.path(created.ID, "?flush=true"), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	got := testutils.DecodeResponse[SessionResponse](s.T(), resp).Data
	s.Equal(converter.DisplayResult, got.Display.Kind)
	s.Equal("$100 USD", got.Display.Source)
	s.Equal("€92.35 EUR", got.Display.Target)
	s.False(got.Pending)
	s.EqualValues(1, s.conv.Calls())

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodPost, s.path(created.ID, "/swap"), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	swapped := testutils.DecodeResponse[SessionResponse](s.T(), resp).Data
	s.Equal("EUR", swapped.State.Source)
	s.Equal("USD", swapped.State.Target)
	s.True(swapped.Pending)
}

func (s *SessionRoutesTestSuite) TestUpdateAppliesAllFields() {
	created := s.create()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPatch, s.path(created.ID, ""),
		`{"amount":"5","from":"GBP","to":"JPY"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	state := testutils.DecodeResponse[SessionResponse](s.T(), resp).Data.State
	s.Equal("5", state.AmountText)
	s.Equal("GBP", state.Source)
	s.Equal("JPY", state.Target)
}

func (s *SessionRoutesTestSuite) TestUpdateRejectsUnsupportedCurrency() {
	created := s.create()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPatch, s.path(created.ID, ""),
		`{"amount":"5","from":"XYZ"}`)
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	pd := testutils.DecodeProblem(s.T(), resp)
	s.Equal("Unsupported currency", pd.Title)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, s.path(created.ID, ""), "")
	state := testutils.DecodeResponse[SessionResponse](s.T(), resp).Data.State
	s.Equal("", state.AmountText, "nothing applied")
	s.Equal("USD", state.Source)
}

func (s *SessionRoutesTestSuite) TestUpdateValidation() {
	created := s.create()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodPatch, s.path(created.ID, ""), `{"to":"EURO"}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	pd := testutils.DecodeProblem(s.T(), resp)
	s.Equal("Validation failed", pd.Title)
	s.NotEmpty(pd.Errors)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodPatch, s.path(created.ID, ""), `{"amount":`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *SessionRoutesTestSuite) TestUnknownAndInvalidIDs() {
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/sessions/not-a-uuid", "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, s.path(uuid.New(), ""), "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	pd := testutils.DecodeProblem(s.T(), resp)
	s.Equal("Not Found", pd.Title)
	s.Equal("session not found", pd.Detail)
}

func (s *SessionRoutesTestSuite) TestDelete() {
	created := s.create()

	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodDelete, s.path(created.ID, ""), "")
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, s.path(created.ID, ""), "")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodDelete, s.path(created.ID, ""), "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestSessionRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(SessionRoutesTestSuite))
}

func TestToResponse(t *testing.T) {
	v := converter.New(&testutils.StubConverter{Rate: 2}, converter.Options{Debounce: time.Hour})
	defer v.Close()
	require.NoError(t, v.SetAmount("3"))

	id := uuid.New()
	r := ToResponse(id, v)
	assert.Equal(t, id, r.ID)
	assert.True(t, r.Pending)
	assert.Equal(t, "$3 USD", r.Display.Source)
}
