package request_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"creditref/internal/request"
	"creditref/internal/request/rules"
)

type recordingObserver struct {
	accepted []request.Field
	rejected []*request.ValidationError
	modes    []request.Mode
}

func (o *recordingObserver) FieldAccepted(_ request.PartialKind, field request.Field, _ rules.Value) {
	o.accepted = append(o.accepted, field)
}

func (o *recordingObserver) FieldRejected(err *request.ValidationError, mode request.Mode) {
	o.rejected = append(o.rejected, err)
	o.modes = append(o.modes, mode)
}

type RequestSuite struct {
	suite.Suite
	now time.Time
	req *request.Request
}

func TestRequestSuite(t *testing.T) {
	suite.Run(t, new(RequestSuite))
}

func (s *RequestSuite) SetupTest() {
	s.now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	s.req = request.New(request.WithClock(func() time.Time { return s.now }))
}

func (s *RequestSuite) TestDefaults() {
	s.Equal(request.ModeStrict, s.req.Mode())
	s.Empty(s.req.Applicants())
	s.Empty(s.req.Partials())

	permissive := request.New(request.WithMode(request.ModePermissive))
	s.Equal(request.ModePermissive, permissive.Mode())
}

func (s *RequestSuite) TestSetModeChains() {
	s.Same(s.req, s.req.SetMode(request.ModePermissive))
	s.Equal(request.ModePermissive, s.req.Mode())
}

func (s *RequestSuite) TestCreateApplicant() {
	s.Run("normalizes names", func() {
		a, err := s.req.CreateApplicant("  john ", "smith-holt")
		s.Require().NoError(err)
		s.Equal("John", a.GivenName())
		s.Equal("Smith-Holt", a.FamilyName())
		s.Same(s.req, a.Request())
		s.NotEqual("", a.ID().String())
	})

	s.Run("optional attributes", func() {
		dob := time.Date(1980, 6, 1, 15, 4, 0, 0, time.FixedZone("BST", 3600))
		a, err := s.req.CreateApplicant("Jane", "Doe",
			request.WithTitle("Dr"),
			request.WithMiddleName("mary"),
			request.WithDateOfBirth(dob),
			request.WithGender("F"),
		)
		s.Require().NoError(err)
		s.Equal("Dr", a.Title())
		s.Equal("Mary", a.MiddleName())
		s.Equal("F", a.Gender())
		got, ok := a.DateOfBirth()
		s.True(ok)
		s.Equal(time.Date(1980, 6, 1, 0, 0, 0, 0, time.UTC), got)
	})

	s.Run("registers every applicant", func() {
		s.SetupTest()
		first, err := s.req.CreateApplicant("Ann", "One")
		s.Require().NoError(err)
		second, err := s.req.CreateApplicant("Bob", "Two")
		s.Require().NoError(err)
		s.Equal([]*request.Applicant{first, second}, s.req.Applicants())
		s.NotEqual(first.ID(), second.ID())
	})
}

func (s *RequestSuite) TestCreateApplicantFailures() {
	future := s.now.Add(24 * time.Hour)
	cases := []struct {
		name   string
		given  string
		family string
		opts   []request.ApplicantOption
		msg    string
	}{
		{name: "blank given name", given: "  ", family: "Doe", msg: "given name is required"},
		{name: "blank family name", given: "Jane", family: "", msg: "family name is required"},
		{name: "malformed given name", given: "J4ne", family: "Doe", msg: "invalid given name"},
		{name: "unknown title", given: "Jane", family: "Doe", opts: []request.ApplicantOption{request.WithTitle("Lord")}, msg: "invalid title"},
		{name: "unknown gender", given: "Jane", family: "Doe", opts: []request.ApplicantOption{request.WithGender("Q")}, msg: "invalid gender"},
		{name: "future birth date", given: "Jane", family: "Doe", opts: []request.ApplicantOption{request.WithDateOfBirth(future)}, msg: "future"},
		{name: "zero birth date", given: "Jane", family: "Doe", opts: []request.ApplicantOption{request.WithDateOfBirth(time.Time{})}, msg: "zero"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			// Permissive mode does not soften construction errors.
			s.req.SetMode(request.ModePermissive)
			a, err := s.req.CreateApplicant(tc.given, tc.family, tc.opts...)
			s.Nil(a)
			s.Require().Error(err)
			s.True(request.IsConstructionError(err))
			s.Contains(err.Error(), tc.msg)
		})
	}
	s.Empty(s.req.Applicants())
}

func (s *RequestSuite) TestFactoriesRejectForeignApplicants() {
	other := request.New()
	foreign, err := other.CreateApplicant("Ann", "Other")
	s.Require().NoError(err)

	_, err = s.req.CreateApplicationData(foreign)
	s.True(request.IsConstructionError(err))
	_, err = s.req.CreateLocationDetails(foreign)
	s.True(request.IsConstructionError(err))
	_, err = s.req.CreateApplicationData(nil)
	s.True(request.IsConstructionError(err))
	s.Empty(s.req.Partials())
}

func (s *RequestSuite) TestCreatePartial() {
	a, err := s.req.CreateApplicant("Ann", "One")
	s.Require().NoError(err)

	data, err := s.req.CreatePartial(request.KindApplicationData, a)
	s.Require().NoError(err)
	s.IsType(&request.ApplicationData{}, data)

	addr, err := s.req.CreatePartial(request.KindLocationDetails, a)
	s.Require().NoError(err)
	s.IsType(&request.LocationDetails{}, addr)

	missing, err := s.req.CreatePartial("employment_history", a)
	s.Nil(missing)
	s.True(request.IsConstructionError(err))

	nilApplicant, err := s.req.CreatePartial(request.KindApplicationData, nil)
	s.Nil(nilApplicant)
	s.Error(err)

	s.Equal([]request.Partial{data, addr}, s.req.PartialsFor(a))
}

func (s *RequestSuite) TestObserverSeesEverySet() {
	obs := &recordingObserver{}
	req := request.New(request.WithObserver(obs))
	a, err := req.CreateApplicant("Ann", "One")
	s.Require().NoError(err)
	data, err := req.CreateApplicationData(a)
	s.Require().NoError(err)

	_, err = data.SetMaritalStatus("S")
	s.Require().NoError(err)
	req.SetMode(request.ModePermissive)
	_, err = data.SetMaritalStatus("A")
	s.Require().NoError(err)
	req.SetMode(request.ModeStrict)
	_, err = data.SetDependants("asd")
	s.Require().Error(err)

	s.Equal([]request.Field{request.FieldMaritalStatus}, obs.accepted)
	s.Require().Len(obs.rejected, 2)
	s.Equal(request.FieldMaritalStatus, obs.rejected[0].Field)
	s.Equal(request.FieldDependants, obs.rejected[1].Field)
	s.Equal([]request.Mode{request.ModePermissive, request.ModeStrict}, obs.modes)
}

func (s *RequestSuite) TestModeSwitchAffectsAllPartials() {
	a, err := s.req.CreateApplicant("Ann", "One")
	s.Require().NoError(err)
	data, err := s.req.CreateApplicationData(a)
	s.Require().NoError(err)
	addr, err := s.req.CreateLocationDetails(a)
	s.Require().NoError(err)

	_, err = data.SetMaritalStatus("M")
	s.Require().NoError(err)

	s.req.SetMode(request.ModePermissive)
	_, err = data.SetMaritalStatus("A")
	s.NoError(err)
	_, err = addr.SetPostcode("nowhere")
	s.NoError(err)

	// Stored values survive the switch back.
	s.req.SetMode(request.ModeStrict)
	s.Equal(rules.Text("M"), data.MaritalStatus())
	_, err = addr.SetPostcode("nowhere")
	s.Error(err)
}

func (s *RequestSuite) TestDocument() {
	a, err := s.req.CreateApplicant("Jane", "Doe",
		request.WithTitle("Ms"),
		request.WithDateOfBirth(time.Date(1985, 2, 3, 0, 0, 0, 0, time.UTC)),
	)
	s.Require().NoError(err)
	data, err := s.req.CreateApplicationData(a)
	s.Require().NoError(err)
	_, err = data.SetDependants(2)
	s.Require().NoError(err)

	unregistered, err := request.NewLocationDetails(a)
	s.Require().NoError(err)
	_, err = unregistered.SetPostcode("GL1 1AA")
	s.Require().NoError(err)

	doc := s.req.Document()
	s.Equal(request.ModeStrict, doc.Mode)
	s.Require().Len(doc.Applicants, 1)
	got := doc.Applicants[0]
	s.Equal(a.ID(), got.ID)
	s.Equal("Ms", got.Title)
	s.Equal("1985-02-03", got.DateOfBirth)
	s.Require().Len(got.Partials, 1)
	s.Equal(request.KindApplicationData, got.Partials[0].Kind)
	s.Equal(map[request.Field]rules.Value{request.FieldDependants: rules.Int(2)}, got.Partials[0].Fields)

	s.Run("snapshot is detached", func() {
		_, err := data.SetDependants(3)
		s.Require().NoError(err)
		s.Equal(rules.Int(2), got.Partials[0].Fields[request.FieldDependants])
	})
}

func TestDocumentJSON(t *testing.T) {
	req := request.New(request.WithMode(request.ModePermissive))
	a, err := req.CreateApplicant("Jane", "Doe")
	require.NoError(t, err)
	data, err := req.CreateApplicationData(a)
	require.NoError(t, err)
	_, err = data.SetCurrentAccountHeld(true)
	require.NoError(t, err)
	_, err = data.SetTimeWithBank(4, 2)
	require.NoError(t, err)

	raw, err := json.Marshal(req.Document())
	require.NoError(t, err)

	var decoded struct {
		Mode       string `json:"mode"`
		Applicants []struct {
			GivenName string `json:"given_name"`
			Partials  []struct {
				Kind   string         `json:"kind"`
				Fields map[string]any `json:"fields"`
			} `json:"partials"`
		} `json:"applicants"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "permissive", decoded.Mode)
	require.Len(t, decoded.Applicants, 1)
	assert.Equal(t, "Jane", decoded.Applicants[0].GivenName)
	require.Len(t, decoded.Applicants[0].Partials, 1)
	assert.Equal(t, map[string]any{
		"current_account_held": true,
		"time_with_bank":       "4y 2m",
	}, decoded.Applicants[0].Partials[0].Fields)

	var roundTrip request.Document
	require.NoError(t, json.Unmarshal(raw, &roundTrip))
	assert.Equal(t, req.Document(), roundTrip)
}
