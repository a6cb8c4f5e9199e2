package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"volunteer_platform/internal/middleware"
	"volunteer_platform/internal/model"
	"volunteer_platform/internal/service"
	"volunteer_platform/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProfileService struct {
	getProfile func(ctx context.Context, userID uuid.UUID) (*model.ProfileView, error)
	step1      func(ctx context.Context, userID uuid.UUID, req model.Step1Request) (*model.VolunteerProfile, error)
	step2      func(ctx context.Context, userID uuid.UUID, req model.Step2Request) (*model.VolunteerProfile, error)
	step3      func(ctx context.Context, userID uuid.UUID, req model.Step3Request) (*model.VolunteerProfile, error)
	submit     func(ctx context.Context, userID uuid.UUID) (*model.VolunteerProfile, error)
}

func (f *fakeProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.ProfileView, error) {
	return f.getProfile(ctx, userID)
}

func (f *fakeProfileService) SubmitStep1(ctx context.Context, userID uuid.UUID, req model.Step1Request) (*model.VolunteerProfile, error) {
	return f.step1(ctx, userID, req)
}

func (f *fakeProfileService) SubmitStep2(ctx context.Context, userID uuid.UUID, req model.Step2Request) (*model.VolunteerProfile, error) {
	return f.step2(ctx, userID, req)
}

func (f *fakeProfileService) SubmitStep3(ctx context.Context, userID uuid.UUID, req model.Step3Request) (*model.VolunteerProfile, error) {
	return f.step3(ctx, userID, req)
}

func (f *fakeProfileService) Submit(ctx context.Context, userID uuid.UUID) (*model.VolunteerProfile, error) {
	return f.submit(ctx, userID)
}

type fakeSurveyService struct {
	create  func(ctx context.Context, volunteerID uuid.UUID, req model.CreateSurveyRequest) (*model.Survey, error)
	list    func(ctx context.Context, volunteerID uuid.UUID) ([]model.Survey, int, error)
	get     func(ctx context.Context, surveyID uuid.UUID, requester model.Principal) (*model.Survey, error)
	update  func(ctx context.Context, surveyID uuid.UUID, requester model.Principal, req model.UpdateSurveyRequest) (*model.Survey, error)
	del     func(ctx context.Context, surveyID uuid.UUID, requester model.Principal) error
	listAll func(ctx context.Context, filters model.SurveyFilters) ([]model.SurveyWithVolunteer, error)
	export  func(ctx context.Context, filters model.SurveyFilters) (*bytes.Buffer, error)
}

func (f *fakeSurveyService) CreateSurvey(ctx context.Context, volunteerID uuid.UUID, req model.CreateSurveyRequest) (*model.Survey, error) {
	return f.create(ctx, volunteerID, req)
}

func (f *fakeSurveyService) GetVolunteerSurveys(ctx context.Context, volunteerID uuid.UUID) ([]model.Survey, int, error) {
	return f.list(ctx, volunteerID)
}

func (f *fakeSurveyService) GetSurveyByID(ctx context.Context, surveyID uuid.UUID, requester model.Principal) (*model.Survey, error) {
	return f.get(ctx, surveyID, requester)
}

func (f *fakeSurveyService) UpdateSurvey(ctx context.Context, surveyID uuid.UUID, requester model.Principal, req model.UpdateSurveyRequest) (*model.Survey, error) {
	return f.update(ctx, surveyID, requester, req)
}

func (f *fakeSurveyService) DeleteSurvey(ctx context.Context, surveyID uuid.UUID, requester model.Principal) error {
	return f.del(ctx, surveyID, requester)
}

func (f *fakeSurveyService) GetAllSurveysAdmin(ctx context.Context, filters model.SurveyFilters) ([]model.SurveyWithVolunteer, error) {
	return f.listAll(ctx, filters)
}

func (f *fakeSurveyService) ExportSurveysCSVAdmin(ctx context.Context, filters model.SurveyFilters) (*bytes.Buffer, error) {
	return f.export(ctx, filters)
}

type fakeAdminService struct {
	stats      func(ctx context.Context) (*model.DashboardStats, error)
	volunteers func(ctx context.Context) ([]model.VolunteerSummary, error)
	detail     func(ctx context.Context, volunteerID uuid.UUID) (*model.VolunteerDetail, error)
}

func (f *fakeAdminService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	return f.stats(ctx)
}

func (f *fakeAdminService) ListVolunteers(ctx context.Context) ([]model.VolunteerSummary, error) {
	return f.volunteers(ctx)
}

func (f *fakeAdminService) GetVolunteerDetail(ctx context.Context, volunteerID uuid.UUID) (*model.VolunteerDetail, error) {
	return f.detail(ctx, volunteerID)
}

type fakeAuthService struct {
	register func(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	login    func(ctx context.Context, req model.LoginRequest) (*model.User, string, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	return f.register(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	return f.login(ctx, req)
}

var (
	_ service.ProfileService = (*fakeProfileService)(nil)
	_ service.SurveyService  = (*fakeSurveyService)(nil)
	_ service.AdminService   = (*fakeAdminService)(nil)
	_ service.AuthService    = (*fakeAuthService)(nil)
)

const testSecret = "handler-secret"

// testServer wires the handlers the same way cmd/server does
type testServer struct {
	router  *gin.Engine
	jwtUtil *utils.JWTUtil
}

func newTestServer(auth service.AuthService, profiles service.ProfileService, surveys service.SurveyService, admin service.AdminService) *testServer {
	log := zap.NewNop()
	jwtUtil := utils.NewJWTUtil(testSecret, 1)
	router := gin.New()

	api := router.Group("/api/v1")
	if auth != nil {
		NewAuthHandler(auth, log).RegisterAuthRoutes(api)
	}
	protected := api.Group("", middleware.JWTAuthMiddleware(jwtUtil))
	if profiles != nil {
		NewProfileHandler(profiles, log).RegisterProfileRoutes(protected, middleware.VolunteerMiddleware())
	}
	if surveys != nil {
		NewSurveyHandler(surveys, log).RegisterSurveyRoutes(protected, middleware.VolunteerMiddleware(), middleware.VolunteerOrAdminMiddleware())
	}
	if admin != nil || surveys != nil {
		NewAdminHandler(admin, surveys, log).RegisterAdminRoutes(protected, middleware.AdminMiddleware())
	}
	return &testServer{router: router, jwtUtil: jwtUtil}
}

func (s *testServer) token(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, err := s.jwtUtil.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
