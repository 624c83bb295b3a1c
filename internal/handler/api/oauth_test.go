//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"companion-booking/internal/domain/user"
	"companion-booking/internal/handler/api"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/oauthstate"
	"companion-booking/internal/usecase"
	"companion-booking/internal/usecase/readmodel"
	"companion-booking/tests/common/httptest"
	usecasemock "companion-booking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testDashboardURL = "http://localhost:3000/dashboard"

type OAuthHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockConnect   *usecasemock.MockCalendarConnectUseCase
	mockCompanion *usecasemock.MockCompanionRepository
	handler       *api.OAuthHandler
	userID        uuid.UUID
	userRole      user.Role
}

func (s *OAuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockConnect = usecasemock.NewMockCalendarConnectUseCase(s.mockCtrl)
	s.mockCompanion = usecasemock.NewMockCompanionRepository(s.mockCtrl)
	s.handler = api.NewOAuthHandler(s.mockConnect, s.mockCompanion, config.ServerConfig{
		DashboardURL: testDashboardURL,
	})
	s.userID = uuid.New()
	s.userRole = user.RoleCompanion

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.userRole)
		c.Next()
	}

	s.router.GET("/companions/:id/calendar/connect", authMiddleware, s.handler.Authorize)
	s.router.GET("/auth/google/callback", s.handler.Callback)
}

func (s *OAuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(OAuthHandlerTestSuite))
}

func (s *OAuthHandlerTestSuite) TestAuthorize() {
	companionID := uuid.New()
	url := "/companions/" + companionID.String() + "/calendar/connect"
	consentURL := "https://accounts.google.com/o/oauth2/auth?state=signed"

	s.Run("success: owner is redirected to the consent page", func() {
		s.mockCompanion.EXPECT().FindByID(gomock.Any(), companionID).
			Return(&readmodel.CompanionRM{ID: companionID, OwnerUserID: s.userID}, nil).Times(1)
		s.mockConnect.EXPECT().AuthorizeURL(companionID).
			Return(consentURL, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusFound, rec.Code)
		s.Equal(consentURL, rec.Header().Get("Location"))
	})

	s.Run("success: admin may connect any companion", func() {
		s.userRole = user.RoleAdmin
		defer func() { s.userRole = user.RoleCompanion }()

		s.mockCompanion.EXPECT().FindByID(gomock.Any(), companionID).
			Return(&readmodel.CompanionRM{ID: companionID, OwnerUserID: uuid.New()}, nil).Times(1)
		s.mockConnect.EXPECT().AuthorizeURL(companionID).
			Return(consentURL, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusFound, rec.Code)
	})

	s.Run("error: redirected with unauthorized when caller does not own the companion", func() {
		s.mockCompanion.EXPECT().FindByID(gomock.Any(), companionID).
			Return(&readmodel.CompanionRM{ID: companionID, OwnerUserID: uuid.New()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusFound, rec.Code)
		s.Equal(testDashboardURL+"?error=unauthorized", rec.Header().Get("Location"))
	})

	s.Run("error: unknown companion is treated like one the caller does not own", func() {
		s.mockCompanion.EXPECT().FindByID(gomock.Any(), companionID).
			Return(nil, errors.New("not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusFound, rec.Code)
		s.Equal(testDashboardURL+"?error=unauthorized", rec.Header().Get("Location"))
	})

	s.Run("error: 400 on malformed companion ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/companions/not-a-uuid/calendar/connect", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid companion ID")
	})
}

func (s *OAuthHandlerTestSuite) TestCallback() {
	companionID := uuid.New()

	s.Run("success: redirects to dashboard with success flag", func() {
		s.mockConnect.EXPECT().CompleteCallback(gomock.Any(), "signed-state", "auth-code").
			Return(companionID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/google/callback?state=signed-state&code=auth-code", nil, "")

		s.Equal(http.StatusFound, rec.Code)
		s.Equal(testDashboardURL+"?connected=1", rec.Header().Get("Location"))
	})

	s.Run("provider error: reported as oauth_failed", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/google/callback?error=access_denied", nil, "")

		s.Equal(http.StatusFound, rec.Code)
		s.Equal(testDashboardURL+"?error=oauth_failed", rec.Header().Get("Location"))
	})

	s.Run("missing parameters: redirects with missing_params", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/google/callback?state=only-state", nil, "")

		s.Equal(http.StatusFound, rec.Code)
		s.Equal(testDashboardURL+"?error=missing_params", rec.Header().Get("Location"))
	})

	s.Run("usecase errors: mapped to stable error codes", func() {
		testCases := []struct {
			name        string
			callbackErr error
			expectCode  string
		}{
			{name: "invalid state", callbackErr: oauthstate.ErrInvalidState, expectCode: "invalid_state"},
			{name: "expired state", callbackErr: oauthstate.ErrExpiredState, expectCode: "invalid_state"},
			{name: "exchange failed", callbackErr: usecase.ErrCodeExchangeFailed, expectCode: "connection_failed"},
			{name: "unexpected failure", callbackErr: errors.New("boom"), expectCode: "connection_failed"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockConnect.EXPECT().CompleteCallback(gomock.Any(), "signed-state", "auth-code").
					Return(uuid.Nil, tc.callbackErr).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/google/callback?state=signed-state&code=auth-code", nil, "")

				s.Equal(http.StatusFound, rec.Code)
				s.Equal(testDashboardURL+"?error="+tc.expectCode, rec.Header().Get("Location"))
			})
		}
	})
}
