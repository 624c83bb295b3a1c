//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"companion-booking/internal/domain/schedule"
	"companion-booking/internal/domain/user"
	"companion-booking/internal/handler/api"
	resdto "companion-booking/internal/handler/dto/response"
	"companion-booking/internal/usecase"
	"companion-booking/tests/common/httptest"
	usecasemock "companion-booking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockCtrl       *gomock.Controller
	mockReconciler *usecasemock.MockAvailabilityReconciler
	handler        *api.AvailabilityHandler
	userID         uuid.UUID
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockReconciler = usecasemock.NewMockAvailabilityReconciler(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockReconciler)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleUser)
		c.Next()
	}

	s.router.GET("/companions/:id/availability", authMiddleware, s.handler.Slots)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) daySlots(companionID uuid.UUID) []schedule.AvailabilitySlot {
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	return []schedule.AvailabilitySlot{
		{CompanionID: companionID, Start: base, End: base.Add(30 * time.Minute), State: schedule.SlotFree},
		{CompanionID: companionID, Start: base.Add(30 * time.Minute), End: base.Add(time.Hour), State: schedule.SlotBooked},
		{CompanionID: companionID, Start: base.Add(time.Hour), End: base.Add(90 * time.Minute), State: schedule.SlotFree},
	}
}

func (s *AvailabilityHandlerTestSuite) TestSlots() {
	companionID := uuid.New()
	date := schedule.CivilDate{Year: 2026, Month: time.September, Day: 7}
	url := "/companions/" + companionID.String() + "/availability?date=2026-09-07"

	s.Run("success: returns every slot with its state", func() {
		s.mockReconciler.EXPECT().Availability(gomock.Any(), companionID, date).
			Return(s.daySlots(companionID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2026-09-07", body.Date)
		s.Len(body.Slots, 3)
		s.Equal("booked", body.Slots[1].State)
	})

	s.Run("success: free=1 omits booked slots", func() {
		s.mockReconciler.EXPECT().Availability(gomock.Any(), companionID, date).
			Return(s.daySlots(companionID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"&free=1", nil, "bearer-token")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Slots, 2)
		for _, slot := range body.Slots {
			s.Equal("free", slot.State)
		}
	})

	s.Run("error: 400 on missing date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/companions/"+companionID.String()+"/availability", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "date")
	})

	s.Run("error: 400 on malformed companion ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/companions/not-a-uuid/availability?date=2026-09-07", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "companion ID")
	})

	s.Run("error mapping", func() {
		testCases := []struct {
			name           string
			reconcileErr   error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "no connected calendar", reconcileErr: usecase.ErrCredentialNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "no connected calendar"},
			{name: "reconcile busy", reconcileErr: usecase.ErrReconcileBusy, expectedStatus: http.StatusConflict, expectedMsg: "recomputed"},
			{name: "expired connection", reconcileErr: usecase.ErrExpiredRefreshToken, expectedStatus: http.StatusConflict, expectedMsg: "expired"},
			{name: "provider down", reconcileErr: usecase.ErrExternalService, expectedStatus: http.StatusServiceUnavailable, expectedMsg: "unavailable"},
			{name: "unexpected failure", reconcileErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockReconciler.EXPECT().Availability(gomock.Any(), companionID, date).
					Return(nil, tc.reconcileErr).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
