package weight_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Arashi20/Workout-Logging-App/internal/auth"
	"github.com/Arashi20/Workout-Logging-App/internal/health/weight"
	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/metrics"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestLog_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		log     weight.Log
		wantErr bool
	}{
		{name: "valid minimal", log: weight.Log{Weight: 82.5}},
		{
			name: "valid full",
			log:  weight.Log{Weight: 82.5, BodyFatPercentage: floatPtr(15.2), VisceralFat: floatPtr(7)},
		},
		{name: "zero weight", log: weight.Log{Weight: 0}, wantErr: true},
		{name: "negative weight", log: weight.Log{Weight: -3}, wantErr: true},
		{name: "weight too high", log: weight.Log{Weight: 501}, wantErr: true},
		{name: "weight at bound", log: weight.Log{Weight: 500}},
		{
			name:    "body fat over 100",
			log:     weight.Log{Weight: 82.5, BodyFatPercentage: floatPtr(101)},
			wantErr: true,
		},
		{
			name:    "negative visceral fat",
			log:     weight.Log{Weight: 82.5, VisceralFat: floatPtr(-1)},
			wantErr: true,
		},
		{
			name:    "all fields invalid",
			log:     weight.Log{Weight: -1, BodyFatPercentage: floatPtr(-5), VisceralFat: floatPtr(-1)},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.log.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, weight.ErrValidationFailed)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestHandler_HandleAdd_InvalidLogRejectedWhole(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockweightRepo(ctrl)
	h := weight.NewHandler(repoMock, metrics.NewTestManager())

	// invalid body fat rejects the whole log, nothing is persisted
	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "", strings.NewReader(`{"weight":82.5,"bodyFatPercentage":120}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.ContextWithUserID(req.Context(), 7))

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockweightRepo(ctrl)
	h := weight.NewHandler(repoMock, metrics.NewTestManager())

	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, weightLog weight.Log) (*weight.Log, error) {
			assert.Equal(t, 7, weightLog.UserID)
			assert.InDelta(t, 82.5, weightLog.Weight, 0.001)
			weightLog.ID = 2
			return &weightLog, nil
		}).Times(1)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "", strings.NewReader(`{"weight":82.5,"notes":"morning"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.ContextWithUserID(req.Context(), 7))

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var addedLog weight.Log
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &addedLog))
	assert.Equal(t, 2, addedLog.ID)
	assert.Equal(t, "morning", addedLog.Notes)
}

func TestHandler_HandleChartData(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockweightRepo(ctrl)
	h := weight.NewHandler(repoMock, metrics.NewTestManager())

	day1 := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 7)
	repoMock.EXPECT().
		List(gomock.Any(), 7).
		Return([]weight.Log{
			{ID: 1, UserID: 7, Weight: 84, BodyFatPercentage: floatPtr(16), LoggedAt: day1},
			{ID: 2, UserID: 7, Weight: 83.2, LoggedAt: day2},
		}, nil).
		Times(1)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "", nil)
	require.NoError(t, err)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), 7))

	h.HandleChartData(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var chartData weight.ChartData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chartData))
	assert.Equal(t, []string{"2025-03-01", "2025-03-08"}, chartData.Dates)
	assert.Equal(t, []float64{84, 83.2}, chartData.Weights)
	require.Len(t, chartData.BodyFat, 2)
	assert.NotNil(t, chartData.BodyFat[0])
	assert.Nil(t, chartData.BodyFat[1])
}
