package programs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Arashi20/Workout-Logging-App/internal/auth"
	"github.com/Arashi20/Workout-Logging-App/internal/gym/programs"
)

func TestHandler_HandleAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockprogramsRepo(ctrl)
	h := programs.NewHandler(repoMock)

	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, program programs.Program) (*programs.Program, error) {
			assert.Equal(t, 7, program.UserID)
			assert.Equal(t, "Push Pull Legs", program.Name)
			program.ID = 4
			return &program, nil
		}).Times(1)

	body, err := json.Marshal(programs.Program{
		Name:        "Push Pull Legs",
		Description: "6 day split",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.ContextWithUserID(req.Context(), 7))

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var addedProgram programs.Program
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &addedProgram))
	assert.Equal(t, 4, addedProgram.ID)
}

func TestHandler_HandleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockprogramsRepo(ctrl)
	h := programs.NewHandler(repoMock)

	repoMock.EXPECT().
		List(gomock.Any(), 7).
		Return([]programs.Program{
			{ID: 2, UserID: 7, Name: "Upper Lower"},
			{ID: 1, UserID: 7, Name: "Full Body"},
		}, nil).
		Times(1)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "", nil)
	require.NoError(t, err)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), 7))

	h.HandleList(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listResponse programs.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResponse))
	assert.Equal(t, 2, listResponse.Total)
	assert.Equal(t, "Upper Lower", listResponse.Programs[0].Name)
}

func TestHandler_HandleDelete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockprogramsRepo(ctrl)
	h := programs.NewHandler(repoMock)

	repoMock.EXPECT().
		Delete(gomock.Any(), 7, 13).
		Return(programs.ErrProgramNotFound).
		Times(1)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("DELETE", "", nil)
	require.NoError(t, err)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), 7))
	req = mux.SetURLVars(req, map[string]string{"id": "13"})

	h.HandleDelete(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
