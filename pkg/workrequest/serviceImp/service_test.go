package serviceImp

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/database"
	"dispatch/entities"
	taskRepoImp "dispatch/pkg/task/repositoryImp"
	"dispatch/pkg/workrequest/document"
	"dispatch/pkg/workrequest/repositoryImp"
	svc "dispatch/pkg/workrequest/service"
)

func setup(t *testing.T) (svc.Service, uint) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.User{ID: "u1", FullName: "佐藤", Role: entities.RoleUser}).Error)
	task := &entities.Task{
		UserID:          "u1",
		CustomerName:    "山田建設",
		SiteName:        "新宿現場",
		StartAt:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		TransportMethod: entities.TransportSeparate,
	}
	tasks := taskRepoImp.New(db)
	require.NoError(t, tasks.Create(context.Background(), task))
	doc := document.NewRenderer("", time.FixedZone("JST", 9*60*60))
	return New(repositoryImp.New(db), tasks, doc, nil), task.ID
}

func request(taskID uint, place string) svc.NewRequest {
	return svc.NewRequest{
		TaskID:       taskID,
		MeetingTime:  "08:30",
		MeetingPlace: place,
		Equipment:    entities.Equipment{Helmet: true},
		CartCount:    2,
	}
}

func TestCreateAndLatest(t *testing.T) {
	s, taskID := setup(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "u1", request(taskID, "正門"))
	require.NoError(t, err)
	second, err := s.Create(ctx, "u1", request(taskID, "裏門"))
	require.NoError(t, err)

	got, err := s.LatestForTask(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "裏門", got.MeetingPlace)
	assert.True(t, got.Equipment.Helmet)
	require.NotNil(t, got.Task)
	require.NotNil(t, got.Task.Owner)
	assert.Equal(t, "佐藤", got.Task.Owner.FullName)
}

func TestCreate_UnknownTask(t *testing.T) {
	s, _ := setup(t)
	_, err := s.Create(context.Background(), "u1", request(999, "正門"))
	assert.ErrorIs(t, err, svc.ErrTaskNotFound)
}

func TestLatest_NoneForTask(t *testing.T) {
	s, taskID := setup(t)
	_, err := s.LatestForTask(context.Background(), taskID)
	assert.ErrorIs(t, err, svc.ErrNotFound)
}

func TestRenderPDF(t *testing.T) {
	s, taskID := setup(t)
	ctx := context.Background()
	w, err := s.Create(ctx, "u1", request(taskID, "Gate A"))
	require.NoError(t, err)

	pdf, err := s.RenderPDF(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = s.RenderPDF(ctx, w.ID+100)
	assert.ErrorIs(t, err, svc.ErrNotFound)
}
