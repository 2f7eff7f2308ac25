package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasker-server/internal/domain"
)

func newTaskFixture() (TaskService, *fakeTaskRepo) {
	repo := newFakeTaskRepo()
	return NewTaskService(repo), repo
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestAddReturnsSortedList(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", "b", intPtr(1))
	require.NoError(t, err)
	tasks, err := svc.Add(ctx, "alice", "a", intPtr(2))
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Description)
	assert.Equal(t, 2, tasks[0].Priority)
	assert.Equal(t, "b", tasks[1].Description)
	assert.Equal(t, 1, tasks[1].Priority)
}

func TestAddValidatesInput(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", "", intPtr(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Add(ctx, "alice", "   ", intPtr(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Add(ctx, "alice", "buy milk", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddAllowsDuplicateDescriptionAndPriority(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", "buy milk", intPtr(1))
	require.NoError(t, err)
	tasks, err := svc.Add(ctx, "alice", "buy milk", intPtr(1))
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
}

func TestListSortedByPriorityThenDescription(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	for _, seed := range []struct {
		description string
		priority    int
	}{
		{"wash car", 1},
		{"buy milk", 3},
		{"answer mail", 3},
		{"call mom", 2},
	} {
		_, err := svc.Add(ctx, "alice", seed.description, intPtr(seed.priority))
		require.NoError(t, err)
	}

	tasks, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	descriptions := []string{}
	for _, task := range tasks {
		descriptions = append(descriptions, task.Description)
	}
	assert.Equal(t, []string{"answer mail", "buy milk", "call mom", "wash car"}, descriptions)
}

func TestListEmptyOwner(t *testing.T) {
	svc, _ := newTaskFixture()

	tasks, err := svc.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestUpdateMutatesDescriptionAndPriority(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	list, err := svc.Add(ctx, "alice", "buy milk", intPtr(1))
	require.NoError(t, err)
	id := list[0].ID

	tasks, err := svc.Update(ctx, "alice", &id, "buy oat milk", intPtr(5))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, id, tasks[0].ID)
	assert.Equal(t, "buy oat milk", tasks[0].Description)
	assert.Equal(t, 5, tasks[0].Priority)
}

func TestUpdateForeignTaskFailsNotFound(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	list, err := svc.Add(ctx, "bob", "bob's secret task", intPtr(1))
	require.NoError(t, err)
	id := list[0].ID

	_, err = svc.Update(ctx, "alice", &id, "hijacked", intPtr(9))
	assert.ErrorIs(t, err, ErrNotFound)

	// bob's task is untouched
	task, err := svc.Get(ctx, "bob", &id)
	require.NoError(t, err)
	assert.Equal(t, "bob's secret task", task.Description)
}

func TestUpdateValidatesInput(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	_, err := svc.Update(ctx, "alice", nil, "desc", intPtr(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Update(ctx, "alice", int64Ptr(1), "", intPtr(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Update(ctx, "alice", int64Ptr(1), "desc", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteRemovesOnlyOwnedTask(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	aliceList, err := svc.Add(ctx, "alice", "alice task", intPtr(1))
	require.NoError(t, err)
	_, err = svc.Add(ctx, "bob", "bob task", intPtr(1))
	require.NoError(t, err)

	id := aliceList[0].ID
	remaining, err := svc.Delete(ctx, "alice", &id)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	bobTasks, err := svc.List(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobTasks, 1)
}

func TestDeleteForeignTaskFailsNotFound(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	list, err := svc.Add(ctx, "bob", "bob task", intPtr(1))
	require.NoError(t, err)
	id := list[0].ID

	_, err = svc.Delete(ctx, "alice", &id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteWithoutID(t *testing.T) {
	svc, _ := newTaskFixture()
	_, err := svc.Delete(context.Background(), "alice", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetRoundTrip(t *testing.T) {
	svc, _ := newTaskFixture()
	ctx := context.Background()

	list, err := svc.Add(ctx, "alice", "buy milk", intPtr(7))
	require.NoError(t, err)
	id := list[0].ID

	task, err := svc.Get(ctx, "alice", &id)
	require.NoError(t, err)
	assert.Equal(t, domain.Task{
		ID:          task.ID,
		Username:    "alice",
		Description: "buy milk",
		Priority:    7,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}, *task)
}

func TestGetUnknownTask(t *testing.T) {
	svc, _ := newTaskFixture()

	_, err := svc.Get(context.Background(), "alice", int64Ptr(99))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(context.Background(), "alice", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
