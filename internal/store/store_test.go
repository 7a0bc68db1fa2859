package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/core"
	"tracker/internal/ident"
)

func newTask(id int, title, desc string) core.Task {
	return core.Task{ID: id, Title: title, Description: desc, Status: core.StatusPending}
}

func TestStore_CreateAllGet(t *testing.T) {
	s := New[int, core.Task](ident.NewCounter(0))

	t1, err := s.Create(func(id int) core.Task { return newTask(id, "Write report", "") })
	require.NoError(t, err)
	assert.Equal(t, 1, t1.ID)
	assert.Equal(t, core.StatusPending, t1.Status)

	t2, err := s.Create(func(id int) core.Task { return newTask(id, "Review PR", "") })
	require.NoError(t, err)
	assert.Equal(t, 2, t2.ID)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Write report", all[0].Title)
	assert.Equal(t, "Review PR", all[1].Title)

	got, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, t2, got)

	_, err = s.Get(9)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_AllIsSnapshot(t *testing.T) {
	s := New[int, core.Task](ident.NewCounter(0))
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "A", "B") })

	snap := s.All()
	snap[0].Title = "mutated"

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestStore_IDsUniqueWithoutDeletes(t *testing.T) {
	for _, alloc := range []ident.Allocator[int]{ident.NewCounter(0), ident.Recount{}} {
		s := New[int, core.Task](alloc)
		seen := map[int]bool{}
		for i := 0; i < 50; i++ {
			r, err := s.Create(func(id int) core.Task { return newTask(id, "t", "") })
			require.NoError(t, err)
			assert.False(t, seen[r.ID])
			seen[r.ID] = true
		}
	}
}

func TestStore_RecountReusesAfterDelete(t *testing.T) {
	s := New[int, core.Task](ident.Recount{})
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "a", "") })
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "b", "") })

	_, err := s.Delete(1)
	require.NoError(t, err)

	r, err := s.Create(func(id int) core.Task { return newTask(id, "c", "") })
	require.NoError(t, err)
	assert.Equal(t, 2, r.ID, "recount hands out count+1 even when it is taken")
}

func TestStore_CounterNeverReuses(t *testing.T) {
	s := New[int, core.Task](ident.NewCounter(0))
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "a", "") })
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "b", "") })
	_, _ = s.Delete(2)

	r, err := s.Create(func(id int) core.Task { return newTask(id, "c", "") })
	require.NoError(t, err)
	assert.Equal(t, 3, r.ID)
}

func TestStore_CreateFailureStoresNothing(t *testing.T) {
	s := New[string, core.Expense](ident.NewPool(1, nil))
	_, err := s.Create(func(id string) core.Expense { return core.Expense{ID: id} })
	require.NoError(t, err)

	_, err = s.Create(func(id string) core.Expense { return core.Expense{ID: id} })
	assert.ErrorIs(t, err, ident.ErrPoolExhausted)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Update(t *testing.T) {
	s := New[int, core.Task](ident.NewCounter(0))
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "A", "B") })

	got, err := s.Update(1, func(r *core.Task) error {
		return r.Apply(core.TaskPatch{Description: "C"})
	})
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "C", got.Description)
	assert.Equal(t, core.StatusPending, got.Status)

	_, err = s.Update(42, func(r *core.Task) error { return nil })
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_UpdateIsAllOrNothing(t *testing.T) {
	s := New[int, core.Task](ident.NewCounter(0))
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "A", "B") })

	boom := errors.New("boom")
	_, err := s.Update(1, func(r *core.Task) error {
		r.Title = "half applied"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := s.Get(1)
	assert.Equal(t, "A", got.Title)
}

func TestStore_Delete(t *testing.T) {
	s := New[int, core.Task](ident.NewCounter(0))
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "a", "") })
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "b", "") })
	_, _ = s.Create(func(id int) core.Task { return newTask(id, "c", "") })

	removed, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Title)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, []int{1, 3}, []int{all[0].ID, all[1].ID})

	_, err = s.Delete(2)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 2, s.Len())
}

func TestStore_DeleteMissOnStringKeys(t *testing.T) {
	s := New[string, core.Expense](ident.NewPool(5, func() string { return "2025-01-01" }))
	_, _ = s.Create(func(id string) core.Expense { return core.Expense{ID: id} })

	_, err := s.Delete("nonexistent")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 1, s.Len())
}
