package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/leavedesk/internal/storage"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

func testEmployee() *domain.Employee {
	return &domain.Employee{
		Identity: domain.Identity{
			ID: 7, Email: "a@b.com", FirstName: "Ava", LastName: "Bahrami", NationalID: "0012345678",
		},
		LeaveRequestsLeft: 30,
		AssignedSupervisor: &domain.Supervisor{Identity: domain.Identity{
			ID: 2, Email: "boss@b.com", FirstName: "Sam", LastName: "Rad", NationalID: "1234567890",
		}},
	}
}

func TestSetAndClear(t *testing.T) {
	s := New(storage.NewMemory())
	assert.Nil(t, s.Current())

	u := testEmployee()
	require.NoError(t, s.Set(u))
	assert.Equal(t, u, s.Current())

	emp, ok := s.Employee()
	assert.True(t, ok)
	assert.Equal(t, 30, emp.LeaveRequestsLeft)
	_, ok = s.Supervisor()
	assert.False(t, ok)

	require.NoError(t, s.Set(nil))
	assert.Nil(t, s.Current())
}

func TestSetTypedNilSignsOut(t *testing.T) {
	kv := storage.NewMemory()
	s := New(kv)
	require.NoError(t, s.Set(testEmployee()))

	var emp *domain.Employee
	require.NoError(t, s.Set(emp))
	assert.True(t, s.Current() == nil, "typed nil is stored as nil")
	_, ok, _ := kv.Get(Key)
	assert.False(t, ok)

	var sup *domain.Supervisor
	require.NoError(t, s.Set(sup))
	assert.True(t, s.Current() == nil)
	assert.True(t, New(kv).Current() == nil)
}

func TestHydratesFromStorage(t *testing.T) {
	kv := storage.NewMemory()
	u := testEmployee()
	require.NoError(t, New(kv).Set(u))

	fresh := New(kv)
	assert.Equal(t, u, fresh.Current())

	sup := &domain.Supervisor{Identity: domain.Identity{ID: 2, Email: "boss@b.com"}}
	require.NoError(t, fresh.Set(sup))
	assert.Equal(t, sup, New(kv).Current(), "last write wins")

	require.NoError(t, fresh.Set(nil))
	assert.Nil(t, New(kv).Current())
	_, ok, _ := kv.Get(Key)
	assert.False(t, ok, "clearing removes the persisted entry")
}

func TestDiscardsUnreadableEntry(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(Key, `{"role":"admin"}`, 0))

	s := New(kv)
	assert.Nil(t, s.Current())
	_, ok, _ := kv.Get(Key)
	assert.False(t, ok)
}
