package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newGormStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Record{}))
	return NewGormStore(db)
}

func TestStoreRoundTrip(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"gorm":   newGormStore(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			type entry struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			}

			// missing key leaves dest untouched
			var got []entry
			require.NoError(t, store.Get(KeyAssignments, &got))
			assert.Nil(t, got)

			want := []entry{{ID: "a1", Name: "HW1"}, {ID: "a2", Name: "HW2"}}
			require.NoError(t, store.Set(KeyAssignments, want))
			require.NoError(t, store.Get(KeyAssignments, &got))
			assert.Equal(t, want, got)

			// overwrite is last-writer-wins
			require.NoError(t, store.Set(KeyAssignments, want[:1]))
			got = nil
			require.NoError(t, store.Get(KeyAssignments, &got))
			assert.Equal(t, want[:1], got)
		})
	}
}

func TestStoreKeys(t *testing.T) {
	for name, store := range map[string]Store{
		"memory": NewMemoryStore(),
		"gorm":   newGormStore(t),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(KeyQuizzes, []string{}))
			require.NoError(t, store.Set(KeyAssignments, []string{}))

			keys, err := store.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{KeyAssignments, KeyQuizzes}, keys)
		})
	}
}
