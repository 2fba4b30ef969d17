package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPushRecentNewestFirst(t *testing.T) {
	list := PushRecent(nil, RecentLookup{Name: "Paris", Timestamp: time.Now()})
	list = PushRecent(list, RecentLookup{Name: "Kyoto", Timestamp: time.Now()})

	assert.Len(t, list, 2)
	assert.Equal(t, "Kyoto", list[0].Name)
	assert.Equal(t, "Paris", list[1].Name)
}

func TestPushRecentDeduplicates(t *testing.T) {
	list := PushRecent(nil, RecentLookup{Name: "Paris"})
	list = PushRecent(list, RecentLookup{Name: "Kyoto"})
	list = PushRecent(list, RecentLookup{Name: "paris"})

	assert.Len(t, list, 2)
	assert.Equal(t, "paris", list[0].Name)
	assert.Equal(t, "Kyoto", list[1].Name)
}

func TestPushRecentCaps(t *testing.T) {
	var list []RecentLookup
	for i := 0; i < MaxRecentLookups+5; i++ {
		list = PushRecent(list, RecentLookup{Name: fmt.Sprintf("place-%d", i)})
	}

	assert.Len(t, list, MaxRecentLookups)
	assert.Equal(t, fmt.Sprintf("place-%d", MaxRecentLookups+4), list[0].Name)

	// No duplicates survive a save that would have introduced one
	seen := map[string]bool{}
	for _, entry := range list {
		assert.False(t, seen[entry.Name], "duplicate entry %s", entry.Name)
		seen[entry.Name] = true
	}
}
