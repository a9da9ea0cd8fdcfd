package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcoming(t *testing.T) {
	// 2024-03-10 is a Sunday.
	now := time.Date(2024, 3, 10, 15, 42, 0, 0, time.UTC)
	opts := Upcoming(7, now)
	require.Len(t, opts, 7)

	assert.Equal(t, "2024-03-10", opts[0].Date)
	assert.Equal(t, "Today - Mar 10", opts[0].Display)

	assert.Equal(t, "2024-03-11", opts[1].Date)
	assert.Equal(t, "Tomorrow - Mar 11", opts[1].Display)

	assert.Equal(t, "2024-03-12", opts[2].Date)
	assert.Equal(t, "Tuesday, Mar 12", opts[2].Display)

	assert.Equal(t, "2024-03-16", opts[6].Date)
	assert.Equal(t, "Saturday, Mar 16", opts[6].Display)
}
