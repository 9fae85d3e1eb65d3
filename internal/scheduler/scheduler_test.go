package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAllJobs(t *testing.T) {
	s, err := New(nil, "UTC")
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 4)
}

func TestNewRejectsBadTimezone(t *testing.T) {
	_, err := New(nil, "Not/AZone")
	assert.Error(t, err)
}
