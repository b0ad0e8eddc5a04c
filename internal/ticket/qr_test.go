package ticket_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartparking/internal/ticket"
)

func TestPayload(t *testing.T) {
	assert.Equal(t, "Reservation ID: 7", ticket.Payload(7, ""))
	assert.Equal(t,
		"Reservation ID: 7\nName: Sara\nPlate: BGD-1234\nType: car\nFee: 7.50",
		ticket.Payload(7, "Name: Sara\nPlate: BGD-1234\nType: car\nFee: 7.50"))
}

func TestQRProducer_Produce(t *testing.T) {
	dir := t.TempDir()
	producer, err := ticket.NewQRProducer(dir)
	require.NoError(t, err)

	path, err := producer.Produce(3, "Name: Sara")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reservation_3.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// Producing again for the same reservation overwrites under the same path.
func TestQRProducer_Idempotent(t *testing.T) {
	dir := t.TempDir()
	producer, err := ticket.NewQRProducer(dir)
	require.NoError(t, err)

	first, err := producer.Produce(5, "Status: booked")
	require.NoError(t, err)
	second, err := producer.Produce(5, "Status: cancelled")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNewQRProducer_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "qr_codes")
	_, err := ticket.NewQRProducer(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
