package ticket

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	apperrors "smartparking/internal/errors"
)

// Producer turns a reservation summary into a durable, retrievable artifact
// and returns its locator. Producing again for the same reservation
// overwrites the previous artifact; the locator is deterministic.
type Producer interface {
	Produce(reservationID int, summary string) (string, error)
}

// QRProducer renders the summary as a QR code PNG under a fixed directory,
// one file per reservation.
type QRProducer struct {
	dir string
}

func NewQRProducer(dir string) (*QRProducer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ticket directory %s: %w", dir, err)
	}
	return &QRProducer{dir: dir}, nil
}

// Produce writes reservation_<id>.png encoding the ticket payload and
// returns the file path.
func (p *QRProducer) Produce(reservationID int, summary string) (string, error) {
	payload := Payload(reservationID, summary)
	path := filepath.Join(p.dir, fmt.Sprintf("reservation_%d.png", reservationID))
	if err := qrcode.WriteFile(payload, qrcode.Medium, 256, path); err != nil {
		return "", apperrors.ArtifactUnavailable(err, "could not write ticket for reservation %d", reservationID)
	}
	return path, nil
}

// Payload is the literal text block encoded in the ticket.
func Payload(reservationID int, summary string) string {
	payload := fmt.Sprintf("Reservation ID: %d", reservationID)
	if summary != "" {
		payload += "\n" + summary
	}
	return payload
}
