package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"smartparking/internal/db"
)

// NotifyService sends reservation emails and SMS in the background. A failed
// notification is logged and never fails the request that triggered it.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (n *NotifyService) ReservationConfirmed(user *db.User, res *db.Reservation) {
	subject := fmt.Sprintf("Your parking reservation #%d is confirmed", res.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour %s parking spot is reserved.\n\n"+
			"Reservation ID: %d\n"+
			"Plate: %s\n"+
			"Entry: %s\n"+
			"Duration: %.1f hours\n"+
			"Fee: %.2f (%s)\n\n"+
			"Show the QR ticket at the gate.",
		user.Name, res.Category, res.ID, user.PlateNumber,
		res.EntryTime.Format("02 Jan 2006 15:04 MST"), res.Hours, res.Fee, res.PaymentStatus,
	)
	sms := fmt.Sprintf("SmartParking: reservation #%d confirmed. Entry %s. Details in your email.",
		res.ID, res.EntryTime.Format("02/01 15:04"))
	n.dispatch(user, res.ID, subject, body, sms)
}

func (n *NotifyService) ReservationCancelled(user *db.User, res *db.Reservation) {
	subject := fmt.Sprintf("Your parking reservation #%d was cancelled", res.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour %s parking reservation #%d has been cancelled.\n\n"+
			"Thank you for using SmartParking.",
		user.Name, res.Category, res.ID,
	)
	sms := fmt.Sprintf("SmartParking: reservation #%d has been cancelled.", res.ID)
	n.dispatch(user, res.ID, subject, body, sms)
}

func (n *NotifyService) dispatch(user *db.User, reservationID int, subject, body, sms string) {
	if user.Email != "" {
		go func() {
			if err := sendEmailWithSendGrid(user.Email, user.Name, subject, body); err != nil {
				log.Printf("Notification email for reservation %d failed: %v", reservationID, err)
			}
		}()
	}
	go func() {
		if err := sendSMS(user.Phone, sms); err != nil {
			log.Printf("Notification SMS for reservation %d failed: %v", reservationID, err)
		}
	}()
}

func sendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY not configured")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL not configured")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "SmartParking"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, "")

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func sendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("Twilio credentials not fully configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("Destination number '%s' is not E.164, the SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("sending SMS: %w", err)
	}
	return nil
}
