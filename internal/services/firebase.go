package services

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var fcmClient *messaging.Client

// InitFirebase initializes the Firebase Cloud Messaging client. Push
// notifications are optional: without credentials the app runs fine and
// notification sends are silently skipped.
func InitFirebase() error {
	credFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credFile == "" {
		log.Println("FIREBASE_CREDENTIALS_FILE not set, push notifications disabled")
		return nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credFile))
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	fcmClient, err = app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize FCM client: %w", err)
	}

	log.Println("Firebase Cloud Messaging initialized")
	return nil
}

// NotificationPayload holds the data for a push notification
type NotificationPayload struct {
	Title string
	Body  string
	Data  map[string]string
}

// SendNotificationToToken sends a push notification to a device token
func SendNotificationToToken(token string, payload NotificationPayload) error {
	if fcmClient == nil || token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	ctx := context.Background()
	if _, err := fcmClient.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// SendBookingStatusNotification pushes a booking lifecycle update to
// the customer's registered device
func SendBookingStatusNotification(token, reference, status string) {
	var title, body string
	switch status {
	case "confirmed":
		title = "Booking Confirmed"
		body = fmt.Sprintf("Your booking %s has been confirmed. Get ready for your trip!", reference)
	case "completed":
		title = "Trip Completed"
		body = fmt.Sprintf("Your booking %s is complete. We'd love to hear how it went.", reference)
	case "cancelled":
		title = "Booking Cancelled"
		body = fmt.Sprintf("Your booking %s has been cancelled.", reference)
	default:
		return
	}

	if err := SendNotificationToToken(token, NotificationPayload{
		Title: title,
		Body:  body,
		Data:  map[string]string{"reference": reference, "status": status},
	}); err != nil {
		log.Printf("Error sending booking notification: %v", err)
	}
}
