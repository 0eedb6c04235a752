// File: utils/firebase.go
package utils

import (
	"context"
	"log"

	"glowdesk/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var fcmClient *messaging.Client

// FirebaseInit initializes the Firebase app and Messaging client used for
// staff notifications. Skipped when no credentials file is configured.
func FirebaseInit() {
	if config.AppConfig.FirebaseServiceAccountFile == "" {
		log.Println("firebase: no service account configured, staff notifications disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseServiceAccountFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	fcmClient = client
}

// GetFCMClient returns the Messaging client, nil when Firebase is disabled.
func GetFCMClient() *messaging.Client {
	return fcmClient
}
