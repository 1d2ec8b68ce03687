package sms

import (
	"errors"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrProviderAuth marks a delivery failure caused by bad provider
// credentials rather than the message itself.
var ErrProviderAuth = errors.New("sms provider authentication failed")

// Notifier delivers a one-time code to a phone number.
type Notifier interface {
	SendOTP(phoneNumber, code string) error
}

type Config struct {
	AccountSid string
	AuthToken  string
	From       string
}

// TwilioNotifier sends codes through the Twilio messaging API.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioNotifier(cfg Config) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSid,
		Password: cfg.AuthToken,
	})
	return &TwilioNotifier{client: client, from: cfg.From}
}

func (n *TwilioNotifier) SendOTP(phoneNumber, code string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(n.from)
	params.SetBody("Your OTP is: " + code)

	_, err := n.client.Api.CreateMessage(params)
	if err != nil {
		var restErr *twilioclient.TwilioRestError
		// 20003: authentication failure on the Twilio account
		if errors.As(err, &restErr) && restErr.Code == 20003 {
			return ErrProviderAuth
		}
		return err
	}
	return nil
}
