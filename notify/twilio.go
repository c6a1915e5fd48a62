package notify

import (
	"context"
	"errors"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSMS sends plain SMS through the Twilio Messages API.
type TwilioSMS struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMS(accountSid, authToken, from string) *TwilioSMS {
	return &TwilioSMS{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *TwilioSMS) SendSMS(_ context.Context, to, body string) error {
	if to == "" {
		return errors.New("sms recipient is empty")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		log.Printf("[notify][sms] message sent to %s, SID: %s", to, *resp.Sid)
	} else {
		log.Printf("[notify][sms] message sent to %s, but no SID returned", to)
	}
	return nil
}
