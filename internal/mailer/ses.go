package mailer

import (
	"context"

	"quillworks/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type SESMailer struct {
	client *sesv2.Client
	from   string
}

func NewSESMailer(client *sesv2.Client, from string) *SESMailer {
	return &SESMailer{
		client: client,
		from:   from,
	}
}

func (m *SESMailer) Send(ctx context.Context, email Email) (string, error) {
	out, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination: &sestypes.Destination{
			ToAddresses: []string{email.To},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(email.Subject)},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(email.HTML)},
				},
			},
		},
	})
	if err != nil {
		return "", types.WrapError(types.KindDependency, "email send failed", err)
	}

	return aws.ToString(out.MessageId), nil
}
