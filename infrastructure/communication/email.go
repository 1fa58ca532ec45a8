package communication

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailInfo struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

func SenderAddress() string {
	if from := os.Getenv("GUARDLINK_EMAIL_FROM"); from != "" {
		return from
	}
	return "rosters@guardlink.com.au"
}

func SendEmail(ctx context.Context, info *EmailInfo) error {
	emailRaw, err := BuildEmailBuffer(info)
	if err != nil {
		return err
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	client := ses.NewFromConfig(cfg)

	_, err = client.SendRawEmail(
		ctx,
		&ses.SendRawEmailInput{
			RawMessage: &types.RawMessage{
				Data: emailRaw.Bytes(),
			},
		},
	)
	return err
}

func BuildEmailBuffer(info *EmailInfo) (*bytes.Buffer, error) {
	var emailRaw bytes.Buffer
	writer := multipart.NewWriter(&emailRaw)
	boundary := writer.Boundary()

	headers := fmt.Sprintf("From: %s\r\n", info.From)
	if len(info.To) > 0 {
		headers += fmt.Sprintf("To: %s\r\n", strings.Join(info.To, ", "))
	}
	headers += fmt.Sprintf("Subject: %s\r\n", info.Subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary)
	headers += "\r\n"
	emailRaw.WriteString(headers)

	if info.Text != "" {
		part, _ := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"text/plain; charset=UTF-8"},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		qp := quotedprintable.NewWriter(part)
		qp.Write([]byte(info.Text))
		qp.Close()
	}

	if info.HTML != "" {
		part, _ := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"text/html; charset=UTF-8"},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		qp := quotedprintable.NewWriter(part)
		qp.Write([]byte(info.HTML))
		qp.Close()
	}

	writer.Close()

	return &emailRaw, nil
}

// BuildShiftReminder is the email sent when a shift lands on a guard's
// roster. The app is the source of truth for confirmations; the email
// is a nudge, not an action channel.
func BuildShiftReminder(to string, guardName string, siteName string, date string, startTime string) *EmailInfo {
	subject := fmt.Sprintf("New shift: %s on %s at %s", siteName, date, startTime)
	text := fmt.Sprintf(
		"Hi %s,\n\nYou have been rostered at %s on %s starting %s.\n"+
			"Please open the app to confirm the shift.\n", guardName, siteName, date, startTime)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>You have been rostered at <b>%s</b> on <b>%s</b> starting <b>%s</b>.</p>"+
			"<p>Please open the app to confirm the shift.</p>", guardName, siteName, date, startTime)

	return &EmailInfo{
		From:    SenderAddress(),
		To:      []string{to},
		Subject: subject,
		Text:    text,
		HTML:    html,
	}
}
