package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ResetPasswordEmailData holds data for the reset-password email templates
type ResetPasswordEmailData struct {
	ProductName string
	Username    string
	ResetURL    string
}

// BuildResetPasswordEmail creates the reset-password email with both HTML
// and text bodies
func BuildResetPasswordEmail(to, from string, data ResetPasswordEmailData) Email {
	return Email{
		To:       to,
		From:     from,
		Subject:  fmt.Sprintf("%s: password recovery", data.ProductName),
		TextBody: buildResetPasswordText(data),
		HTMLBody: buildResetPasswordHTML(data),
	}
}

func buildResetPasswordText(data ResetPasswordEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.Username))
	buf.WriteString(fmt.Sprintf("Someone asked to reset your %s password.\n", data.ProductName))
	buf.WriteString("Open this link to choose a new one:\n")
	buf.WriteString(data.ResetURL + "\n\n")
	buf.WriteString("The link expires in 2 hours.\n\n")
	buf.WriteString("If you did not ask for this, you can safely ignore this email.\n")
	return buf.String()
}

func buildResetPasswordHTML(data ResetPasswordEmailData) string {
	tmpl := template.Must(template.New("resetpassword").Parse(resetPasswordHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const resetPasswordHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Password recovery</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #7c2d12;">{{.ProductName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151;">
                Hi {{.Username}}, someone asked to reset your password.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 32px; background-color: #7c2d12; color: #ffffff; text-decoration: none; font-size: 16px; border-radius: 6px;">
                      Reset password
                    </a>
                  </td>
                </tr>
              </table>
              <p style="margin: 24px 0 0; font-size: 13px; color: #9ca3af; text-align: center;">
                The link expires in 2 hours.
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                If you did not ask for this, you can safely ignore this email.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
