package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildResetPasswordEmail(t *testing.T) {
	msg := BuildResetPasswordEmail("alice@example.com", "no-reply@roleplay.com", ResetPasswordEmailData{
		ProductName: "Roleplay",
		Username:    "alice",
		ResetURL:    "https://app.example.com/reset?token=abc123",
	})

	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "no-reply@roleplay.com", msg.From)
	assert.Equal(t, "Roleplay: password recovery", msg.Subject)

	assert.Contains(t, msg.TextBody, "Hi alice,")
	assert.Contains(t, msg.TextBody, "https://app.example.com/reset?token=abc123")

	assert.Contains(t, msg.HTMLBody, `href="https://app.example.com/reset?token=abc123"`)
	assert.Contains(t, msg.HTMLBody, "Hi alice,")
	assert.Contains(t, msg.HTMLBody, "Roleplay")
}

func TestBuildResetPasswordEmailEscapesHTML(t *testing.T) {
	msg := BuildResetPasswordEmail("bob@example.com", "no-reply@roleplay.com", ResetPasswordEmailData{
		ProductName: "Roleplay",
		Username:    "<script>bob</script>",
		ResetURL:    "https://app.example.com/reset?token=abc123",
	})

	assert.NotContains(t, msg.HTMLBody, "<script>bob</script>")
}
