package notifications

import (
	"fmt"

	"github.com/keaton678/research-hub/domain"
)

const (
	htmlHeader = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<div style="background: #1d2330; color: #ffffff; padding: 2rem; text-align: center;">
<h1 style="margin: 0; color: #64ffda;">Research Hub</h1>
<p style="margin: 0.5rem 0 0 0; color: #8892b0;">%s</p>
</div>
<div style="padding: 2rem; background: #ffffff;">`

	htmlFooter = `</div>
<div style="background: #f8f9fa; padding: 1rem; text-align: center; color: #666; font-size: 0.8rem;">
<p>Research Hub - Research Learning Platform</p>
</div>
</div>`

	htmlButton = `<div style="text-align: center; margin: 2rem 0;">
<a href="%s" style="background: #64ffda; color: #0f1419; padding: 1rem 2rem; text-decoration: none; border-radius: 8px; font-weight: 600; display: inline-block;">%s</a>
</div>
<p style="color: #666; font-size: 0.9rem;">If the button doesn't work, copy and paste this link into your browser:<br><a href="%s">%s</a></p>`
)

// VerificationEmail builds the account verification message. The link
// expires in 24 hours.
func VerificationEmail(to, name, link string) domain.Email {
	html := fmt.Sprintf(htmlHeader, "Research Learning Platform") +
		fmt.Sprintf(`<h2 style="color: #1d2330; margin-top: 0;">Welcome, %s!</h2>
<p style="color: #666; line-height: 1.6;">Thank you for joining Research Hub. To complete your registration, please verify your email address.</p>`, name) +
		fmt.Sprintf(htmlButton, link, "Verify Email Address", link, link) +
		`<p style="color: #666; font-size: 0.9rem; margin-top: 2rem;">This verification link will expire in 24 hours. If you didn't create an account, you can safely ignore this email.</p>` +
		htmlFooter

	text := fmt.Sprintf(`Welcome to Research Hub, %s!

Thank you for joining. To complete your registration, please verify your email address by opening the link below:

%s

This verification link will expire in 24 hours. If you didn't create an account, you can safely ignore this email.
`, name, link)

	return domain.Email{
		To:      to,
		Subject: "Verify your Research Hub account",
		HTML:    html,
		Text:    text,
		Tag:     "verification",
	}
}

// PasswordResetEmail builds the password reset message. The link expires
// in 1 hour.
func PasswordResetEmail(to, name, link string) domain.Email {
	html := fmt.Sprintf(htmlHeader, "Password Reset Request") +
		fmt.Sprintf(`<h2 style="color: #1d2330; margin-top: 0;">Reset Your Password</h2>
<p style="color: #666; line-height: 1.6;">Hi %s, we received a request to reset the password for your Research Hub account.</p>`, name) +
		fmt.Sprintf(htmlButton, link, "Reset Password", link, link) +
		`<p style="color: #666; font-size: 0.9rem; margin-top: 2rem;">This password reset link will expire in 1 hour. If you didn't request a reset, you can safely ignore this email and your password will remain unchanged.</p>` +
		htmlFooter

	text := fmt.Sprintf(`Password Reset Request - Research Hub

Hi %s,

We received a request to reset the password for your account. Open the link below to choose a new password:

%s

This password reset link will expire in 1 hour. If you didn't request a reset, you can safely ignore this email.
`, name, link)

	return domain.Email{
		To:      to,
		Subject: "Reset your Research Hub password",
		HTML:    html,
		Text:    text,
		Tag:     "password-reset",
	}
}

// WelcomeEmail builds the post-verification welcome message.
func WelcomeEmail(to, name, dashboardLink string) domain.Email {
	html := fmt.Sprintf(htmlHeader, "Welcome to the Community!") +
		fmt.Sprintf(`<h2 style="color: #1d2330; margin-top: 0;">Welcome, %s!</h2>
<p style="color: #666; line-height: 1.6;">Your email has been verified and your account is now active. You're ready to explore our research resources!</p>`, name) +
		fmt.Sprintf(htmlButton, dashboardLink, "Start Learning", dashboardLink, dashboardLink) +
		htmlFooter

	text := fmt.Sprintf(`Welcome to Research Hub, %s!

Your email has been verified and your account is now active.

Visit: %s
`, name, dashboardLink)

	return domain.Email{
		To:      to,
		Subject: "Welcome to Research Hub!",
		HTML:    html,
		Text:    text,
		Tag:     "welcome",
	}
}

// FeedbackNotificationEmail builds the admin notification for a new
// feedback submission.
func FeedbackNotificationEmail(to string, fb *domain.Feedback) domain.Email {
	html := fmt.Sprintf(htmlHeader, "New Feedback Received") +
		fmt.Sprintf(`<h2 style="color: #1d2330; margin-top: 0;">%s</h2>
<p style="color: #666;"><strong>From:</strong> %s (%s)<br>
<strong>Type:</strong> %s</p>
<p style="color: #666; line-height: 1.6; white-space: pre-wrap;">%s</p>`,
			fb.Subject, fb.Name, fb.Email, fb.Type, fb.Message) +
		htmlFooter

	text := fmt.Sprintf(`New feedback received

Subject: %s
From: %s (%s)
Type: %s

%s
`, fb.Subject, fb.Name, fb.Email, fb.Type, fb.Message)

	return domain.Email{
		To:      to,
		Subject: fmt.Sprintf("[Feedback] %s", fb.Subject),
		HTML:    html,
		Text:    text,
		Tag:     "feedback-notification",
	}
}
