package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"khanqah/config"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Khanqah Saifia <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

func emailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">%s</h2>
					%s
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Khanqah Saifia</p>
				</div>
			</body>
		</html>
	`, title, bodyContent)
}

// SendOTPEmail sends the email verification code to a new account
func SendOTPEmail(otp, email string) error {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555; text-align: center;">Your verification code is:</p>
		<h1 style="text-align: center; color: #1a7f5a; font-size: 40px; margin: 20px 0;">%s</h1>
		<p style="font-size: 14px; color: #999999; text-align: center;">Do not share this code with anyone. It expires in 10 minutes.</p>
	`, otp)

	return SendEmail([]string{email}, "Verification Code - Khanqah Saifia", emailTemplate("Email Verification", body))
}

// SendEnrollmentEmail sends a confirmation when a user enrolls in a course
func SendEnrollmentEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Assalamu alaikum %s,</p>
		<p style="font-size: 16px; color: #555555;">You have successfully enrolled in:</p>
		<h3 style="text-align: center; color: #1a7f5a; margin: 20px 0;">%s</h3>
		<p style="font-size: 14px; color: #666666;">You can now access all lessons and track your progress. Complete every lesson to become eligible for a certificate.</p>
	`, userName, courseName)

	return SendEmail([]string{email}, "Course Enrollment Confirmation - Khanqah Saifia", emailTemplate("Enrollment Successful", body))
}

// SendCertificateEmail sends certificate notification email
func SendCertificateEmail(email, userName, courseName, certificateNumber string) error {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Assalamu alaikum %s,</p>
		<p style="font-size: 16px; color: #555555;">Congratulations on completing the course:</p>
		<h3 style="text-align: center; color: #1a7f5a; margin: 20px 0;">%s</h3>
		<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
			<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Certificate Number:</p>
			<h2 style="color: #1a7f5a; margin: 0;">%s</h2>
		</div>
		<p style="font-size: 14px; color: #666666;">Your certificate has been approved and is now available. Use this certificate number for verification.</p>
	`, userName, courseName, certificateNumber)

	return SendEmail([]string{email}, "Course Completion Certificate - Khanqah Saifia", emailTemplate("Certificate of Completion", body))
}
