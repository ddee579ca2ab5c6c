package service

import (
	"fmt"
	"net/smtp"

	"github.com/hndoan/Lorises/config"
	"github.com/rs/zerolog/log"
)

// MailerService delivers transactional mail. The SMTP endpoint is an external
// collaborator; when it is not configured the service degrades to logging the
// code so local development still works end to end.
type MailerService interface {
	SendVerificationCode(toEmail, fullName, code string) error
}

type smtpMailerService struct {
	cfg *config.Config
}

func NewMailerService(cfg *config.Config) MailerService {
	if cfg.SMTP.Host == "" {
		log.Warn().Msg("SMTP_HOST is not set. Verification mails will be logged instead of sent.")
	}
	return &smtpMailerService{cfg: cfg}
}

func (s *smtpMailerService) SendVerificationCode(toEmail, fullName, code string) error {
	if s.cfg.SMTP.Host == "" {
		log.Info().Str("email", toEmail).Str("code", code).Msg("SMTP disabled, verification code logged")
		return nil
	}

	addr := s.cfg.SMTP.Host + ":" + s.cfg.SMTP.Port
	auth := smtp.PlainAuth("", s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.Host)

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verify your account\r\n\r\nHi %s,\r\n\r\nYour verification code is %s.\r\n",
		s.cfg.SMTP.From, toEmail, fullName, code,
	)

	if err := smtp.SendMail(addr, auth, s.cfg.SMTP.From, []string{toEmail}, []byte(body)); err != nil {
		log.Error().Err(err).Str("email", toEmail).Msg("Failed to send verification mail")
		return fmt.Errorf("failed to send verification mail: %w", err)
	}
	return nil
}
