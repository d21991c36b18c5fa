package email

import (
	"fmt"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/pkg/config"
	"gopkg.in/gomail.v2"
)

var _ auth.Mailer = (*SMTPMailer)(nil)

// SMTPMailer implementación del puerto Mailer sobre SMTP (gomail).
type SMTPMailer struct {
	cfg config.EmailConfig
}

// NewSMTPMailer construye el mailer con la configuración SMTP de la app.
func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendResetPasswordEmail envía el correo de reset con el token embebido en la
// URL de callback. Un fallo de envío se propaga tal cual: el flujo de
// forgot-password no lo suprime.
func (m *SMTPMailer) SendResetPasswordEmail(to, token string) error {
	tokenURL := fmt.Sprintf("%s?token=%s", m.cfg.ResetURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Restablece tu contraseña")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Recibimos una solicitud para restablecer tu contraseña.</p>
<p><a href="%s">Restablecer contraseña</a></p>
<p>El enlace vence en 15 minutos. Si no fuiste tú, ignora este correo.</p>`,
		tokenURL,
	))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo de reset: %w", err)
	}
	return nil
}
