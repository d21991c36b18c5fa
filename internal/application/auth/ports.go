package auth

// Mailer es el contrato mínimo de envío de correo que necesita el flujo de
// reset de contraseña. Una sola implementación (SMTP) en infraestructura.
type Mailer interface {
	SendResetPasswordEmail(to, token string) error
}
