package auth_test

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/pkg/jwt"
)

const testSecret = "secret-de-prueba"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail         map[string]*entity.User
	byID            map[string]*entity.User
	getByEmailCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	f.byEmail[u.Email] = &cp
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	f.getByEmailCalls++
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	f.byEmail[u.Email] = &cp
	f.byID[u.ID] = &cp
	return nil
}

// spyMailer captura el último correo de reset despachado.
type spyMailer struct {
	to    string
	token string
	calls int
	err   error
}

func (s *spyMailer) SendResetPasswordEmail(to, token string) error {
	s.calls++
	s.to = to
	s.token = token
	return s.err
}

func buildAuth() (*auth.AuthUseCase, *fakeUserRepo, *spyMailer) {
	repo := newFakeUserRepo()
	mailer := &spyMailer{}
	uc := auth.NewAuthUseCase(repo, mailer, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "ventas-api-test",
	})
	return uc, repo, mailer
}

func register(t *testing.T, uc *auth.AuthUseCase, email, password string) *dto.AuthResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{Email: email, Password: password})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register / Login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_HasheaPasswordYEmiteToken(t *testing.T) {
	uc, repo, _ := buildAuth()

	out := register(t, uc, "ana@test.local", "contraseña-larga")

	stored := repo.byEmail["ana@test.local"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "contraseña-larga", stored.PasswordHash, "nunca se persiste el password en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("contraseña-larga")))
	assert.Equal(t, entity.RoleUser, stored.Role)

	userID, email, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, userID)
	assert.Equal(t, "ana@test.local", email)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := buildAuth()
	register(t, uc, "ana@test.local", "contraseña-larga")

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@test.local", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Exitoso(t *testing.T) {
	uc, _, _ := buildAuth()
	created := register(t, uc, "ana@test.local", "contraseña-larga")

	out, err := uc.Login(dto.LoginRequest{Email: "ana@test.local", Password: "contraseña-larga"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, out.User.ID)
	assert.NotEmpty(t, out.Token)
}

// Email inexistente y password incorrecto deben fallar con exactamente el
// mismo error: la respuesta no debe permitir enumerar cuentas.
func TestLogin_NoDistingueEmailDePassword(t *testing.T) {
	uc, _, _ := buildAuth()
	register(t, uc, "ana@test.local", "contraseña-larga")

	_, errNoUser := uc.Login(dto.LoginRequest{Email: "nadie@test.local", Password: "contraseña-larga"})
	_, errBadPass := uc.Login(dto.LoginRequest{Email: "ana@test.local", Password: "incorrecta"})

	require.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
	require.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.Equal(t, errNoUser.Error(), errBadPass.Error(), "ambos fallos deben ser indistinguibles")
}

// ──────────────────────────────────────────────────────────────────────────────
// ForgotPassword
// ──────────────────────────────────────────────────────────────────────────────

func TestForgotPassword_EmailDesconocido(t *testing.T) {
	uc, _, mailer := buildAuth()

	err := uc.ForgotPassword("nadie@test.local")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Zero(t, mailer.calls, "sin usuario no se despacha correo")
}

func TestForgotPassword_DespachaTokenDe15Minutos(t *testing.T) {
	uc, _, mailer := buildAuth()
	register(t, uc, "ana@test.local", "contraseña-larga")

	err := uc.ForgotPassword("ana@test.local")
	require.NoError(t, err)
	assert.Equal(t, "ana@test.local", mailer.to)

	email, err := jwt.ParseReset(testSecret, mailer.token)
	require.NoError(t, err)
	assert.Equal(t, "ana@test.local", email)

	// El token de reset expira en ResetTokenTTL y no lleva Subject.
	var claims jwt.Claims
	_, err = gojwt.ParseWithClaims(mailer.token, &claims, func(*gojwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Empty(t, claims.Subject)
	assert.WithinDuration(t, time.Now().Add(jwt.ResetTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestForgotPassword_FalloDelMailerSePropaga(t *testing.T) {
	uc, _, mailer := buildAuth()
	register(t, uc, "ana@test.local", "contraseña-larga")
	mailer.err = errors.New("smtp caído")

	err := uc.ForgotPassword("ana@test.local")
	assert.EqualError(t, err, "smtp caído")
}

// ──────────────────────────────────────────────────────────────────────────────
// ResetPassword
// ──────────────────────────────────────────────────────────────────────────────

func TestResetPassword_TokenAdulterado_SinLookup(t *testing.T) {
	uc, repo, _ := buildAuth()

	_, err := uc.ResetPassword("no.es.jwt", "nueva-contraseña")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, repo.getByEmailCalls, "el token se verifica antes de cualquier lookup")
}

func TestResetPassword_FirmaIncorrecta(t *testing.T) {
	uc, repo, _ := buildAuth()
	token, err := jwt.GenerateReset("otro-secret", "ana@test.local", "ventas-api-test")
	require.NoError(t, err)

	_, err = uc.ResetPassword(token, "nueva-contraseña")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, repo.getByEmailCalls)
}

func TestResetPassword_TokenExpirado(t *testing.T) {
	uc, _, _ := buildAuth()

	// Token de reset con expiración en el pasado, firmado con el secret real.
	now := time.Now()
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "ventas-api-test",
			IssuedAt:  gojwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: gojwt.NewNumericDate(now.Add(-45 * time.Minute)),
		},
		Email: "ana@test.local",
	}
	expired, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = uc.ResetPassword(expired, "nueva-contraseña")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// El usuario pudo borrarse entre la emisión del token y su uso.
func TestResetPassword_UsuarioYaNoExiste(t *testing.T) {
	uc, _, _ := buildAuth()
	token, err := jwt.GenerateReset(testSecret, "borrada@test.local", "ventas-api-test")
	require.NoError(t, err)

	_, err = uc.ResetPassword(token, "nueva-contraseña")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResetPassword_RoundTrip(t *testing.T) {
	uc, _, mailer := buildAuth()
	register(t, uc, "ana@test.local", "contraseña-vieja")

	require.NoError(t, uc.ForgotPassword("ana@test.local"))

	out, err := uc.ResetPassword(mailer.token, "contraseña-nueva")
	require.NoError(t, err)
	assert.Equal(t, "ana@test.local", out.Email)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@test.local", Password: "contraseña-nueva"})
	assert.NoError(t, err, "la contraseña nueva debe funcionar")

	_, err = uc.Login(dto.LoginRequest{Email: "ana@test.local", Password: "contraseña-vieja"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "la contraseña vieja deja de servir")
}
