package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"foodshare/entity"
	"foodshare/pkg/geo"
	"foodshare/pkg/notify"
	"foodshare/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*AuthService, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	g := &fakeGeo{places: map[string]geo.Coordinates{"1 Main St": {-0.1, 51.5}}}
	svc := NewAuthService(newTestStore(t), g, n, AuthConfig{
		JWTSecret:    testSecret,
		JWTTTL:       time.Hour,
		BaseURL:      "http://foodshare.test",
		SupportEmail: "support@foodshare.test",
	})
	return svc, n
}

func validRegister() RegisterIn {
	return RegisterIn{
		FirstName:  "Bea",
		LastName:   "Buyer",
		Email:      " Bea@Example.com ",
		Address:    "1 Main St",
		Password:   "s3cret",
		RePassword: "s3cret",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, n := newAuth(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "bea@example.com", u.Email)
	assert.Equal(t, entity.RoleCustomer, u.Role)
	assert.InDelta(t, 51.5, u.Latitude, 1e-9)
	assert.NotEqual(t, "s3cret", u.Password)

	welcome := n.to(notify.Welcome)
	require.Len(t, welcome, 1)
	assert.Equal(t, "Bea", welcome[0].fields["fname"])

	token, got, err := svc.Login(ctx, "BEA@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := utils.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleCustomer, claims.Role)

	_, _, err = svc.Login(ctx, "bea@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	in := validRegister()
	in.RePassword = "other"
	_, err := svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)

	in = validRegister()
	in.Email = "not-an-email"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)

	in = validRegister()
	in.LastName = " "
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)

	in = validRegister()
	in.Address = "Nowhere"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrExternalService)

	_, err = svc.Register(ctx, validRegister())
	require.NoError(t, err)
	_, err = svc.Register(ctx, validRegister())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestChangePassword(t *testing.T) {
	svc, n := newAuth(t)
	ctx := context.Background()
	u, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, u.ID, "bad", "new-pass"), ErrValidation)
	require.NoError(t, svc.ChangePassword(ctx, u.ID, "s3cret", "new-pass"))

	_, _, err = svc.Login(ctx, u.Email, "new-pass")
	require.NoError(t, err)
	assert.Len(t, n.to(notify.PasswordChanged), 1)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, n := newAuth(t)
	ctx := context.Background()
	u, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	// email ที่ไม่มีในระบบไม่ error และไม่ส่งอะไร
	require.NoError(t, svc.RequestPasswordReset(ctx, "ghost@example.com"))
	assert.Empty(t, n.to(notify.ResetPassword))

	require.NoError(t, svc.RequestPasswordReset(ctx, u.Email))
	mails := n.to(notify.ResetPassword)
	require.Len(t, mails, 1)
	link := mails[0].fields["link"]
	require.True(t, strings.HasPrefix(link, "http://foodshare.test/auth/reset-password/"))
	token := strings.TrimPrefix(link, "http://foodshare.test/auth/reset-password/")

	require.NoError(t, svc.ResetPassword(ctx, token, "fresh"))
	assert.Len(t, n.to(notify.ResetPasswordDone), 1)
	_, _, err = svc.Login(ctx, u.Email, "fresh")
	require.NoError(t, err)

	// ใช้ได้ครั้งเดียว
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "again"), ErrValidation)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "unknown", "again"), ErrValidation)
}

func TestPasswordResetExpires(t *testing.T) {
	svc, n := newAuth(t)
	ctx := context.Background()
	u, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, u.Email))
	token := strings.TrimPrefix(n.to(notify.ResetPassword)[0].fields["link"], "http://foodshare.test/auth/reset-password/")

	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "late"), ErrValidation)

	_, _, err = svc.Login(ctx, u.Email, "s3cret")
	assert.NoError(t, err)
}
