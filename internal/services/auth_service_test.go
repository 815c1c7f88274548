package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/community-service-hub/internal/models"
)

func TestSignupVerifyLogin(t *testing.T) {
	env := newTestEnv(t)

	account, err := env.auth.SignupVolunteer(env.ctx, SignupInput{
		Name:     "Ana",
		Email:    " Ana@Example.com ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", account.Email)
	assert.Equal(t, models.RoleVolunteer, account.Role)

	_, err = env.auth.Login(env.ctx, LoginInput{Email: "ana@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrAccountNotVerified)

	require.NoError(t, env.otps.VerifyByEmail(env.ctx, "ana@example.com", testOTPCode))

	_, err = env.auth.Login(env.ctx, LoginInput{Email: "ana@example.com", Password: "wrong-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := env.auth.Login(env.ctx, LoginInput{Email: "ANA@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, result.Account.ID)
	assert.NotEmpty(t, result.AccessToken)
}

func TestSignup_Rejections(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.SignupVolunteer(env.ctx, SignupInput{Name: "Ana", Email: "ana@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = env.auth.SignupVolunteer(env.ctx, SignupInput{Name: "", Email: "ana@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = env.auth.SignupVolunteer(env.ctx, SignupInput{Name: "Ana", Email: "ana@example.com", Password: "long-enough"})
	require.NoError(t, err)

	_, err = env.auth.SignupNGO(env.ctx, SignupNGOInput{OrganizationName: "Helpers", Email: "ana@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = env.auth.Login(env.ctx, LoginInput{Email: "nobody@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNGOApprovalFlow(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.auth.EnsureAdmin(env.ctx, "root@example.com", "admin-password"))
	require.NoError(t, env.auth.EnsureAdmin(env.ctx, "root@example.com", "admin-password"))

	adminLogin, err := env.auth.Login(env.ctx, LoginInput{Email: "root@example.com", Password: "admin-password"})
	require.NoError(t, err)
	admin := Caller{ID: adminLogin.Account.ID, Role: adminLogin.Account.Role}
	assert.True(t, admin.IsAdmin())

	account, err := env.auth.SignupNGO(env.ctx, SignupNGOInput{
		OrganizationName: "Helpers",
		Email:            "ngo@example.org",
		Password:         "long-enough",
		City:             "Accra",
	})
	require.NoError(t, err)
	assert.False(t, account.Approved)
	ngo := Caller{ID: account.ID, Role: models.RoleNGO}

	_, err = env.tasks.CreateTask(env.ctx, ngo, CreateTaskInput{Name: "Food drive", NumberOfPeopleNeeded: 1})
	assert.ErrorIs(t, err, ErrNGONotApproved)

	_, err = env.auth.ReviewNGO(env.ctx, ngo, account.ID, true)
	assert.ErrorIs(t, err, ErrForbidden)

	pending := false
	waiting, err := env.auth.ListNGOs(env.ctx, admin, &pending)
	require.NoError(t, err)
	require.Len(t, waiting, 1)

	reviewed, err := env.auth.ReviewNGO(env.ctx, admin, account.ID, true)
	require.NoError(t, err)
	assert.True(t, reviewed.IsApproved)
	assert.Equal(t, admin.ID, *reviewed.UpdatedBy)

	_, err = env.tasks.CreateTask(env.ctx, ngo, CreateTaskInput{Name: "Food drive", NumberOfPeopleNeeded: 1})
	assert.NoError(t, err)

	sent := env.notifier.sent()
	assert.Contains(t, sent[len(sent)-1].Body, "has been approved")
}
