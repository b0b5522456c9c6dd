package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"farmgate/internal/domain"
	"farmgate/internal/repos"
	"farmgate/internal/services"
)

func registerInput(username string) services.RegisterInput {
	return services.RegisterInput{
		Username:        username,
		Email:           username + "@x.com",
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db)}

	u, err := svc.Register(registerInput("alice"))
	require.NoError(t, err)
	require.Equal(t, domain.RoleCustomer, u.Role)

	require.False(t, strings.Contains(u.Hash, "pw123456"), "plaintext must never be stored")
	require.True(t, strings.HasPrefix(u.Hash, "$2"))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte("pw123456")))
}

func TestRegisterDuplicateUsernameOrEmail(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db)}

	_, err := svc.Register(registerInput("alice"))
	require.NoError(t, err)

	_, err = svc.Register(registerInput("alice"))
	require.True(t, errors.Is(err, repos.ErrDuplicate))

	in := registerInput("bob")
	in.Email = "alice@x.com"
	_, err = svc.Register(in)
	require.True(t, errors.Is(err, repos.ErrDuplicate))
}

func TestRegisterValidation(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db)}

	in := services.RegisterInput{Username: "al", Email: "not-an-email", Password: "short", ConfirmPassword: "different"}
	_, err := svc.Register(in)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	require.True(t, fields["username"])
	require.True(t, fields["email"])
	require.True(t, fields["password"])
	require.True(t, fields["confirmPassword"])
}

func TestLoginAndSession(t *testing.T) {
	db := memdb(t)
	svc := &services.AuthService{Users: repos.NewUserRepo(db)}

	_, err := svc.Register(registerInput("alice"))
	require.NoError(t, err)

	_, err = svc.Login("sid-1", "alice", "wrongpass")
	require.True(t, errors.Is(err, services.ErrBadCreds))

	_, err = svc.Login("sid-1", "nobody", "pw123456")
	require.True(t, errors.Is(err, services.ErrBadCreds), "unknown user must fail identically")

	u, err := svc.Login("sid-1", "alice", "pw123456")
	require.NoError(t, err)

	cur, err := svc.CurrentUser("sid-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, cur.ID)

	require.NoError(t, svc.Logout("sid-1"))
	_, err = svc.CurrentUser("sid-1")
	require.Error(t, err)
}
