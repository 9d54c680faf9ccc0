package tests

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/ujumbe/apps/api/echo"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/tests"
)

const pwd = "Pa55w0rd!"

func Test_userApi_login(t *testing.T) {
	f := setup(t)
	testutil.CreateUser(t, f.usrRepo, "Hero", "hero", "hero@test.cd", pwd, []string{user.RoleStudent}, true)
	testutil.CreateUser(t, f.usrRepo, "N Dog", "ndog", "ndog@test.cd", pwd, []string{user.RoleStudent}, false)

	reqMsg := "this field is required"
	failed := marchallObj(t, httpErr{Error: "authentication failed"})

	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echoapi.LoginRequest{Username: reqMsg, Password: reqMsg}),
		},
		{
			name: "unknown user", wantCode: http.StatusBadRequest, wantData: failed,
			body: marchallObj(t, echoapi.LoginRequest{Username: "lol", Password: pwd}),
		},
		{
			name: "wrong password", wantCode: http.StatusBadRequest, wantData: failed,
			body: marchallObj(t, echoapi.LoginRequest{Username: "hero", Password: "lol"}),
		},
		{
			name: "inactive user", wantCode: http.StatusForbidden,
			body:     marchallObj(t, echoapi.LoginRequest{Username: "ndog", Password: pwd}),
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{name: "by username", body: marchallObj(t, echoapi.LoginRequest{Username: " HERO ", Password: pwd})},
		{name: "by email", body: marchallObj(t, echoapi.LoginRequest{Username: "Hero@Test.cd", Password: pwd})},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/users/login"
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			f.app.ServeHTTP(rec, req)

			// cannot guess the token.. just check that it's usable
			if tt.wantCode == http.StatusOK {
				require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
				var resp echoapi.LoginResponse
				unmarshal(t, rec, &resp)
				require.NotEmpty(t, resp.Token)

				req, rec = newAuthRequest(http.MethodGet, "/v1/users/me", resp.Token)
				f.app.ServeHTTP(rec, req)
				require.Equal(t, http.StatusOK, rec.Code)
				var me user.User
				unmarshal(t, rec, &me)
				assert.Equal(t, "hero", me.Username)
				assert.False(t, me.LastLogin.IsZero())
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_me(t *testing.T) {
	f := setup(t)
	student := testutil.CreateUser(t, f.usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	naughty := testutil.CreateUser(t, f.usrRepo, "N Dog", "ndog", "ndog@test.cd", "", []string{user.RoleStudent}, false)
	deleted := user.User{ID: "deleted-id", Roles: []string{user.RoleAdmin}}

	runHTTPTests(t, f.app, []httpTest{
		{name: "Auth required", path: "/v1/users/me", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "invalid token", path: "/v1/users/me", token: "lol", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
		{
			name: "deleted user", path: "/v1/users/me", token: getToken(t, f.conf, deleted), wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "user not authenticated"}),
		},
		{
			name: "inactive user", path: "/v1/users/me", token: getToken(t, f.conf, naughty), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{name: "current user", path: "/v1/users/me", token: getToken(t, f.conf, student), wantData: marchallObj(t, student)},
	})
}

func Test_userApi_query(t *testing.T) {
	f := setup(t)

	path := func(v url.Values) string { return "/v1/users?" + v.Encode() }

	now := time.Now()
	t1 := now.Add(1 * time.Hour)
	t2 := now.Add(2 * time.Hour)
	t3 := now.Add(3 * time.Hour)

	usr1 := testutil.CreateUser(t, f.usrRepo, "User", "awe", "awe@test.cd", "", nil, true, t1)
	usr2 := testutil.CreateUser(t, f.usrRepo, "King", "user02", "king@test.cd", "", nil, true, now.Add(-2*time.Hour))
	student := testutil.CreateUser(t, f.usrRepo, "Hero", "hero", "user3@test.cd", "", []string{user.RoleStudent}, true, now.Add(-1*time.Hour))
	admin := testutil.CreateUser(t, f.usrRepo, "Admin", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true, t2)
	teacher := testutil.CreateUser(t, f.usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true, t3)
	naughty := testutil.CreateUser(t, f.usrRepo, "N Dog", "ndog", "ndog@test.cd", "", []string{user.RoleStudent}, false, now)

	adminToken := getToken(t, f.conf, admin)

	runHTTPTests(t, f.app, []httpTest{
		{name: "Auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", path: "/v1/users", token: getToken(t, f.conf, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Get all", path: "/v1/users", token: adminToken,
			wantData: marchallList(t, teacher, admin, usr1, naughty, student, usr2),
		},
		// filtering
		{name: "search (unknown)", path: path(url.Values{"search": {"lol"}}), token: adminToken, wantData: marchallList(t)},
		{
			name: "search=USE", path: path(url.Values{"search": {"USE"}}), token: adminToken,
			wantData: marchallList(t, usr1, student, usr2),
		},
		{
			name: "role=teacher:,student:", path: path(url.Values{"role": {user.RoleTeacher, user.RoleStudent}}), token: adminToken,
			wantData: marchallList(t, teacher, naughty, student),
		},
		{name: "is_active=false", path: path(url.Values{"is_active": {"false"}}), token: adminToken, wantData: marchallList(t, naughty)},
		{
			name: "is_active (invalid)", path: path(url.Values{"is_active": {"lol"}}), token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"is_active": "must be true or false"}),
		},
		{
			name: "created_from", path: path(url.Values{"created_from": {t1.Format(time.RFC3339Nano)}}), token: adminToken,
			wantData: marchallList(t, teacher, admin, usr1),
		},
		{
			name: "created_from - created_to", path: path(url.Values{
				"created_from": {t1.Format(time.RFC3339Nano)},
				"created_to":   {t2.Format(time.RFC3339Nano)},
			}),
			token: adminToken, wantData: marchallList(t, admin, usr1),
		},
		{
			name: "created_to (invalid)", path: path(url.Values{"created_to": {"yesterday"}}), token: adminToken,
			wantCode: http.StatusBadRequest,
		},
		// ordering
		{
			name: "order by created_at", path: path(url.Values{"ordering": {"created_at"}}), token: adminToken,
			wantData: marchallList(t, usr2, student, naughty, usr1, admin, teacher),
		},
		{
			name: "order by is_active,-name", path: path(url.Values{"ordering": {"is_active,-name"}}), token: adminToken,
			wantData: marchallList(t, naughty, usr1, teacher, usr2, student, admin),
		},
		{
			name: "filtering & ordering", path: path(url.Values{"role": {user.RoleTeacher, user.RoleStudent}, "ordering": {"name"}}),
			token: adminToken, wantData: marchallList(t, student, naughty, teacher),
		},
	})
}

func Test_userApi_create(t *testing.T) {
	f := setup(t)
	admin := testutil.CreateUser(t, f.usrRepo, "Admin", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	teacher := testutil.CreateUser(t, f.usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	adminToken := getToken(t, f.conf, admin)

	newUser := func(uname string, roles ...string) []byte {
		return marchallObj(t, user.NewUser{
			Name: "New " + uname, Username: uname, Password: "Str0ng&Long", PasswordConfirm: "Str0ng&Long", Roles: roles,
		})
	}

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "Admin required", method: http.MethodPost, path: "/v1/users/register", token: getToken(t, f.conf, teacher),
			body: newUser("kid"), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "username taken", method: http.MethodPost, path: "/v1/users/register", token: adminToken,
			body: newUser("teacher"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": user.ErrUsernameExists.Error()}),
		},
		{
			name: "roles above own", method: http.MethodPost, path: "/v1/users/register", token: adminToken,
			body: newUser("boss", user.RoleAdminOwner), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"roles": user.ErrNoPermsToSetRoles.Error()}),
		},
		{
			name: "invalid role", method: http.MethodPost, path: "/v1/users/register", token: adminToken,
			body: newUser("kid", "lol"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"roles": "invalid roles"}),
		},
		{
			name: "created", method: http.MethodPost, path: "/v1/users/register", token: adminToken,
			body: newUser("kid", user.RoleStudent), wantCode: http.StatusCreated,
		},
	})

	usr, err := f.usrRepo.GetUser(context.Background(), user.GetFilter{Username: "kid"})
	require.NoError(t, err)
	assert.Equal(t, []string{user.RoleStudent}, usr.Roles)
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("Str0ng&Long"))
}

func Test_userApi_roles(t *testing.T) {
	f := setup(t)
	admin := testutil.CreateUser(t, f.usrRepo, "Admin", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)

	runHTTPTests(t, f.app, []httpTest{
		{name: "roles", path: "/v1/users/roles", token: getToken(t, f.conf, admin), wantData: marchallObj(t, user.Roles)},
	})
}

func Test_userApi_retrieveUpdate(t *testing.T) {
	f := setup(t)
	principal := testutil.CreateUser(t, f.usrRepo, "Principal", "princip", "princip@test.cd", "", []string{user.RoleAdminPrincipal}, true)
	owner := testutil.CreateUser(t, f.usrRepo, "Owner", "owner", "owner@test.cd", "", []string{user.RoleAdminOwner}, true)
	student := testutil.CreateUser(t, f.usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	other := testutil.CreateUser(t, f.usrRepo, "Other", "other", "other@test.cd", "", []string{user.RoleStudent}, true)

	principalToken := getToken(t, f.conf, principal)
	studentToken := getToken(t, f.conf, student)
	active := false

	runHTTPTests(t, f.app, []httpTest{
		{name: "self", path: "/v1/users/" + student.ID, token: studentToken, wantData: marchallObj(t, student)},
		{name: "someone else", path: "/v1/users/" + other.ID, token: studentToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "admin", path: "/v1/users/" + other.ID, token: principalToken, wantData: marchallObj(t, other)},
		{name: "unknown", path: "/v1/users/lol", token: principalToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{
			name: "non admin sets roles", method: http.MethodPut, path: "/v1/users/" + student.ID, token: studentToken,
			body: marchallObj(t, user.UpdateUser{Roles: []string{user.RoleAdmin}}), wantCode: http.StatusForbidden,
		},
		{
			name: "non admin sets is_active", method: http.MethodPut, path: "/v1/users/" + student.ID, token: studentToken,
			body: marchallObj(t, user.UpdateUser{IsActive: &active}), wantCode: http.StatusForbidden,
		},
		{
			name: "admin edits a higher admin", method: http.MethodPut, path: "/v1/users/" + owner.ID, token: principalToken,
			body: marchallObj(t, user.UpdateUser{Name: "Lol"}), wantCode: http.StatusForbidden,
		},
		{
			name: "admin sets roles above own", method: http.MethodPut, path: "/v1/users/" + other.ID, token: principalToken,
			body: marchallObj(t, user.UpdateUser{Roles: []string{user.RoleAdminOwner}}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"roles": user.ErrNoPermsToSetRoles.Error()}),
		},
		{
			name: "password confirmation", method: http.MethodPut, path: "/v1/users/" + student.ID, token: studentToken,
			body: marchallObj(t, user.UpdateUser{Password: "N3w&Secret"}), wantCode: http.StatusBadRequest,
		},
	})

	t.Run("self update", func(t *testing.T) {
		body := marchallObj(t, user.UpdateUser{Name: "Super Hero", Language: "FR", Password: "N3w&Secret", PasswordConfirm: "N3w&Secret"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+student.ID, studentToken, body)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got user.User
		unmarshal(t, rec, &got)
		assert.Equal(t, "Super Hero", got.Name)
		assert.Equal(t, "fr", got.Language)
		assert.Equal(t, student.Email, got.Email)

		usr, err := f.usrRepo.GetUser(context.Background(), user.GetFilter{ID: student.ID})
		require.NoError(t, err)
		assert.NoError(t, usr.CheckPassword("N3w&Secret"))
	})

	t.Run("admin update", func(t *testing.T) {
		body := marchallObj(t, user.UpdateUser{IsActive: &active, Roles: []string{user.RoleTeacher}, Email: "NEW@test.cd"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+other.ID, principalToken, body)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got user.User
		unmarshal(t, rec, &got)
		assert.False(t, got.IsActive)
		assert.Equal(t, []string{user.RoleTeacher}, got.Roles)
		assert.Equal(t, "new@test.cd", got.Email)
	})
}

func Test_userApi_destroy(t *testing.T) {
	f := setup(t)
	principal := testutil.CreateUser(t, f.usrRepo, "Principal", "princip", "princip@test.cd", "", []string{user.RoleAdminPrincipal}, true)
	owner := testutil.CreateUser(t, f.usrRepo, "Owner", "owner", "owner@test.cd", "", []string{user.RoleAdminOwner}, true)
	usr1 := testutil.CreateUser(t, f.usrRepo, "One", "one", "", "", []string{user.RoleStudent}, true)
	usr2 := testutil.CreateUser(t, f.usrRepo, "Two", "two", "", "", []string{user.RoleStudent}, true)
	usr3 := testutil.CreateUser(t, f.usrRepo, "Three", "three", "", "", []string{user.RoleParent}, true)

	token := getToken(t, f.conf, principal)

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "Admin required", method: http.MethodDelete, path: "/v1/users/" + usr1.ID, token: getToken(t, f.conf, usr1),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "not oneself", method: http.MethodDelete, path: "/v1/users/" + principal.ID, token: token,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "not a higher admin", method: http.MethodDelete, path: "/v1/users/" + owner.ID, token: token,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "deleted", method: http.MethodDelete, path: "/v1/users/" + usr1.ID, token: token, wantCode: http.StatusNoContent},
		{
			name: "already deleted", method: http.MethodDelete, path: "/v1/users/" + usr1.ID, token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "bulk: not oneself", method: http.MethodDelete, path: "/v1/users?id=" + usr2.ID + "&id=" + principal.ID, token: token,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "bulk: not a higher admin", method: http.MethodDelete, path: "/v1/users?id=" + usr2.ID + "&id=" + owner.ID, token: token,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "bulk: nothing", method: http.MethodDelete, path: "/v1/users", token: token, wantCode: http.StatusNoContent},
		{name: "bulk: deleted", method: http.MethodDelete, path: "/v1/users?id=" + usr2.ID + "," + usr3.ID, token: token, wantCode: http.StatusNoContent},
	})

	users, err := f.usrRepo.QueryUsers(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func Test_userApi_refreshToken(t *testing.T) {
	f := setup(t)
	naughty := testutil.CreateUser(t, f.usrRepo, "N Dog", "ndog", "ndog@test.cd", "", []string{user.RoleStudent}, false)
	student := testutil.CreateUser(t, f.usrRepo, "Hero", "hero", "user3@test.cd", "", []string{user.RoleStudent}, true)

	now := time.Now()
	unrefreshableClaims := &echoapi.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    f.conf.AppName,
			Subject:   student.ID,
			ExpiresAt: now.Add(f.conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		OrigIssuedAt: now.Add(-2 * f.conf.Server.JWTRefreshExpirationDelta).Unix(), // older than threshold
		IsStudent:    student.IsStudent(),
		Roles:        student.Roles,
	}
	unrefreshableToken, err := echoapi.GenerateToken(f.conf, unrefreshableClaims)
	require.NoError(t, err)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Inactive user not allowed", token: getToken(t, f.conf, naughty), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "Refresh period expired", token: unrefreshableToken, wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "refresh has expired"}),
		},
		{name: "Token refreshed", token: getToken(t, f.conf, student), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/users/token-refresh"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			f.app.ServeHTTP(rec, req)

			// cannot guess new token.. just check that it keeps the original issue time
			if tt.wantCode == http.StatusOK {
				require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
				var resp echoapi.LoginResponse
				unmarshal(t, rec, &resp)

				claims := new(echoapi.Claims)
				_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
					return []byte(f.conf.SecretKey), nil
				})
				require.NoError(t, err)
				assert.Equal(t, student.ID, claims.Subject)
				assert.InDelta(t, now.Unix(), claims.OrigIssuedAt, 5)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_passwordReset(t *testing.T) {
	f := setup(t)
	student := testutil.CreateUser(t, f.usrRepo, "Hero", "hero", "hero@test.cd", pwd, []string{user.RoleStudent}, true)
	testutil.CreateUser(t, f.usrRepo, "N Dog", "ndog", "ndog@test.cd", pwd, []string{user.RoleStudent}, false)

	successData := marchallObj(t, echoapi.SuccessResponse{
		Success: "If the email address supplied is associated with an active account on this system, " +
			"an email will arrive in your inbox shortly with instructions to reset your password.",
	})

	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echoapi.PasswordResetRequest{Email: "this field is required"}),
		},
		{
			name: "invalid email", wantCode: http.StatusBadRequest, body: marchallObj(t, echoapi.PasswordResetRequest{Email: "lol"}),
			wantData: marchallObj(t, echoapi.PasswordResetRequest{Email: "email must be a valid email address"}),
		},
		{
			name: "unknown email", body: marchallObj(t, echoapi.PasswordResetRequest{Email: "lol@test.cd"}),
			wantData: successData, extra: false,
		},
		{
			name: "inactive user", body: marchallObj(t, echoapi.PasswordResetRequest{Email: "ndog@test.cd"}),
			wantData: successData, extra: false,
		},
		{
			name: "known email", body: marchallObj(t, echoapi.PasswordResetRequest{Email: " HERO@test.cd"}),
			wantData: successData, extra: true,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/users/password-reset"
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			f.mailSvc.Reset()

			req, rec := newRequest(tt.method, tt.path, tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			emailSent, ok := tt.extra.(bool)
			if !ok {
				return
			}
			sent := f.mailSvc.SentMessages()
			if !emailSent {
				assert.Empty(t, sent)
				return
			}
			require.Len(t, sent, 1)
			assert.Equal(t, student.Email, sent[0].To[0].Address)
			assert.Contains(t, sent[0].TextContent, student.Name)
			assert.Contains(t, sent[0].TextContent, f.conf.FrontendBaseURL+"/password-reset/"+user.EncodeUID(student)+"/")
		})
	}
}

func Test_userApi_confirmPasswordReset(t *testing.T) {
	f := setup(t)
	student := testutil.CreateUser(t, f.usrRepo, "Hero", "hero", "hero@test.cd", pwd, []string{user.RoleStudent}, true)
	validUID := user.EncodeUID(student)
	validToken := user.MakeResetToken(f.conf, student, time.Now())

	// generate an expired token
	dayLate := f.conf.PasswordResetTimeoutDelta + (24 * time.Hour)
	expiredToken := user.MakeResetToken(f.conf, student, time.Now().Add(-dayLate))

	reqMsg := "this field is required"
	newPwd := "LolC@t123"
	body := func(token, uid, pwd, confirm string) []byte {
		return marchallObj(t, user.ResetUserPassword{Token: token, UID: uid, Password: pwd, PasswordConfirm: confirm})
	}
	invalid := func(uid, token string) []byte {
		return marchallObj(t, user.ResetUserPassword{UID: uid, Token: token})
	}

	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, user.ResetUserPassword{Token: reqMsg, UID: reqMsg, Password: reqMsg, PasswordConfirm: reqMsg}),
		},
		{
			name: "invalid pwd: min len", wantCode: http.StatusBadRequest, body: body("lol", "lol", "lol", "lol"),
			wantData: marchallObj(t, user.ResetUserPassword{Password: "password must contain at least 8 characters"}),
		},
		{
			name: "invalid pwd: not all numeric", wantCode: http.StatusBadRequest, body: body("lol", "lol", "12345678", "12345678"),
			wantData: marchallObj(t, user.ResetUserPassword{Password: "password cannot be entirely numeric"}),
		},
		{
			name: "invalid pwd: too common", wantCode: http.StatusBadRequest, body: body("lol", "lol", "P@$$w0rd", "P@$$w0rd"),
			wantData: marchallObj(t, user.ResetUserPassword{Password: "password is too common"}),
		},
		{
			name: "PasswordConfirm must = Password", wantCode: http.StatusBadRequest, body: body("lol", "lol", newPwd, "lol"),
			wantData: marchallObj(t, user.ResetUserPassword{PasswordConfirm: "password_confirm must be equal to Password"}),
		},
		{name: "invalid uid", wantCode: http.StatusBadRequest, body: body("lol", "bG9s", newPwd, newPwd), wantData: invalid("invalid value", "")},
		{name: "invalid token", wantCode: http.StatusBadRequest, body: body("HE4TS-sigsig", validUID, newPwd, newPwd), wantData: invalid("", "invalid value")},
		{name: "expired token", wantCode: http.StatusBadRequest, body: body(expiredToken, validUID, newPwd, newPwd), wantData: invalid("", "invalid value")},
		{
			name: "valid token", body: body(validToken, validUID, newPwd, newPwd),
			wantData: marchallObj(t, echoapi.SuccessResponse{Success: "Password has been reset with the new password."}),
		},
		{name: "token used", wantCode: http.StatusBadRequest, body: body(validToken, validUID, newPwd, newPwd), wantData: invalid("", "invalid value")},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/users/password-reset-confirm"
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				usr, err := f.usrRepo.GetUser(context.Background(), user.GetFilter{ID: student.ID})
				require.NoError(t, err)
				assert.False(t, bytes.Equal(usr.PasswordHash, student.PasswordHash))
				assert.NoError(t, usr.CheckPassword(newPwd))
			}
		})
	}
}

func Test_userApi_exportImport(t *testing.T) {
	f := setup(t)
	admin := testutil.CreateUser(t, f.usrRepo, "Admin", "admin", "admin@test.cd", "", []string{user.RoleAdminPrincipal}, true)
	teacher := testutil.CreateUser(t, f.usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	adminToken := getToken(t, f.conf, admin)

	t.Run("export", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/export?role="+user.RoleTeacher, adminToken)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "users.xlsx")

		xl, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		rows, err := xl.GetRows(xl.GetSheetName(0))
		require.NoError(t, err)
		require.Len(t, rows, 2) // header + teacher
		assert.Contains(t, rows[1], teacher.Username)
	})

	t.Run("import: teacher not allowed", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/users/import", getToken(t, f.conf, teacher), "users.xlsx", []byte("lol"))
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("import: file required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/import", adminToken)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"file": "this field is required"}`, rec.Body.String())
	})

	t.Run("import: not a spreadsheet", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/users/import", adminToken, "users.xlsx", []byte("lol"))
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"file": "not a valid spreadsheet"}`, rec.Body.String())
	})

	t.Run("import", func(t *testing.T) {
		xl := excelize.NewFile()
		sheet := xl.GetSheetName(0)
		rows := [][]interface{}{
			{"name", "username", "email", "roles", "language", "password"},
			{"Kid One", "kid1", "kid1@test.cd", "student:", "fr", "Str0ng&Long"},
			{"Kid Two", "kid2", "", "student:, parent:", "", "Str0ng&Long"},
			{"Dup", "teacher", "", "student:", "", "Str0ng&Long"},
			{"Boss", "boss", "", "admin:owner", "", "Str0ng&Long"},
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, xl.SetSheetRow(sheet, cell, &row))
		}
		var buf bytes.Buffer
		require.NoError(t, xl.Write(&buf))

		req, rec := newUploadRequest(t, "/v1/users/import", adminToken, "users.xlsx", buf.Bytes())
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res user.ImportResult
		unmarshal(t, rec, &res)
		assert.Equal(t, 2, res.Created)
		require.Len(t, res.Errors, 2)
		assert.Equal(t, 4, res.Errors[0].Line)
		assert.Equal(t, user.ErrUsernameExists.Error(), res.Errors[0].Errors["username"])
		assert.Equal(t, 5, res.Errors[1].Line)
		assert.Equal(t, user.ErrNoPermsToSetRoles.Error(), res.Errors[1].Errors["roles"])

		kid, err := f.usrRepo.GetUser(context.Background(), user.GetFilter{Username: "kid2"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{user.RoleStudent, user.RoleParent}, kid.Roles)
		assert.True(t, strings.HasPrefix(kid.Name, "Kid"))
	})
}
