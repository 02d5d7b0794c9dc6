//go:build integration

package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/internal/domain"
	"github.com/finledger/finledger/internal/integrationtest"
	"github.com/finledger/finledger/internal/integrationtest/helpers"
	"github.com/finledger/finledger/internal/userrepo"
	"github.com/finledger/finledger/pkg/passpkg"
	"github.com/finledger/finledger/pkg/randompkg"
	"github.com/finledger/finledger/pkg/web"
)

func seedUserWithPassword(t *testing.T, password string) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(password)
	require.NoError(t, err)

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
	}

	user, err := userrepo.NewRepoPGS(server.DB).Create(context.Background(), arg)
	require.NoError(t, err)

	return user
}

func decodeUserResponse(t *testing.T, w *httptest.ResponseRecorder) (web.Response, domain.UserWithoutPassword) {
	t.Helper()

	data := &struct {
		User domain.UserWithoutPassword `json:"user,omitempty"`
	}{}
	resp := web.Response{Data: data}

	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	return resp, data.User
}

func requireSessionTokens(t *testing.T, resp web.Response) {
	t.Helper()

	if resp.AccessToken == "" {
		t.Error(`resp.AccessToken="", want not empty`)
	}

	if resp.AccessTokenExpiresAt == "" {
		t.Error(`resp.AccessTokenExpiresAt="", want not empty`)
	}

	if resp.RefreshToken == "" {
		t.Error(`resp.RefreshToken="", want not empty`)
	}

	if resp.RefreshTokenExpiresAt == "" {
		t.Error(`resp.RefreshTokenExpiresAt="", want not empty`)
	}
}

func TestCreateUserAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	seededUser := helpers.SeedUser(t, server.DB)

	var (
		username = "firstuser"
		password = "qwerty"
		fullname = "Foo Boo"
		email    = "foo@boo.email"
	)

	testCases := []struct {
		name           string
		requestBody    gin.H
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"username": username,
				"password": password,
				"fullname": fullname,
				"email":    email,
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidUsername",
			requestBody: gin.H{
				"username": "user&%",
				"password": password,
				"fullname": fullname,
				"email":    email,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Username must contain only letters and digits",
		},
		{
			name: "ShortPassword",
			requestBody: gin.H{
				"username": username,
				"password": "short",
				"fullname": fullname,
				"email":    email,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password must be greater than or equal to 6",
		},
		{
			name: "MissingFullName",
			requestBody: gin.H{
				"username": username,
				"password": password,
				"fullname": "",
				"email":    email,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "FullName is required",
		},
		{
			name: "InvalidEmail",
			requestBody: gin.H{
				"username": username,
				"password": password,
				"fullname": fullname,
				"email":    "user%email.com",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Email must be a valid email address",
		},
		{
			name: "UniqueViolationUsername",
			requestBody: gin.H{
				"username": seededUser.Username,
				"password": password,
				"fullname": seededUser.FullName,
				"email":    "unique@violation.email",
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUsernameAlreadyExists.Error(),
		},
		{
			name: "UniqueViolationEmail",
			requestBody: gin.H{
				"username": username + "2",
				"password": password,
				"fullname": fullname,
				"email":    seededUser.Email,
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrEmailAlreadyExists.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			require.NoError(t, err)

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if got := w.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			resp, gotUser := decodeUserResponse(t, w)

			if tc.wantStatusCode != http.StatusOK {
				if resp.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, resp.Error, tc.wantError)
				}

				return
			}

			requireSessionTokens(t, resp)

			wantUser := domain.UserWithoutPassword{
				Username: username,
				FullName: fullname,
				Email:    email,
			}

			ignoreTimestamps := cmpopts.IgnoreFields(domain.UserWithoutPassword{}, "CreatedAt", "PasswordChangedAt")
			if diff := cmp.Diff(wantUser, gotUser, ignoreTimestamps); diff != "" {
				t.Errorf("resp.Data mismatch (-want +got):\n%s", diff)
			}

			delta := cmpopts.EquateApproxTime(time.Minute)
			if !cmp.Equal(gotUser.CreatedAt, time.Now(), delta) {
				t.Errorf("gotUser.CreatedAt=%v, want %v +- minute", gotUser.CreatedAt, time.Now())
			}
		})
	}
}

func TestLoginAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	password := "correcthorse"
	user := seedUserWithPassword(t, password)

	testCases := []struct {
		name           string
		requestBody    gin.H
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"username": user.Username,
				"password": password,
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "WrongPassword",
			requestBody: gin.H{
				"username": user.Username,
				"password": "wrongpassword",
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrWrongPassword.Error(),
		},
		{
			name: "UserNotFound",
			requestBody: gin.H{
				"username": "nosuchuser",
				"password": password,
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrUserNotFound.Error(),
		},
		{
			name: "MissingPassword",
			requestBody: gin.H{
				"username": user.Username,
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password is required",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
			require.NoError(t, err)

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if got := w.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			resp, gotUser := decodeUserResponse(t, w)

			if tc.wantStatusCode != http.StatusOK {
				if resp.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, resp.Error, tc.wantError)
				}

				return
			}

			requireSessionTokens(t, resp)

			if gotUser.Username != user.Username {
				t.Errorf("gotUser.Username=%q, want %q", gotUser.Username, user.Username)
			}
		})
	}
}
