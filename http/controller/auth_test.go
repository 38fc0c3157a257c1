package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvu/cinesync/config"
	"github.com/tranvu/cinesync/http/controller/dto"
	"github.com/tranvu/cinesync/infra"
	"github.com/tranvu/cinesync/utils"
)

func newLoginRouter(adminSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{EnvConfig: &config.EnvConfig{}}
	cfg.EnvConfig.Auth.AdminSecret = adminSecret
	cfg.EnvConfig.JWT.SecretKey = "login-test-secret"
	cfg.EnvConfig.JWT.ExpireSeconds = 3600

	ctrl := NewController(cfg, &infra.Infra{Logger: infra.NewStdoutLogger()}, nil, nil)
	router := gin.New()
	router.POST("/login", ctrl.Login)
	return router
}

func postLogin(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_CorrectPasswordIssuesAdminToken(t *testing.T) {
	router := newLoginRouter("hunter2")

	w := postLogin(router, `{"password": "hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, 3600, resp.ExpiresIn)

	claims, err := utils.VerifyToken("login-test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		body       string
		wantStatus int
	}{
		{"wrong password", "hunter2", `{"password": "guess"}`, http.StatusUnauthorized},
		{"missing password", "hunter2", `{}`, http.StatusBadRequest},
		{"malformed body", "hunter2", `{"password":`, http.StatusBadRequest},
		{"unconfigured secret never matches", "", `{"password": ""}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newLoginRouter(tt.secret)
			w := postLogin(router, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
