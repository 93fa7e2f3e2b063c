package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/dto/respond"
	"chitchat_server/pkg/errorx"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := InitTrans("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubUserService returns canned values so handler tests exercise only the
// binding and envelope logic.
type stubUserService struct {
	register func(req request.RegisterRequest) (respond.LoginRespond, error)
	login    func(req request.LoginRequest) (respond.LoginRespond, error)
}

func (s *stubUserService) Register(req request.RegisterRequest) (respond.LoginRespond, error) {
	return s.register(req)
}

func (s *stubUserService) Login(req request.LoginRequest) (respond.LoginRespond, error) {
	return s.login(req)
}

func (s *stubUserService) Refresh(string) (respond.LoginRespond, error) {
	return respond.LoginRespond{}, nil
}

func (s *stubUserService) GetUserInfo(string) (respond.UserRespond, error) {
	return respond.UserRespond{}, nil
}

func (s *stubUserService) UpdateProfile(string, request.UpdateProfileRequest) (respond.UserRespond, error) {
	return respond.UserRespond{}, nil
}

func (s *stubUserService) FindByEmail(string) (respond.UserRespond, error) {
	return respond.UserRespond{}, nil
}

func (s *stubUserService) OnlineUsers() ([]string, error) {
	return nil, nil
}

func postJSON(t *testing.T, h gin.HandlerFunc, path, body string) (*httptest.ResponseRecorder, ResponseData) {
	t.Helper()
	engine := gin.New()
	engine.POST(path, h)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var rsp ResponseData
	if err := json.Unmarshal(w.Body.Bytes(), &rsp); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	return w, rsp
}

func TestRegisterEnvelope(t *testing.T) {
	svc := &stubUserService{
		register: func(req request.RegisterRequest) (respond.LoginRespond, error) {
			return respond.LoginRespond{
				User:        respond.UserRespond{Uuid: "u-1", Username: req.Username},
				AccessToken: "access", RefreshToken: "refresh",
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	w, rsp := postJSON(t, h.Register, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"password123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if rsp.Code != errorx.CodeSuccess {
		t.Fatalf("expected success code, got %+v", rsp)
	}
	data, ok := rsp.Data.(map[string]any)
	if !ok || data["accessToken"] != "access" {
		t.Fatalf("unexpected data: %+v", rsp.Data)
	}
}

func TestRegisterValidationTranslated(t *testing.T) {
	h := NewAuthHandler(&stubUserService{
		register: func(request.RegisterRequest) (respond.LoginRespond, error) {
			t.Fatal("service must not be called on invalid input")
			return respond.LoginRespond{}, nil
		},
	})

	_, rsp := postJSON(t, h.Register, "/auth/register",
		`{"username":"alice","password":"short"}`)
	if rsp.Code != errorx.ErrInvalidParam.Code {
		t.Fatalf("expected invalid param, got %+v", rsp)
	}
	// Errors are keyed by json field name, struct prefix stripped.
	fields, ok := rsp.Msg.(map[string]any)
	if !ok {
		t.Fatalf("expected field map, got %+v", rsp.Msg)
	}
	if _, ok := fields["email"]; !ok {
		t.Fatalf("missing email error: %+v", fields)
	}
	if _, ok := fields["password"]; !ok {
		t.Fatalf("missing password error: %+v", fields)
	}
}

func TestLoginBusinessError(t *testing.T) {
	h := NewAuthHandler(&stubUserService{
		login: func(request.LoginRequest) (respond.LoginRespond, error) {
			return respond.LoginRespond{}, errorx.New(errorx.CodeInvalidPassword, "invalid username or password")
		},
	})

	w, rsp := postJSON(t, h.Login, "/auth/login",
		`{"username":"alice","password":"wrong-password"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("business errors ride a 200, got %d", w.Code)
	}
	if rsp.Code != errorx.CodeInvalidPassword {
		t.Fatalf("expected invalid password code, got %+v", rsp)
	}
}
