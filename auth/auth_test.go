package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

func init() {
	gin.SetMode(gin.TestMode)
	JwtSecret = []byte("test-secret")
	TokenIssuer = "food-tracker-test"
}

func TestGenerateAndValidateToken(t *testing.T) {
	tokenString, err := GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	token, err := ValidateJWT(tokenString)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		t.Fatal("Expected valid MapClaims token")
	}
	if claims["userName"] != "alice" {
		t.Errorf("Expected userName claim 'alice', got %v", claims["userName"])
	}
	if claims["iss"] != "food-tracker-test" {
		t.Errorf("Expected issuer claim 'food-tracker-test', got %v", claims["iss"])
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userName": "mallory"})
	forged, err := other.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("signing fixture token failed: %v", err)
	}
	if _, err := ValidateJWT(forged); err == nil {
		t.Error("Expected token signed with a different secret to be rejected")
	}
}

func newRouter() *gin.Engine {
	r := gin.New()
	return r
}

func doRequest(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	r.GET("/ping", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"user": c.GetString(UserNameKey)})
	})

	t.Run("MissingHeader", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/ping", "")
		if w.Code != 401 {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != 401 {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/ping", "not.a.token")
		if w.Code != 401 {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := GenerateToken("bob")
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}
		w := doRequest(r, http.MethodGet, "/ping", token)
		if w.Code != 200 {
			t.Fatalf("Expected 200, got %d (%s)", w.Code, w.Body.String())
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter()
	r.DELETE("/foods", AuthMiddleware(), RequireAdmin("admin"), func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok"})
	})

	userToken, _ := GenerateToken("carol")
	adminToken, _ := GenerateToken("admin")

	if w := doRequest(r, http.MethodDelete, "/foods", userToken); w.Code != 403 {
		t.Errorf("Expected 403 for ordinary user, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/foods", adminToken); w.Code != 200 {
		t.Errorf("Expected 200 for admin, got %d", w.Code)
	}
}

func TestScopeUser(t *testing.T) {
	r := newRouter()
	r.GET("/report/:user", AuthMiddleware(), ScopeUser("admin"), func(c *gin.Context) {
		c.JSON(200, gin.H{"user": c.GetString(EffectiveUserKey)})
	})
	r.GET("/list", AuthMiddleware(), ScopeUser("admin"), func(c *gin.Context) {
		c.JSON(200, gin.H{"user": c.GetString(EffectiveUserKey)})
	})

	userToken, _ := GenerateToken("carol")
	adminToken, _ := GenerateToken("admin")

	t.Run("OrdinaryUserIsSubstituted", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/report/alice", userToken)
		if w.Code != 200 {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if want := `{"user":"carol"}`; w.Body.String() != want {
			t.Errorf("Expected body %s, got %s", want, w.Body.String())
		}
	})

	t.Run("AdminKeepsRequestedUser", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/report/alice", adminToken)
		if want := `{"user":"alice"}`; w.Body.String() != want {
			t.Errorf("Expected body %s, got %s", want, w.Body.String())
		}
	})

	t.Run("AdminEmptyFilterMeansAllUsers", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/list", adminToken)
		if want := `{"user":""}`; w.Body.String() != want {
			t.Errorf("Expected body %s, got %s", want, w.Body.String())
		}
	})

	t.Run("OrdinaryUserQueryFilterIsSubstituted", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/list?user=alice", userToken)
		if want := `{"user":"carol"}`; w.Body.String() != want {
			t.Errorf("Expected body %s, got %s", want, w.Body.String())
		}
	})
}

func TestIssueToken(t *testing.T) {
	r := newRouter()
	r.POST("/auth/token", IssueToken())

	t.Run("MissingUserName", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != 400 {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
