package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go-gin-event-registration/internal/auth"
	"go-gin-event-registration/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`
)

const (
	ownerID    = 7
	strangerID = 99
	eventUUID  = "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11"
)

var testTokens = auth.NewJWTManager("test-secret", time.Hour)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func requireAuth() gin.HandlerFunc {
	return middleware.Auth(testTokens)
}

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if raw, ok := data.(string); ok {
		return bytes.NewBufferString(raw)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withToken 為 request 加上指定使用者的 token
func withToken(t *testing.T, req *http.Request, userID int) *http.Request {
	t.Helper()
	token, err := testTokens.Issue(userID)
	require.NoError(t, err)
	req.Header.Set(middleware.TokenHeader, token)
	return req
}

type validationResponse struct {
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func decodeValidation(t *testing.T, body []byte) map[string]string {
	t.Helper()
	var resp validationResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	out := make(map[string]string, len(resp.Errors))
	for _, e := range resp.Errors {
		out[e.Field] = e.Message
	}
	return out
}
