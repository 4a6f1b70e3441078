package integration

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/bootstrap"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/logger"
)

// 集成测试辅助工具
// 每个测试启动一个进程内的完整服务（file驱动 + 内存会话），通过真实HTTP客户端访问

const (
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
	// AdminPassword 测试服务的管理员口令
	AdminPassword = "admin123"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response 统一响应结构
type Response struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data"`
}

// TokenData 登录响应数据
type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// BookData 图书响应数据
type BookData struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Available bool   `json:"available"`
}

// BookListData 图书列表响应数据
type BookListData struct {
	List  []BookData `json:"list"`
	Total int        `json:"total"`
}

// MemberData 会员响应数据
type MemberData struct {
	MemberID      string   `json:"member_id"`
	Name          string   `json:"name"`
	BorrowedISBNs []string `json:"borrowed_isbns"`
}

// ReturnData 还书响应数据
type ReturnData struct {
	MemberID string  `json:"member_id"`
	ISBN     string  `json:"isbn"`
	DaysKept int     `json:"days_kept"`
	Fine     float64 `json:"fine"`
}

// Server 进程内测试服务
type Server struct {
	BaseURL  string
	App      *bootstrap.App
	DataFile string
}

// StartServer 启动测试服务，测试结束时自动关闭（不保存）
func StartServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Storage.FilePath = filepath.Join(t.TempDir(), "library_data.json")
	cfg.Metrics.Enabled = false
	cfg.Admin.Password = AdminPassword

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, logger.Discard())
	require.NoError(t, err, "启动服务失败")

	srv := httptest.NewServer(app.Router())
	t.Cleanup(func() {
		srv.Close()
		app.Close(ctx)
	})

	return &Server{
		BaseURL:  srv.URL + "/api/v1",
		App:      app,
		DataFile: cfg.Storage.FilePath,
	}
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	jsonData, err := json.Marshal(data)
	require.NoError(t, err, "JSON序列化失败")
	return doJSON(t, http.MethodPost, url, bytes.NewReader(jsonData), token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodGet, url, nil, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodDelete, url, nil, token)
}

func doJSON(t *testing.T, method, url string, body io.Reader, token string) *Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	// 业务错误也返回200，错误码在响应体里
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	return &result
}

// Decode 解析响应data字段
func Decode[T any](t *testing.T, resp *Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out), "解析data失败: %s", string(resp.Data))
	return out
}

// LoginAdmin 管理员登录并返回Token
func LoginAdmin(t *testing.T, s *Server) TokenData {
	t.Helper()
	resp := PostJSON(t, s.BaseURL+"/admin/login", map[string]string{"password": AdminPassword}, "")
	require.Equal(t, 0, resp.Code, "登录失败: %s", resp.Message)
	return Decode[TokenData](t, resp)
}
