package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/application/lending"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/file"
	"github.com/xiebiao/library/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Storage.FilePath = filepath.Join(t.TempDir(), "library_data.json")
	cfg.Metrics.Enabled = false
	return cfg
}

func TestNew_SeedsAndSavesOnShutdown(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	app, err := New(ctx, cfg, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 3, app.Catalog.BookCount(), "首次启动写入示例数据")

	_, err = app.Lending.Issue.Execute(ctx, lending.IssueBookRequest{MemberID: "M001", ISBN: "9780132350884"})
	require.NoError(t, err)
	require.NoError(t, app.Shutdown(ctx))

	snap, err := file.NewStore(cfg.Storage.FilePath).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"9780132350884"}, snap.Members[0].BorrowedISBNs)

	// 再次启动恢复借阅状态
	again, err := New(ctx, cfg, logger.Discard())
	require.NoError(t, err)
	defer again.Close(ctx)
	b, ok := again.Catalog.FindByISBN("9780132350884").Get()
	require.True(t, ok)
	assert.False(t, b.Available)
}

func TestNew_CustomFinePolicy(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Lending.AllowedDays = 7
	cfg.Lending.DailyFine = 1

	app, err := New(ctx, cfg, logger.Discard())
	require.NoError(t, err)
	defer app.Close(ctx)

	_, err = app.Lending.Issue.Execute(ctx, lending.IssueBookRequest{MemberID: "M002", ISBN: "9780134685991"})
	require.NoError(t, err)
	resp, err := app.Lending.Return.Execute(ctx, lending.ReturnBookRequest{MemberID: "M002", ISBN: "9780134685991", DaysKept: 10})
	require.NoError(t, err)
	assert.Equal(t, 3.0, resp.Fine)
}

func TestApp_Router(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, testConfig(t), logger.Discard())
	require.NoError(t, err)
	defer app.Close(ctx)

	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/books?keyword=java", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Effective Java")
}

func TestApp_Console(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	app, err := New(ctx, cfg, logger.Discard())
	require.NoError(t, err)
	defer app.Close(ctx)

	var out strings.Builder
	require.NoError(t, app.Console(strings.NewReader("2\n2\n5\n3\n"), &out).Run(ctx))
	assert.Contains(t, out.String(), "Title: Clean Code | Author: Robert C. Martin | ISBN: 9780132350884 | Available: true")
	assert.FileExists(t, cfg.Storage.FilePath)
}

func TestNew_InvalidAdminHash(t *testing.T) {
	cfg := testConfig(t)
	cfg.Admin.PasswordHash = "not-a-hash"
	_, err := New(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)
}
