package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apihttp "github.com/artem13815/taskverse/api/http"
	"github.com/artem13815/taskverse/api/http/handlers"
	"github.com/artem13815/taskverse/pkg/analytics"
	"github.com/artem13815/taskverse/pkg/auth"
	"github.com/artem13815/taskverse/pkg/health"
	"github.com/artem13815/taskverse/pkg/repository/memory"
	"github.com/artem13815/taskverse/pkg/security/jwt"
	"github.com/artem13815/taskverse/pkg/security/password"
	"github.com/artem13815/taskverse/pkg/task"
	"github.com/artem13815/taskverse/pkg/users"
)

var errDown = errors.New("dial tcp 10.0.0.7:5432: connection refused")

type downTasks struct{ task.Repository }

func (downTasks) List(context.Context, task.Filter, task.Page) (task.ListResult, error) {
	return task.ListResult{}, errDown
}

type downUsers struct{ auth.UserRepository }

func (downUsers) GetByID(context.Context, uuid.UUID) (auth.User, error) {
	return auth.User{}, errDown
}

func serve(t *testing.T, app *fiber.App, path, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestStorageFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	store := memory.NewStore()
	hasher := password.NewHasher(bcrypt.MinCost)
	tokens := jwt.NewService("test-secret", "taskverse", ttl)
	authUC := auth.NewAuthService(store.Users(), hasher, tokens)
	reg, err := authUC.Register(ctx, "Alice", "alice@example.com", "alice-pass")
	require.NoError(t, err)

	build := func(usersRepo auth.UserRepository) *fiber.App {
		resolver := auth.NewResolver(usersRepo, tokens)
		app := apihttp.NewApp(log, "*", false)
		apihttp.Register(app,
			handlers.NewAuthHandler(authUC),
			handlers.NewHealthHandler(health.NewService(store)),
			handlers.NewTaskHandler(task.NewService(downTasks{store.Tasks()}, resolver)),
			handlers.NewAnalyticsHandler(analytics.NewService(store.Analytics())),
			handlers.NewUsersHandler(users.NewService(store.Users())),
			jwt.NewAuthMiddleware(resolver, log),
		)
		return app
	}

	code, body := serve(t, build(store.Users()), "/api/v1/tasks", reg.Token)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body["message"])
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), `"path":"/api/v1/tasks"`)

	buf.Reset()
	code, body = serve(t, build(downUsers{store.Users()}), "/api/v1/auth/me", reg.Token)
	assert.Equal(t, http.StatusInternalServerError, code, "an outage is not an authentication failure")
	assert.NotContains(t, body["message"], "10.0.0.7")
	assert.Contains(t, buf.String(), "resolve identity")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("connection refused")), "logged once")
}
