//go:build integration

package router_test

// End-to-end tests against real Postgres and Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"dealflow/internal/config"
	"dealflow/internal/dto"
	"dealflow/internal/infra"
	"dealflow/internal/router"
	"dealflow/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type e2eEnv struct {
	server *httptest.Server
	rdb    *redis.Client
	token  string
}

func (e *e2eEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

func setupE2E(t *testing.T) *e2eEnv {
	t.Helper()
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("dealflow_test"),
		tcPostgres.WithUsername("dealflow"),
		tcPostgres.WithPassword("dealflow"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })
	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })
	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		AllowedOrigins:     "*",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		CacheTTLSeconds:    300,
		JWTSecret:          "e2e-secret",
		JWTExpirationHours: 1,
		PresignTTLMinutes:  15,
		Domain:             "http://app.dealflow.test",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(ctx, cfg.RedisURL, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	engine := router.New(router.Deps{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		MailCB: infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp")),
		Mail:   worker.NewDispatcher(rdb),
	})
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	env := &e2eEnv{server: srv, rdb: rdb}

	resp := env.do(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{Email: "broker@e2e.test", Password: "first-password"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	env.token = env.login(t, "broker@e2e.test", "first-password")
	return env
}

func (e *e2eEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decodeJSON(t, resp, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E(t *testing.T) {
	env := setupE2E(t)
	ctx := context.Background()

	var deal dto.DealResponse
	resp := env.do(t, http.MethodPost, "/api/deals", map[string]any{
		"companyName": "Acme HVAC", "revenue": "2500000.00", "stage": "buyer_matching",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &deal)
	assert.Equal(t, "broker@e2e.test", deal.Owner)

	var party dto.BuyingPartyResponse
	resp = env.do(t, http.MethodPost, "/api/buying-parties", map[string]any{"name": "Northwind Capital"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &party)

	t.Run("duplicate match pair is rejected by the database", func(t *testing.T) {
		body := map[string]any{"dealId": deal.ID, "buyingPartyId": party.ID}
		resp := env.do(t, http.MethodPost, "/api/deal-buyer-matches", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodPost, "/api/deal-buyer-matches", body)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("deal reads go through redis and writes invalidate them", func(t *testing.T) {
		key := "cache:/api/deals/" + deal.ID
		resp := env.do(t, http.MethodGet, "/api/deals/"+deal.ID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
		n, err := env.rdb.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		resp = env.do(t, http.MethodPatch, "/api/deals/"+deal.ID+"/notes", map[string]string{"notes": "seller wants a quick close"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
		n, err = env.rdb.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("checklist round trip", func(t *testing.T) {
		var rows []dto.BuyerMatchRow
		decodeJSON(t, env.do(t, http.MethodGet, "/api/deals/"+deal.ID+"/buyers", nil), &rows)
		require.Len(t, rows, 1)

		resp := env.do(t, http.MethodPatch, "/api/matches/"+rows[0].Match.ID, map[string]string{"stages": "nda_sent,nda_signed"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		var nda []dto.BuyerMatchRow
		decodeJSON(t, env.do(t, http.MethodGet, "/api/deals/"+deal.ID+"/buyers-with-nda", nil), &nda)
		require.Len(t, nda, 1)
		assert.Equal(t, party.ID, nda[0].Party.ID)
	})

	t.Run("password reset through the email queue", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/auth/password-reset-request", map[string]string{"email": "broker@e2e.test"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		raw, err := env.rdb.RPop(ctx, worker.QueueEmail).Result()
		require.NoError(t, err)
		var job worker.Job
		require.NoError(t, json.Unmarshal([]byte(raw), &job))
		var payload worker.EmailJobPayload
		require.NoError(t, json.Unmarshal(job.Payload, &payload))
		assert.Equal(t, "broker@e2e.test", payload.ToEmail)

		m := regexp.MustCompile(`token=([0-9a-f]+)`).FindStringSubmatch(payload.Body)
		require.Len(t, m, 2)

		resp = env.do(t, http.MethodPost, "/api/auth/password-reset-confirm", map[string]string{
			"token": m[1], "new_password": "second-password",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		// single use
		resp = env.do(t, http.MethodPost, "/api/auth/password-reset-confirm", map[string]string{
			"token": m[1], "new_password": "third-password",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()

		env.login(t, "broker@e2e.test", "second-password")
	})

	t.Run("health reports db and redis", func(t *testing.T) {
		var body map[string]any
		resp := env.do(t, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeJSON(t, resp, &body)
		assert.Equal(t, "connected", body["db"])
		assert.Equal(t, "connected", body["redis"])
		assert.Equal(t, "closed", body["mail"])
	})
}
