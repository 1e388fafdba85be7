//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/pius706975/poolseek-be/config"
	"github.com/pius706975/poolseek-be/internal/server"
)

const (
	serverPort = 18080
	deviceID   = "e2e-device"
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	setTestEnv()

	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate repo root: %v\n", err)
		os.Exit(1)
	}

	if err := dockerCompose(ctx, root, "up", "-d"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start docker compose: %v\n", err)
		os.Exit(1)
	}

	if err := waitForPostgres(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "postgres not ready: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	if err := runMigrations(root); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	srv, err := startServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown()
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown()
	_ = dockerCompose(context.Background(), root, "down")
	os.Exit(code)
}

func TestAuthLifecycle(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	email := fmt.Sprintf("user_%d@example.com", time.Now().UnixNano())
	password := "Sup3rSecret!"

	userID, err := signUp(t, baseURL, email, password)
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if userID == "" {
		t.Fatalf("expected user ID in sign-up response")
	}

	otpCode, err := fetchOTPCode(email)
	if err != nil {
		t.Fatalf("read otp from database: %v", err)
	}
	if len(otpCode) != 6 {
		t.Fatalf("unexpected otp code %q", otpCode)
	}

	if err := verifyOTP(t, baseURL, email, otpCode); err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	accessToken, refreshToken, err := signIn(t, baseURL, email, password)
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	profileEmail, err := getProfile(t, baseURL, accessToken)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profileEmail != email {
		t.Fatalf("unexpected profile email %q", profileEmail)
	}

	if err := expectMissingHeaderNotFound(t, baseURL); err != nil {
		t.Fatalf("missing header behavior: %v", err)
	}

	newAccessToken, err := refreshAccessToken(t, baseURL, userID, refreshToken)
	if err != nil {
		t.Fatalf("refresh token: %v", err)
	}
	if newAccessToken == "" {
		t.Fatalf("expected refreshed access token")
	}

	if err := signOut(t, baseURL, accessToken, http.StatusOK); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if err := signOut(t, baseURL, accessToken, http.StatusNotFound); err != nil {
		t.Fatalf("second sign out: %v", err)
	}
}

type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func postJSON(baseURL, path, bearer string, payload any, wantStatus int) (envelope, error) {
	return doJSON(http.MethodPost, baseURL, path, bearer, payload, wantStatus)
}

func putJSON(baseURL, path, bearer string, payload any, wantStatus int) (envelope, error) {
	return doJSON(http.MethodPut, baseURL, path, bearer, payload, wantStatus)
}

func doJSON(method, baseURL, path, bearer string, payload any, wantStatus int) (envelope, error) {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return envelope{}, err
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return envelope{}, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, err
	}
	if resp.StatusCode != wantStatus {
		return envelope{}, fmt.Errorf("%s %s status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed envelope
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return envelope{}, err
	}
	return parsed, nil
}

func signUp(t *testing.T, baseURL, email, password string) (string, error) {
	t.Helper()

	resp, err := postJSON(baseURL, "/api/auth/signup", "", map[string]string{
		"email":      email,
		"first_name": "E2E",
		"last_name":  "Tester",
		"password":   password,
	}, http.StatusCreated)
	if err != nil {
		return "", err
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		return "", err
	}
	return user.ID, nil
}

func verifyOTP(t *testing.T, baseURL, email, otpCode string) error {
	t.Helper()

	resp, err := putJSON(baseURL, "/api/user/verify-otp", "", map[string]string{
		"email":    email,
		"otp_code": otpCode,
	}, http.StatusOK)
	if err != nil {
		return err
	}

	var user struct {
		IsVerified bool `json:"is_verified"`
	}
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		return err
	}
	if !user.IsVerified {
		return fmt.Errorf("expected user to be verified")
	}
	return nil
}

func signIn(t *testing.T, baseURL, email, password string) (string, string, error) {
	t.Helper()

	resp, err := postJSON(baseURL, "/api/auth/signin", "", map[string]string{
		"email":     email,
		"password":  password,
		"device_id": deviceID,
	}, http.StatusOK)
	if err != nil {
		return "", "", err
	}

	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", "", err
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		return "", "", fmt.Errorf("missing tokens in sign-in response")
	}
	return result.AccessToken, result.RefreshToken, nil
}

func getProfile(t *testing.T, baseURL, accessToken string) (string, error) {
	t.Helper()

	resp, err := doJSON(http.MethodGet, baseURL, "/api/user/profile", accessToken, nil, http.StatusOK)
	if err != nil {
		return "", err
	}

	var user struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		return "", err
	}
	return user.Email, nil
}

func expectMissingHeaderNotFound(t *testing.T, baseURL string) error {
	t.Helper()

	resp, err := doJSON(http.MethodGet, baseURL, "/api/user/profile", "", nil, http.StatusNotFound)
	if err != nil {
		return err
	}
	if resp.Message != "User not found" {
		return fmt.Errorf("unexpected body message %q", resp.Message)
	}
	return nil
}

func refreshAccessToken(t *testing.T, baseURL, userID, refreshToken string) (string, error) {
	t.Helper()

	resp, err := postJSON(baseURL, "/api/auth/refresh-token", "", map[string]string{
		"user_id":       userID,
		"device_id":     deviceID,
		"refresh_token": refreshToken,
	}, http.StatusOK)
	if err != nil {
		return "", err
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", err
	}
	return result.AccessToken, nil
}

func signOut(t *testing.T, baseURL, accessToken string, wantStatus int) error {
	t.Helper()

	_, err := postJSON(baseURL, "/api/auth/signout", accessToken, map[string]string{
		"device_id": deviceID,
	}, wantStatus)
	return err
}

// fetchOTPCode reads the pending OTP straight from the database; no mail
// server runs in the e2e environment.
func fetchOTPCode(email string) (string, error) {
	cfg := config.LoadConfig()
	db, err := sql.Open("postgres", buildPostgresURL(cfg))
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var otpCode string
	err = db.QueryRowContext(ctx, "SELECT otp_code FROM users WHERE email = $1", email).Scan(&otpCode)
	return otpCode, err
}

func waitForPostgres(ctx context.Context) error {
	cfg := config.LoadConfig()
	db, err := sql.Open("postgres", buildPostgresURL(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres ping timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func runMigrations(root string) error {
	cfg := config.LoadConfig()
	migrationsPath := filepath.Join(root, "internal", "db", "migrations")
	migrationsURL := "file://" + migrationsPath

	migrator, err := migrate.New(migrationsURL, buildPostgresURL(cfg))
	if err != nil {
		return err
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func buildPostgresURL(cfg config.Config) string {
	sslmode := "disable"
	if cfg.Database.UseSSL {
		sslmode = "require"
	}
	host := fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port)
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		host,
		cfg.Database.DBName,
		sslmode,
	)
}

func setTestEnv() {
	_ = os.Setenv("JWT_ACCESS_TOKEN_SECRET", "e2e-access-secret")
	_ = os.Setenv("JWT_REFRESH_TOKEN_SECRET", "e2e-refresh-secret")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("DB_HOST", "localhost")
	_ = os.Setenv("DB_PORT", "5432")
	_ = os.Setenv("DB_USER", "poolseek")
	_ = os.Setenv("DB_PASSWORD", "poolseek")
	_ = os.Setenv("DB_NAME", "poolseek_db")
	_ = os.Setenv("DB_USE_SSL", "false")
}

func startServer() (*server.Server, error) {
	cfg := config.LoadConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}

func dockerCompose(ctx context.Context, root string, args ...string) error {
	composeFile := filepath.Join(root, "development", "docker-compose.yml")
	baseArgs := append([]string{"compose", "-f", composeFile}, args...)
	cmd := exec.CommandContext(ctx, "docker", baseArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
