package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careconnect.backend/internal/config"
	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
)

type fakeCreator struct {
	err  error
	got  []string
	user *entities.User
}

func (f *fakeCreator) CreateAdmin(_ context.Context, email, name, password string) (*entities.User, error) {
	f.got = []string{email, name, password}
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func fakeDeps(creator adminCreator, out io.Writer) createAdminDeps {
	return createAdminDeps{
		loadEnv: func() error { return nil },
		loadCfg: func() *config.Config { return &config.Config{} },
		prepare: func(*config.Config) (adminCreator, io.Closer, error) { return creator, nil, nil },
		getenv:  func(string) string { return "" },
		out:     out,
	}
}

func TestRunCreateAdmin_Branches(t *testing.T) {
	t.Run("flag parse error", func(t *testing.T) {
		err := runCreateAdmin([]string{"-unknown"}, fakeDeps(&fakeCreator{}, io.Discard))
		require.Error(t, err)
	})

	t.Run("email required", func(t *testing.T) {
		err := runCreateAdmin([]string{"-password", "supersecret"}, fakeDeps(&fakeCreator{}, io.Discard))
		require.EqualError(t, err, "--email is required")
	})

	t.Run("short password", func(t *testing.T) {
		err := runCreateAdmin([]string{"-email", "root@example.com", "-password", "short"}, fakeDeps(&fakeCreator{}, io.Discard))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8")
	})

	t.Run("password from env", func(t *testing.T) {
		creator := &fakeCreator{user: &entities.User{ID: uuid.New(), Email: "root@example.com", Name: "root"}}
		deps := fakeDeps(creator, io.Discard)
		deps.getenv = func(key string) string {
			if key == "ADMIN_PASSWORD" {
				return "from-the-env"
			}
			return ""
		}
		require.NoError(t, runCreateAdmin([]string{"-email", "root@example.com"}, deps))
		assert.Equal(t, []string{"root@example.com", "", "from-the-env"}, creator.got)
	})

	t.Run("prepare error", func(t *testing.T) {
		deps := fakeDeps(nil, io.Discard)
		deps.prepare = func(*config.Config) (adminCreator, io.Closer, error) { return nil, nil, errors.New("db failed") }
		err := runCreateAdmin([]string{"-email", "root@example.com", "-password", "supersecret"}, deps)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db failed")
	})

	t.Run("duplicate email", func(t *testing.T) {
		creator := &fakeCreator{err: domainerrors.ErrAlreadyExists}
		err := runCreateAdmin([]string{"-email", "root@example.com", "-password", "supersecret"}, fakeDeps(creator, io.Discard))
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	})

	t.Run("success output", func(t *testing.T) {
		var out bytes.Buffer
		id := uuid.New()
		creator := &fakeCreator{user: &entities.User{ID: id, Email: "root@example.com", Name: "Root"}}
		err := runCreateAdmin([]string{"-email", " root@example.com ", "-name", "Root", "-password", "supersecret"}, fakeDeps(creator, &out))
		require.NoError(t, err)
		assert.Equal(t, "root@example.com", creator.got[0])
		assert.Contains(t, out.String(), "Created ADMIN user")
		assert.Contains(t, out.String(), "user_id="+id.String())
	})
}

func TestRunCreateAdmin_SQLite(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			SQLitePath:  "file:create_admin?mode=memory&cache=shared",
			AutoMigrate: true,
		},
		JWT: config.JWTConfig{Secret: "secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour},
	}
	deps := createAdminDeps{
		loadEnv: func() error { return nil },
		loadCfg: func() *config.Config { return cfg },
		getenv:  func(string) string { return "" },
	}

	// keep one connection open so the shared in-memory database survives between runs
	creator, closer, err := prepareAdminCreator(cfg)
	require.NoError(t, err)
	require.NotNil(t, creator)
	t.Cleanup(func() { closer.Close() })

	var out bytes.Buffer
	deps.out = &out
	require.NoError(t, runCreateAdmin([]string{"-email", "Admin@Example.com", "-password", "supersecret"}, deps))
	assert.Contains(t, out.String(), "email=admin@example.com")

	err = runCreateAdmin([]string{"-email", "admin@example.com", "-password", "supersecret"}, deps)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestMain_ExitsWhenEmailMissing(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_CREATE_ADMIN") == "1" {
		os.Args = []string{"create-admin"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMain_ExitsWhenEmailMissing")
	cmd.Env = append(os.Environ(), "GO_WANT_HELPER_CREATE_ADMIN=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	require.Error(t, err)
	assert.True(t, strings.Contains(stderr.String(), "--email is required"), stderr.String())
}
