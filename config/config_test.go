package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/rpupo63/devprojects-api/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Getter Tests
// =============================================================================

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":     "9000",
		"EMPTY":    "",
		"BAD_INT":  "ten",
		"ENABLED":  "true",
		"TIMEOUT":  "15",
		"ORIGINS":  " http://a.com, ,http://b.com ",
		"BAD_BOOL": "maybe",
	}

	assert.Equal(t, "9000", GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(c, "EMPTY", "8080"))
	assert.Equal(t, "x", GetString(nil, "PORT", "x"))

	assert.Equal(t, 9000, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(c, "MISSING", 1))

	assert.True(t, GetBool(c, "ENABLED", false))
	assert.False(t, GetBool(c, "BAD_BOOL", false))

	assert.Equal(t, 15*time.Second, GetSeconds(c, "TIMEOUT", 30))
	assert.Equal(t, 30*time.Second, GetSeconds(c, "MISSING", 30))

	assert.Equal(t, []string{"http://a.com", "http://b.com"}, GetStrings(c, "ORIGINS", nil))
	assert.Equal(t, []string{"*"}, GetStrings(c, "MISSING", []string{"*"}))
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DEVPROJECTS_TEST_PORT=7070\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("DEVPROJECTS_TEST_PORT") })

	c, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "7070", c["DEVPROJECTS_TEST_PORT"])
}

func TestLoad_ExistingEnvironmentWins(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DEVPROJECTS_TEST_NAME=fromfile\n"), 0644))
	t.Setenv("DEVPROJECTS_TEST_NAME", "fromenv")

	c, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", c["DEVPROJECTS_TEST_NAME"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

// =============================================================================
// Database Settings Tests
// =============================================================================

func TestDatabaseSettings_Defaults(t *testing.T) {
	s := NewDatabaseSettings(map[string]string{})

	assert.Equal(t, "host=localhost user=postgres password='' dbname=project_developers port=5432 sslmode=disable", s.DSN())
	assert.Equal(t, 10, s.MaxOpenConns)
	assert.Equal(t, 5, s.MaxIdleConns)
	assert.Equal(t, time.Second, s.SlowQueryThresh)
	assert.Empty(t, s.ReplicaURLs)
	assert.NoError(t, s.Validate())
}

func TestDatabaseSettings_DSNQuotesPassword(t *testing.T) {
	s := NewDatabaseSettings(map[string]string{"DB_PASSWORD": `it's secret`})

	assert.Contains(t, s.DSN(), `password='it\'s secret'`)
	assert.Contains(t, s.Redacted(), "password=xxxxx")
	assert.NotContains(t, s.Redacted(), "secret")
}

func TestDatabaseSettings_URL(t *testing.T) {
	s := NewDatabaseSettings(map[string]string{
		"DATABASE_URL":    "postgres://app:hunter2@db:5432/devs?sslmode=require",
		"DB_REPLICA_URLS": "postgres://ro@replica1/devs,postgres://ro@replica2/devs",
	})

	assert.Equal(t, "postgres://app:hunter2@db:5432/devs?sslmode=require", s.DSN())
	assert.NotContains(t, s.Redacted(), "hunter2")
	assert.Len(t, s.ReplicaURLs, 2)
	assert.NoError(t, s.Validate())
}

func TestDatabaseSettings_Validate(t *testing.T) {
	err := NewDatabaseSettings(map[string]string{"DB_PORT": "postgres"}).Validate()
	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))

	err = NewDatabaseSettings(map[string]string{"DB_SSLMODE": "sometimes"}).Validate()
	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))
}

// =============================================================================
// Parameter Store Tests
// =============================================================================

type stubParameterStore struct {
	values map[string]string
	err    error
	names  []string
}

func (s *stubParameterStore) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	name := aws.ToString(in.Name)
	s.names = append(s.names, name)
	if s.err != nil {
		return nil, s.err
	}
	value, ok := s.values[name]
	if !ok {
		return &ssm.GetParameterOutput{}, nil
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name, Value: aws.String(value)}}, nil
}

func TestResolvePassword(t *testing.T) {
	store := &stubParameterStore{values: map[string]string{"/devprojects/db": "s3cret"}}

	s := NewDatabaseSettings(map[string]string{"DB_PASSWORD_SSM_PARAM": "/devprojects/db"})
	require.NoError(t, s.ResolvePassword(context.Background(), store))
	assert.Equal(t, "s3cret", s.Password)
	assert.Equal(t, []string{"/devprojects/db"}, store.names)
}

func TestResolvePassword_NotConfigured(t *testing.T) {
	store := &stubParameterStore{}

	s := NewDatabaseSettings(map[string]string{"DB_PASSWORD": "plain"})
	require.NoError(t, s.ResolvePassword(context.Background(), store))
	assert.Equal(t, "plain", s.Password)
	assert.Empty(t, store.names)
}

func TestGetSecret_Errors(t *testing.T) {
	_, err := GetSecret(context.Background(), &stubParameterStore{err: errors.New("AccessDenied")}, "/x")
	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))

	_, err = GetSecret(context.Background(), &stubParameterStore{}, "/missing")
	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))
}
