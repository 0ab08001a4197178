package awshelper_test

import (
	"context"
	"io"
	"testing"

	"github.com/devopsgroupeu/StateCraft/internal/awshelper"
	"github.com/devopsgroupeu/StateCraft/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() log.Logger {
	return log.New(log.WithOutput(io.Discard))
}

func TestCreateAwsConfigRequiresRegion(t *testing.T) {
	t.Parallel()

	_, err := awshelper.CreateAwsConfig(context.Background(), testLogger(), &awshelper.SessionConfig{})

	var missingRegion awshelper.MissingRegionError
	require.ErrorAs(t, err, &missingRegion)
}

func TestCreateAwsConfigSetsRegion(t *testing.T) {
	t.Parallel()

	cfg, err := awshelper.CreateAwsConfig(context.Background(), testLogger(), &awshelper.SessionConfig{Region: "eu-west-1"})
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
}

func TestCreateAwsConfigUsesStaticCredentials(t *testing.T) {
	t.Parallel()

	sessionCfg := &awshelper.SessionConfig{
		Region:          "us-east-1",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "supersecret",
	}

	cfg, err := awshelper.CreateAwsConfig(context.Background(), testLogger(), sessionCfg)
	require.NoError(t, err)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "supersecret", creds.SecretAccessKey)
}

func TestHasStaticCredentials(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		cfg      awshelper.SessionConfig
		expected bool
	}{
		{"both-present", awshelper.SessionConfig{AccessKeyID: "a", SecretAccessKey: "s"}, true},
		{"only-access-key", awshelper.SessionConfig{AccessKeyID: "a"}, false},
		{"only-secret-key", awshelper.SessionConfig{SecretAccessKey: "s"}, false},
		{"neither", awshelper.SessionConfig{}, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.cfg.HasStaticCredentials())
		})
	}
}
