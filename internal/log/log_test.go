package log_test

import (
	"bytes"
	"testing"

	"github.com/devopsgroupeu/StateCraft/internal/log"
	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesToConfiguredOutput(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	l := log.New(log.WithOutput(out))

	l.Infof("bucket %s created", "my-state")

	assert.Contains(t, out.String(), "bucket my-state created")
}

func TestLoggerLevelFiltering(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	l := log.New(log.WithOutput(out), log.WithLevel("warn"))

	l.Info("hidden")
	l.Warn("visible")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "visible")
}

func TestLoggerFields(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	l := log.New(log.WithOutput(out))

	l.WithFields(log.Fields{"region": "eu-west-1"}).WithField("op_id", "42").Info("provisioning")

	assert.Contains(t, out.String(), "region=eu-west-1")
	assert.Contains(t, out.String(), "op_id=42")
}
