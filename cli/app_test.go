package cli_test

import (
	"bytes"
	"testing"

	"github.com/devopsgroupeu/StateCraft/cli"
	"github.com/devopsgroupeu/StateCraft/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	urfavecli "github.com/urfave/cli/v2"
)

func newTestApp() (*cli.App, *bytes.Buffer) {
	app := cli.NewApp("test")

	out := new(bytes.Buffer)
	app.Writer = out
	app.ErrWriter = out

	// keep command errors as return values instead of process exits
	app.ExitErrHandler = func(*urfavecli.Context, error) {}

	return app, out
}

func TestAppHasExpectedCommands(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp()

	for _, name := range []string{"create", "delete", "server"} {
		assert.NotNil(t, app.Command(name), "missing command %q", name)
	}
}

func TestResourceCommandsRequireRegionAndBucket(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{"create-missing-region", []string{"statecraft", "create", "--bucket-name", "my-state"}},
		{"create-missing-bucket", []string{"statecraft", "create", "--region", "us-east-1"}},
		{"delete-missing-region", []string{"statecraft", "delete", "--bucket-name", "my-state"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app, _ := newTestApp()

			err := app.Run(tc.args)
			require.Error(t, err)
		})
	}
}

func TestMissingTableNameIsUsageError(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp()

	err := app.Run([]string{"statecraft", "create", "--region", "us-east-1", "--bucket-name", "my-state"})
	require.Error(t, err)

	var exitErr urfavecli.ExitCoder
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.ExitCode())
	assert.Contains(t, err.Error(), "table name is required")
}

func TestLockingMechanismDefaultsToDynamoDB(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp()

	createCmd := app.Command("create")
	require.NotNil(t, createCmd)

	for _, f := range createCmd.Flags {
		if stringFlag, ok := f.(*urfavecli.StringFlag); ok && stringFlag.Name == "locking-mechanism" {
			assert.Equal(t, "dynamodb", stringFlag.Value)
			return
		}
	}

	t.Fatal("locking-mechanism flag not found")
}

func TestBannerIsPrintedBeforeWork(t *testing.T) {
	t.Parallel()

	app, out := newTestApp()

	// fails validation after the banner, so no AWS client is ever built
	_ = app.Run([]string{"statecraft", "create", "--region", "us-east-1", "--bucket-name", "my-state"})

	assert.Contains(t, out.String(), "███████╗")
	assert.Contains(t, out.String(), "Action: create")
}

func TestVersionFlag(t *testing.T) {
	t.Parallel()

	app, out := newTestApp()

	err := app.Run([]string{"statecraft", "--version"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "test")
}
