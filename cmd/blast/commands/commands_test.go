package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.blast.dev/blast/cmd/blast/commands"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(nil)
	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "blast version")
}

func TestCreateRequiresPath(t *testing.T) {
	_, err := execute(t, "create")
	require.Error(t, err)
}

func TestInstallRequiresSpecs(t *testing.T) {
	_, err := execute(t, "install")
	require.Error(t, err)
}

func TestUninstallRequiresNames(t *testing.T) {
	_, err := execute(t, "uninstall")
	require.Error(t, err)
}

func TestListRejectsArgs(t *testing.T) {
	_, err := execute(t, "list", "extra")
	require.Error(t, err)
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "explode")
	require.Error(t, err)
}
