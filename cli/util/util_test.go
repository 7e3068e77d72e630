package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp(out *bytes.Buffer) *cli.App {
	app := cli.NewApp()
	app.Writer = out
	app.Commands = NewCommands()
	return app
}

func TestAddressCommandPrintsP2PKHAddress(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(&out)

	err := app.Run([]string{"zecd", "util", "address", "61626364656661"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(strings.TrimSpace(out.String()), "t1"))
}

func TestAddressCommandPrintsP2SHAddress(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(&out)

	err := app.Run([]string{"zecd", "util", "address", "--p2sh", "61626364656661"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(strings.TrimSpace(out.String()), "t3"))
}

func TestAddressCommandRejectsInvalidHex(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(&out)

	err := app.Run([]string{"zecd", "util", "address", "not-hex"})
	require.Error(t, err)
}

func TestAddressCommandRejectsWrongArgCount(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(&out)

	err := app.Run([]string{"zecd", "util", "address"})
	require.Error(t, err)
}
