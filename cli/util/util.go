// Package util implements standalone helper commands that don't need a
// running node.
package util

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/zecd-io/zecd/pkg/util"
)

// NewCommands returns the 'util' command group.
func NewCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "util",
			Usage: "Utility commands",
			Subcommands: []*cli.Command{
				{
					Name:      "address",
					Usage:     "Derive the mainnet transparent address for a hex-encoded public key or redeem script",
					UsageText: "zecd util address [--p2sh] <hex>",
					Action:    addressAction,
					Flags: []cli.Flag{
						&cli.BoolFlag{
							Name:  "p2sh",
							Usage: "Encode for a P2SH redeem script (t3...) instead of a P2PKH public key (t1...)",
						},
					},
				},
			},
		},
	}
}

func addressAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return cli.Exit("expected exactly one hex-encoded argument", 1)
	}
	raw, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return cli.Exit(fmt.Errorf("invalid hex: %w", err), 1)
	}

	version := util.MainnetP2PKHVersion
	if ctx.Bool("p2sh") {
		version = util.MainnetP2SHVersion
	}

	hash160 := util.HashForAddress(raw)
	fmt.Fprintln(ctx.App.Writer, util.EncodeTransparentAddress(version, hash160))
	return nil
}
