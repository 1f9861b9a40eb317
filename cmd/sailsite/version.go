package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"
)

type versionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print version information",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "plain or json", Value: "plain"},
		},
		Action: func(c *cli.Context) error {
			info := versionInfo{
				Version:   version,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if c.String("output") == "json" {
				out, err := json.Marshal(info)
				if err != nil {
					return fmt.Errorf("marshal version: %w", err)
				}
				fmt.Fprintln(c.App.Writer, string(out))
				return nil
			}
			fmt.Fprintf(c.App.Writer, "sailsite %s (%s, %s)\n", info.Version, info.GoVersion, info.Platform)
			return nil
		},
	}
}
