package cmd

import (
	"fmt"
	"os"
	"strconv"

	utils "github.com/KazanKK/tablextract/internal/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize tablextract configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Config file to write",
				Value: utils.ConfigFileName,
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Default directory for exported CSV files",
			},
			&cli.StringFlag{
				Name:  "delimiter",
				Usage: "CSV field delimiter (use \\t for tab)",
			},
			&cli.BoolFlag{
				Name:  "crlf",
				Usage: "Terminate CSV lines with \\r\\n",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output by default",
			},
		},
		Action: func(c *cli.Context) error {
			path := c.String("file")

			// Start from the existing file so unset flags keep their values
			var config utils.Config
			if _, err := os.Stat(path); err == nil {
				existing, err := utils.ReadConfig(path)
				if err != nil {
					return err
				}
				config = existing
			}

			if c.IsSet("output-dir") {
				config.OutputDir = c.String("output-dir")
			}
			if c.IsSet("delimiter") {
				config.Delimiter = c.String("delimiter")
			}
			if c.IsSet("crlf") {
				config.CRLF = c.Bool("crlf")
			}
			if c.IsSet("verbose") {
				config.Verbose = c.Bool("verbose")
			}

			if _, err := config.DelimiterRune(); err != nil {
				return err
			}
			if err := utils.WriteConfig(path, config); err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Created %s\n", path)
			table := tablewriter.NewWriter(c.App.Writer)
			table.SetHeader([]string{"Setting", "Value"})
			table.SetBorder(false)
			table.SetColumnSeparator(" ")
			table.Append([]string{"output_dir", config.OutputDir})
			table.Append([]string{"delimiter", displayDelimiter(config.Delimiter)})
			table.Append([]string{"crlf", strconv.FormatBool(config.CRLF)})
			table.Append([]string{"verbose", strconv.FormatBool(config.Verbose)})
			table.Render()
			return nil
		},
	}
}

func displayDelimiter(d string) string {
	if d == "" {
		return ","
	}
	return d
}
