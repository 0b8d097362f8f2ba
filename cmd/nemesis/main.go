package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "nemesis",
		Usage: "Compress and decompress tile graphics in Nemesis format",
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Compress raw tile files",
				Action:    compressFiles,
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Value: "auto",
						Usage: "Encoding to use: auto, normal, or xor",
					},
					&cli.BoolFlag{
						Name:  "parallel",
						Usage: "Try both encodings concurrently",
					},
					suffixFlag(),
				},
			},
			{
				Name:      "decompress",
				Usage:     "Decompress Nemesis files",
				Action:    decompressFiles,
				ArgsUsage: "FILE...",
				Flags:     []cli.Flag{suffixFlag()},
			},
			{
				Name:      "table",
				Usage:     "Show the header and code table of a Nemesis file",
				Action:    showCodeTable,
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: "table",
						Usage: "Output format: table or csv",
					},
				},
			},
		},
	}
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func suffixFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "suffix",
		Value: ".nem",
		Usage: "Extension of compressed files",
	}
}
