// Command captchagen produces labeled captcha corpora, demo sheets and a
// challenge server from one binary.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/captcha"
)

const usage = `captchagen generates labeled captcha images in three difficulty tiers.

Usage:

  captchagen generate -config run.yaml [-parts part2,part3] [-v]
  captchagen demo     [-out demo_samples] [-seed N] [-v]
  captchagen serve    [-addr :3000] [-v]

Commands:

  generate   render a labeled corpus per the YAML run configuration
  demo       render fixed and random sample sheets for every tier
  serve      serve issue/verify/preview endpoints over HTTP
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "demo":
		err = runDemo(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "captchagen: unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("captchagen: %v", err)
	}
}

// enableLogging routes the library's structured logs to stderr. The
// library is silent until someone installs a logger.
func enableLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	captcha.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// tiers in increasing difficulty, the order every subcommand walks them.
var tiers = []captcha.Tier{captcha.TierPart2, captcha.TierPart3, captcha.TierPart4}
