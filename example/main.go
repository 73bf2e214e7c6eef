// Command example compiles community.yaml into a runnable bot program.
//
//	go run ./example -o community_bot.py
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mxkacsa/botgen"
	"github.com/mxkacsa/botgen/gen"
)

var (
	graphFile  = flag.String("graph", "example/community.yaml", "graph file")
	outputFile = flag.String("o", "community_bot.py", "output file")
)

func main() {
	flag.Parse()

	fmt.Println("=== botgen example ===")

	res, err := botgen.GenerateFile(*graphFile, gen.Options{
		BotName:             "Community Bot",
		UserDatabaseEnabled: true,
		EnableLogging:       true,
		TemplateOverrides: map[string]string{
			"ban_user.success": "🚫 Banned. Bye!",
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "example: %v\n", err)
		os.Exit(1)
	}

	for _, w := range res.Warnings {
		fmt.Println("warning:", w)
	}

	src := res.Source
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		if src, err = botgen.SubstituteToken(src, token); err != nil {
			fmt.Fprintf(os.Stderr, "example: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(*outputFile, []byte(src), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "example: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated: %s (%d bytes)\n", *outputFile, len(src))
}
