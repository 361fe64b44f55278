package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

const interactiveBanner = `Genedex interactive mode.
Enter gene symbols separated by spaces (e.g. BRCA1 TP53).
Type 'help' for usage, 'exit' or 'quit' to leave.`

const interactiveHelp = `Commands:
  SYMBOL [SYMBOL...]   Resolve one or more gene symbols
  help                 Show this message
  exit, quit           Leave the prompt

Each result shows the symbol, Entrez ID, chromosome, map location,
description, a short summary and links to NCBI Gene and GeneCards.
Resolved symbols are cached; repeated queries answer locally.`

// runInteractive reads symbol lines from stdin until exit/EOF.
// Resolution failures are rendered per symbol and never terminate the
// loop.
func runInteractive(cmd *cobra.Command) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	cmd.Println(interactiveBanner)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("genes> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "help", "-h", "--help":
			cmd.Println(interactiveHelp)
			continue
		case "exit", "quit":
			cmd.Println("Bye.")
			return nil
		}

		for _, res := range resolverService.ResolveAll(context.Background(), strings.Fields(line)) {
			printResolution(cmd, res)
		}
	}
}
