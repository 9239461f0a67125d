package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/skyup-digital/skyup-api/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "generate-secret",
		Description: "Generate a random signing secret for auth.secret",
		Run:         internal.GenerateSigningSecret,
	},
	{
		Name:        "hash-password",
		Description: "Print a bcrypt hash of ADMIN_PASSWORD for auth.admin_password_hash",
		Run:         internal.HashAdminPassword,
	},
	{
		Name:        "sync-invoice-sequence",
		Description: "Raise the invoice counter to the latest stored receipt",
		Run:         internal.SyncInvoiceSequence,
	},
}

func main() {
	var (
		listCommands bool
		cmdName      string
		password     string
		dryRun       bool
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&password, "password", "", "Admin password to hash")
	flag.BoolVar(&dryRun, "dry-run", false, "Report changes without writing them")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-24s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	if password != "" {
		os.Setenv("ADMIN_PASSWORD", password)
	}
	if dryRun {
		os.Setenv("DRY_RUN", "true")
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
