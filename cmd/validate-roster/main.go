package main

import (
	"fmt"
	"os"

	"github.com/blockedby/dispatch-os/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("No files to check.")
		os.Exit(0)
	}

	failed := false
	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("failed to read %s: %v\n", path, err)
			failed = true
			continue
		}

		roster, err := store.ParseRoster(data)
		if err != nil {
			fmt.Printf("invalid roster %s: %v\n", path, err)
			failed = true
			continue
		}

		// seeding into a throwaway store catches bad ids and weekday keys
		if err := roster.Seed(store.NewMemory()); err != nil {
			fmt.Printf("invalid roster %s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s ok: %d technicians, %d service orders\n",
			path, len(roster.Technicians), len(roster.ServiceOrders))
	}

	if failed {
		os.Exit(1)
	}
}
