package debounce_test

import (
	"context"
	"fmt"
	"time"

	"github.com/Azizi-X/debounce"
)

func ExampleNew() {
	owner := debounce.NewOwner(context.Background())
	defer owner.Close()

	done := make(chan string, 1)

	search := debounce.New(func(query string) {
		done <- query
	}, owner, 50*time.Millisecond)

	// Simulates a user typing; only the final query triggers the search.
	search("g")
	search("go")
	search("gopher")

	fmt.Println(<-done)
	// Output: gopher
}
