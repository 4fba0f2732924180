// Command emailcheck reads email addresses from stdin, one per line as if
// typed into the sign-in field, and prints the debounced existence checks
// made against a running API.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"transfer-storefront/internal/pkg/emailcheck"
	"transfer-storefront/internal/pkg/logger"
)

func main() {
	baseURL := flag.String("api", "http://localhost:8080/api/v1", "API base URL")
	quiet := flag.Duration("quiet", emailcheck.DefaultQuietPeriod, "quiet period before a check is sent")
	flag.Parse()

	var (
		mu   sync.Mutex
		last string
		done = make(chan struct{}, 1)
	)

	api := emailcheck.NewAPI(*baseURL, nil)
	checker := emailcheck.NewChecker(api.Check, *quiet, func(r emailcheck.Result) {
		defer func() {
			mu.Lock()
			defer mu.Unlock()
			if r.Email == last {
				select {
				case done <- struct{}{}:
				default:
				}
			}
		}()
		switch {
		case r.Err != nil:
			fmt.Printf("%s\terror: %v\n", r.Email, r.Err)
		case !r.Success:
			fmt.Printf("%s\tinvalid\n", r.Email)
		default:
			fmt.Printf("%s\texists=%t\n", r.Email, r.Exists)
		}
	})

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		mu.Lock()
		last = strings.TrimSpace(scanner.Text())
		mu.Unlock()
		checker.Input(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		logger.Error.Println("failed to read input:", err)
	}

	mu.Lock()
	empty := last == ""
	mu.Unlock()
	if empty {
		checker.Close()
		return
	}

	// Wait for the check of the final value.
	select {
	case <-done:
	case <-time.After(*quiet + 15*time.Second):
		logger.Warning.Println("timed out waiting for the last check")
	}
	checker.Close()
}
