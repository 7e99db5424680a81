package constants_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/propilot/fbohub/pkg/constants"
)

// Example demonstrates using timeout constants for common operations
func Example() {
	// Remote store client with standard timeout
	client := &http.Client{
		Timeout: constants.DefaultRemoteTimeout,
	}
	fmt.Printf("Remote timeout: %v\n", client.Timeout)

	// Context with operation timeout
	ctx, cancel := context.WithTimeout(
		context.Background(),
		constants.DefaultTimeout,
	)
	defer cancel()

	// Simulated operation
	select {
	case <-time.After(100 * time.Millisecond):
		fmt.Println("Operation completed")
	case <-ctx.Done():
		fmt.Println("Operation timed out")
	}

	// Output:
	// Remote timeout: 30s
	// Operation completed
}

// Example_limits shows the location code limits
func Example_limits() {
	code := "KSFO"
	valid := len(code) >= constants.MinLocationCodeLength &&
		len(code) <= constants.MaxLocationCodeLength
	fmt.Printf("%s valid: %v\n", code, valid)

	// Output:
	// KSFO valid: true
}

// Example_server shows the HTTP server defaults
func Example_server() {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", constants.DefaultHTTPPort),
		ReadTimeout:  constants.DefaultReadTimeout,
		WriteTimeout: constants.DefaultWriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}
	fmt.Printf("Addr: %s\n", server.Addr)
	fmt.Printf("Read timeout: %v\n", server.ReadTimeout)

	// Output:
	// Addr: :8080
	// Read timeout: 10s
}

// Example_contextTimeouts shows different context timeout scenarios
func Example_contextTimeouts() {
	// Short operation
	_, shortCancel := context.WithTimeout(
		context.Background(),
		constants.DefaultTimeout,
	)
	defer shortCancel()

	// Sync operation
	_, syncCancel := context.WithTimeout(
		context.Background(),
		constants.SyncTimeout,
	)
	defer syncCancel()

	fmt.Printf("Default timeout: %v\n", constants.DefaultTimeout)
	fmt.Printf("Sync timeout: %v\n", constants.SyncTimeout)

	// Output:
	// Default timeout: 10s
	// Sync timeout: 2m0s
}
