package errors_test

import (
	"fmt"

	"github.com/propilot/fbohub/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	// Create a not found error
	err := &errors.NotFoundError{
		Resource: "facility",
		ID:       "KSFO/signature",
	}

	// Check error type
	if errors.IsNotFound(err) {
		fmt.Println("Record not found")
	}

	// Output: Record not found
}

// Example_conflictError demonstrates duplicate-creation conflict handling.
func Example_conflictError() {
	err := errors.NewConflictError("KSFO", "Bay Jet Center", "pilot7")

	if errors.IsConflict(err) {
		fmt.Println("Duplicate - edit the existing entry")
	}

	// Output: Duplicate - edit the existing entry
}

// Example_protectedError shows verified-record protection handling.
func Example_protectedError() {
	err := errors.NewProtectedError("KSFO", "Signature Aviation")

	if errors.IsProtected(err) {
		fmt.Println("Verified records cannot be deleted")
	}

	// Output: Verified records cannot be deleted
}

// Example_remoteError shows how transient remote failures are classified.
func Example_remoteError() {
	base := errors.New("dial tcp 10.0.0.1:27017: connection refused")
	err := errors.WrapRemote("fetch", "KAPA", base)

	if errors.IsRemoteUnavailable(err) {
		fmt.Println("Degrading to local data")
	}

	// Output: Degrading to local data
}
