package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/propilot/fbohub/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "location",
			ID:       "KSFO",
		}
		assert.Equal(t, "location with ID KSFO not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("facility", "signature")
		assert.Equal(t, "facility with ID signature not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("facility", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "location_code",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field location_code: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid record",
		}
		assert.Equal(t, "validation failed: invalid record", err.Error())
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("updated_by", "baseline-import", "label is reserved")
		assert.Contains(t, err.Error(), "updated_by")
		assert.Contains(t, err.Error(), "label is reserved")
	})
}

func TestConflictError(t *testing.T) {
	t.Run("with owner", func(t *testing.T) {
		err := &pkgerrors.ConflictError{
			LocationCode: "KSFO",
			Name:         "Bay Jet Center",
			Owner:        "pilot7",
		}
		assert.Contains(t, err.Error(), "KSFO")
		assert.Contains(t, err.Error(), "Bay Jet Center")
		assert.Contains(t, err.Error(), "pilot7")
		assert.True(t, errors.Is(err, pkgerrors.ErrDuplicateFacility))
	})

	t.Run("without owner", func(t *testing.T) {
		err := pkgerrors.NewConflictError("KAPA", "TAC Air", "")
		assert.Contains(t, err.Error(), "KAPA")
		assert.NotContains(t, err.Error(), "entered by")
		assert.True(t, pkgerrors.IsConflict(err))
	})
}

func TestProtectedError(t *testing.T) {
	err := pkgerrors.NewProtectedError("KSFO", "Signature Aviation")
	assert.Contains(t, err.Error(), "KSFO")
	assert.Contains(t, err.Error(), "Signature Aviation")
	assert.Contains(t, err.Error(), "cannot be deleted")
	assert.True(t, errors.Is(err, pkgerrors.ErrProtectedRecord))
	assert.True(t, pkgerrors.IsProtected(err))
}

func TestRemoteError(t *testing.T) {
	t.Run("with location", func(t *testing.T) {
		base := errors.New("connection refused")
		err := &pkgerrors.RemoteError{
			Operation:    "fetch",
			LocationCode: "KSFO",
			Err:          base,
		}
		assert.Contains(t, err.Error(), "fetch")
		assert.Contains(t, err.Error(), "KSFO")
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, base, err.Unwrap())
		assert.True(t, errors.Is(err, pkgerrors.ErrRemoteUnavailable))
	})

	t.Run("without location", func(t *testing.T) {
		err := pkgerrors.NewRemoteError("save", "", errors.New("timeout"))
		assert.Contains(t, err.Error(), "save")
		assert.NotContains(t, err.Error(), "for ")
		assert.True(t, pkgerrors.IsRemoteUnavailable(err))
	})
}

func TestStoreError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.StoreError{
			Operation: "write",
			Key:       "KSFO",
			Message:   "disk full",
			Err:       errors.New("disk full"),
		}
		assert.Contains(t, err.Error(), "write")
		assert.Contains(t, err.Error(), "KSFO")
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("database is locked")
		err := pkgerrors.NewStoreError("read", "KAPA", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		baseErr := errors.New("no such table")
		err := pkgerrors.WrapStore("migrate", "facility_sets", baseErr)
		storeErr, ok := err.(*pkgerrors.StoreError)
		require.True(t, ok)
		assert.Equal(t, "migrate", storeErr.Operation)
		assert.Equal(t, "facility_sets", storeErr.Key)
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file and line", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "csv",
			File:    "fbos.csv",
			Line:    10,
			Message: "non-numeric price",
		}
		assert.Contains(t, err.Error(), "csv")
		assert.Contains(t, err.Error(), "fbos.csv")
		assert.Contains(t, err.Error(), ":10")
		assert.Contains(t, err.Error(), "non-numeric price")
	})

	t.Run("with file only", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "yaml",
			File:    "manifest.yaml",
			Message: "invalid indentation",
		}
		assert.Contains(t, err.Error(), "yaml")
		assert.Contains(t, err.Error(), "manifest.yaml")
		assert.Contains(t, err.Error(), "invalid indentation")
	})

	t.Run("format only", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "json",
			Message: "unexpected end of input",
		}
		assert.Contains(t, err.Error(), "json parse error")
		assert.Contains(t, err.Error(), "unexpected end of input")
	})

	t.Run("constructor and wrap", func(t *testing.T) {
		baseErr := errors.New("EOF")
		err := pkgerrors.NewParseError("csv", "fbos.csv", "unexpected end", baseErr)
		assert.Contains(t, err.Error(), "csv")
		assert.Equal(t, baseErr, err.Unwrap())

		wrapped := pkgerrors.WrapParse("yaml", "manifest.yaml", baseErr)
		parseErr, ok := wrapped.(*pkgerrors.ParseError)
		require.True(t, ok)
		assert.Equal(t, "yaml", parseErr.Format)
		assert.Equal(t, "manifest.yaml", parseErr.File)
	})
}

func TestSyncError(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		err := &pkgerrors.SyncError{
			LocationCode: "KSFO",
			Err:          errors.New("store write failed"),
		}
		assert.Contains(t, err.Error(), "KSFO")
		assert.Contains(t, err.Error(), "store write failed")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("database is locked")
		err := pkgerrors.NewSyncError("KAPA", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})
}

func TestConfigError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Component: "store",
			Message:   "db_path cannot be empty",
		}
		assert.Contains(t, err.Error(), "store")
		assert.Contains(t, err.Error(), "db_path")
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewConfigError("remote", "mongo_uri cannot be empty", nil)
		assert.Contains(t, err.Error(), "remote")
		assert.Contains(t, err.Error(), "mongo_uri")
	})
}

func TestHelperFunctions(t *testing.T) {
	t.Run("IsNotFound", func(t *testing.T) {
		err1 := pkgerrors.NewNotFoundError("facility", "test")
		err2 := errors.New("not found")
		err3 := pkgerrors.ErrNotFound

		assert.True(t, pkgerrors.IsNotFound(err1))
		assert.False(t, pkgerrors.IsNotFound(err2))
		assert.True(t, pkgerrors.IsNotFound(err3))
	})

	t.Run("IsConflict", func(t *testing.T) {
		err1 := pkgerrors.NewConflictError("KSFO", "test", "user1")
		err2 := pkgerrors.ErrDuplicateFacility

		assert.True(t, pkgerrors.IsConflict(err1))
		assert.True(t, pkgerrors.IsConflict(err2))
		assert.False(t, pkgerrors.IsConflict(errors.New("duplicate facility")))
	})

	t.Run("IsProtected", func(t *testing.T) {
		err := pkgerrors.NewProtectedError("KSFO", "Signature")
		assert.True(t, pkgerrors.IsProtected(err))
		assert.False(t, pkgerrors.IsProtected(pkgerrors.ErrDuplicateFacility))
	})

	t.Run("IsRemoteUnavailable", func(t *testing.T) {
		err := pkgerrors.NewRemoteError("fetch", "KSFO", errors.New("dial tcp: refused"))
		assert.True(t, pkgerrors.IsRemoteUnavailable(err))
	})

	t.Run("IsCanceled", func(t *testing.T) {
		assert.True(t, pkgerrors.IsCanceled(pkgerrors.ErrCanceled))
	})

	t.Run("IsTimeout", func(t *testing.T) {
		assert.True(t, pkgerrors.IsTimeout(pkgerrors.ErrTimeout))
	})
}

func TestWrapHelpers(t *testing.T) {
	t.Run("WrapValidation", func(t *testing.T) {
		err := pkgerrors.WrapValidation("name", errors.New("too short"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "too short")

		// nil error returns nil
		assert.Nil(t, pkgerrors.WrapValidation("field", nil))
	})

	t.Run("WrapStore", func(t *testing.T) {
		err := pkgerrors.WrapStore("write", "KSFO", errors.New("disk full"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "write")
		assert.Contains(t, err.Error(), "KSFO")

		assert.Nil(t, pkgerrors.WrapStore("read", "KSFO", nil))
	})

	t.Run("WrapRemote", func(t *testing.T) {
		err := pkgerrors.WrapRemote("fetch", "KAPA", errors.New("refused"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "fetch")
		assert.Contains(t, err.Error(), "KAPA")

		assert.Nil(t, pkgerrors.WrapRemote("fetch", "KAPA", nil))
	})

	t.Run("WrapParse", func(t *testing.T) {
		err := pkgerrors.WrapParse("csv", "fbos.csv", errors.New("invalid syntax"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "csv")
		assert.Contains(t, err.Error(), "fbos.csv")

		assert.Nil(t, pkgerrors.WrapParse("yaml", "file.yaml", nil))
	})

	t.Run("WrapSync", func(t *testing.T) {
		err := pkgerrors.WrapSync("KSFO", errors.New("store write failed"))
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "KSFO")

		assert.Nil(t, pkgerrors.WrapSync("KSFO", nil))
	})
}

func TestErrorChaining(t *testing.T) {
	t.Run("multiple wrapping", func(t *testing.T) {
		baseErr := errors.New("database is locked")
		storeErr := pkgerrors.WrapStore("write", "KSFO", baseErr)
		syncErr := &pkgerrors.SyncError{
			LocationCode: "KSFO",
			Err:          storeErr,
		}

		// Check unwrapping chain
		assert.Equal(t, storeErr, syncErr.Unwrap())

		// errors.As should work through the chain
		var targetStoreErr *pkgerrors.StoreError
		assert.True(t, errors.As(syncErr, &targetStoreErr))
		assert.Equal(t, "write", targetStoreErr.Operation)
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", pkgerrors.ErrNotFound},
		{"ErrInvalidInput", pkgerrors.ErrInvalidInput},
		{"ErrDuplicateFacility", pkgerrors.ErrDuplicateFacility},
		{"ErrProtectedRecord", pkgerrors.ErrProtectedRecord},
		{"ErrRemoteUnavailable", pkgerrors.ErrRemoteUnavailable},
		{"ErrDatasetStale", pkgerrors.ErrDatasetStale},
		{"ErrTimeout", pkgerrors.ErrTimeout},
		{"ErrCanceled", pkgerrors.ErrCanceled},
	}

	for _, tc := range sentinels {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotNil(t, tc.err)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}
