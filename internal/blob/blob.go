// Package blob re-exports the artifact storage abstractions and selects a
// backend from the environment.
package blob

import (
	"context"
	"fmt"
	"os"

	"lodgecore/internal/blob/core"
	"lodgecore/internal/infra/blob/fs"
	"lodgecore/internal/infra/blob/memory"
	"lodgecore/internal/infra/blob/s3"
)

type (
	// Driver identifies an artifact backend driver.
	Driver = core.Driver
	// PutOptions configures an artifact write.
	PutOptions = core.PutOptions
	// SignedURLOptions configures URL pre-signing.
	SignedURLOptions = core.SignedURLOptions
	// Info describes stored artifact metadata.
	Info = core.Info
	// Store is the interface implemented by all artifact backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
)

// ErrUnsupported indicates an operation a driver does not provide.
var ErrUnsupported = core.ErrUnsupported

// ErrNotFound indicates no artifact exists under the requested key.
var ErrNotFound = core.ErrNotFound

// Environment variables consulted by Open.
const (
	EnvDriver = "LODGECORE_BLOB_DRIVER"
	EnvFSRoot = "LODGECORE_BLOB_FS_ROOT"
)

// Open selects an artifact Store implementation using environment variables.
//
//	LODGECORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	LODGECORE_BLOB_FS_ROOT: directory root when driver=fs (default ./receiptdata)
//	(S3 variables are documented in the s3 driver package.)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv(EnvDriver)
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return fs.New(os.Getenv(EnvFSRoot))
	case DriverS3:
		return s3.OpenFromEnv(ctx)
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown artifact driver %s", driver)
	}
}
