package state

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		RunID:  uuid.New(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		start:  time.Now(),
	}
}
