package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex rcpt_01HZX3M6Q9J8V1T2R4S5W7Y8Z0
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	UUID_PREFIX_RECEIPT         = "rcpt"
	UUID_PREFIX_JOB_APPLICATION = "job"
	UUID_PREFIX_CONTACT         = "cnt"
)
