package types

import (
	"fmt"

	"github.com/google/uuid"
)

// SubjectID identifies a subject inside a roster. It is assigned when the
// subject is created and is never persisted, so identities are fresh after
// every load or import.
type SubjectID [16]byte

func NewSubjectID() SubjectID {
	return SubjectID(uuid.New())
}

func (id SubjectID) IsZero() bool {
	for i := 0; i < 16; i++ {
		if id[i] != 0 {
			return false
		}
	}
	return true
}

func (id SubjectID) String() string {
	return uuid.UUID(id).String()
}

func (id SubjectID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *SubjectID) UnmarshalText(b []byte) error {
	parsed, err := SubjectIDFromString(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func SubjectIDFromString(s string) (SubjectID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return SubjectID{}, fmt.Errorf("invalid subject id %q: %w", s, err)
	}
	return SubjectID(u), nil
}
