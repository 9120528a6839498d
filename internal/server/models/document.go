package models

import "time"

// DocumentStatus is the processing state of an uploaded document.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusComplete   DocumentStatus = "complete"
	StatusFailed     DocumentStatus = "failed"
)

// forward-only workflow used in strict mode
var transitions = map[DocumentStatus]map[DocumentStatus]struct{}{
	StatusPending: {
		StatusProcessing: {},
	},
	StatusProcessing: {
		StatusComplete: {},
		StatusFailed:   {},
	},
}

func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusComplete, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition leaves s.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// CanTransition reports whether the workflow allows moving from s to next.
// Staying in the same status is always allowed.
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	if s == next {
		return true
	}
	_, ok := transitions[s][next]
	return ok
}

func ParseDocumentStatus(v string) (DocumentStatus, bool) {
	s := DocumentStatus(v)
	return s, s.IsValid()
}

// Document is the metadata record of an uploaded file.
// ErrorMessage is non-nil only while Status is StatusFailed.
type Document struct {
	ID           int64
	Filename     string
	UploaderID   int64
	StorageKey   string
	Status       DocumentStatus
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DocumentPatch is a partial update. Nil fields are left unchanged.
// ClearErrorMessage resets the stored message to NULL and takes
// precedence over ErrorMessage.
type DocumentPatch struct {
	Filename          *string
	Status            *DocumentStatus
	ErrorMessage      *string
	ClearErrorMessage bool
}

// IsEmpty reports whether the patch changes nothing.
func (p DocumentPatch) IsEmpty() bool {
	return p.Filename == nil && p.Status == nil && p.ErrorMessage == nil && !p.ClearErrorMessage
}
