package auditlog

import (
	"database/sql/driver"
	"errors"
	"time"
)

// Action is the kind of operator or webhook action recorded in the audit log.
type Action string

const (
	ActionSettings     Action = "SETTINGS"
	ActionRelease      Action = "RELEASE"
	ActionSplitRelease Action = "SPLIT_RELEASE"
)

var ErrInvalidAction = errors.New("invalid audit action")

func (a Action) String() string {
	return string(a)
}

func (a Action) Value() (driver.Value, error) {
	return a.String(), nil
}

func ParseAction(s string) (Action, error) {
	switch s {
	case ActionSettings.String():
		return ActionSettings, nil
	case ActionRelease.String():
		return ActionRelease, nil
	case ActionSplitRelease.String():
		return ActionSplitRelease, nil
	default:
		return "", ErrInvalidAction
	}
}

// Entry represents one append-only audit log record.
type Entry struct {
	ID          int64     `json:"id"`
	Shop        string    `json:"shop"`
	Action      Action    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
