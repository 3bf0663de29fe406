package model

import (
	"strconv"
	"strings"
	"time"
)

type TaskAction int

const (
	// ActionRefreshJobs re-runs the stored map-reduce jobs of a
	// database after a document update.
	ActionRefreshJobs TaskAction = iota
)

type Task struct {
	ID          uint64
	ActiveSince time.Time
	Action      TaskAction

	DBName string
	// DocID is the document update that caused the task,
	// informational only.
	DocID string

	UpdatedAt       time.Time
	ProcessingTotal int // total number of things to process
	Processed       int // number of things processed
}

func (t Task) String() string {
	var b strings.Builder
	b.WriteString("<Task ID=")
	b.WriteString(strconv.Itoa(int(t.ID)))
	b.WriteString(" action=")
	b.WriteString(strconv.Itoa(int(t.Action)))
	b.WriteString(" db=")
	b.WriteString(t.DBName)
	b.WriteString(" doc=\"")
	b.WriteString(t.DocID)
	b.WriteString("\"")
	b.WriteString(">")
	return b.String()
}
