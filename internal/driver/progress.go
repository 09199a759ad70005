package driver

import (
	"time"
)

// Stage describes a phase of recovering one dump.
type Stage string

const (
	// StageLoad is reading and normalizing the dump.
	StageLoad Stage = "load"
	// StageScan is locating sections and scanning events.
	StageScan Stage = "scan"
	// StageWrite is encoding and writing the recovered document.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the dump is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the dump is being recovered.
	StatusWorking Status = "working"
	// StatusDone indicates the dump was recovered and written.
	StatusDone Status = "done"
	// StatusCached indicates the dump was skipped: its previous output is still fresh.
	StatusCached Status = "cached"
	// StatusError indicates the recovery failed.
	StatusError Status = "error"
)

// Event reports progress for a single dump.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
