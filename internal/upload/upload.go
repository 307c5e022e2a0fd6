package upload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cuongbtq/jobsearch/internal/domain"
)

// State is a step of the upload lifecycle
type State string

const (
	StateIdle      State = "idle"
	StateDragging  State = "dragging"
	StateUploading State = "uploading"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Terminal reports whether no further progress is possible without Reset
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

const (
	// MaxProgress is the progress value at which an upload completes
	MaxProgress = 100

	DefaultStep     = 10
	DefaultInterval = 200 * time.Millisecond
)

// ErrInvalidTransition is returned when an event is not valid in the current state
var ErrInvalidTransition = errors.New("invalid upload state transition")

// AllowedExtensions are the accepted resume formats
var AllowedExtensions = []string{".pdf", ".doc", ".docx"}

// File is a candidate file offered by a drop or a file picker
type File struct {
	Name string
	Size int64
}

// CompleteFunc receives the uploaded file once progress reaches MaxProgress
type CompleteFunc func(ctx context.Context, file File) error

// Options controls how fast progress advances
type Options struct {
	Step     int
	Interval time.Duration
}

// Uploader is the resume upload state machine:
//
//	Idle -> Dragging -> Idle            (drag enter / leave)
//	Idle|Dragging -> Uploading          (drop or select with a valid file)
//	Idle|Dragging -> Failed             (no valid file)
//	Uploading -> Completed | Failed     (progress reaches 100, callback result)
//	Completed|Failed -> Idle            (reset)
type Uploader struct {
	mu         sync.Mutex
	state      State
	progress   int
	file       File
	err        error
	finishing  bool
	step       int
	interval   time.Duration
	onComplete CompleteFunc
}

// New creates an idle Uploader
func New(opts Options, onComplete CompleteFunc) *Uploader {
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	if opts.Interval < 0 {
		opts.Interval = DefaultInterval
	}

	return &Uploader{
		state:      StateIdle,
		step:       opts.Step,
		interval:   opts.Interval,
		onComplete: onComplete,
	}
}

// ValidFile reports whether name carries an allowed extension
func ValidFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (u *Uploader) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *Uploader) Progress() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.progress
}

// Err returns the failure cause once the uploader is Failed
func (u *Uploader) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// File returns the file being uploaded
func (u *Uploader) File() File {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.file
}

func (u *Uploader) DragEnter() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch u.state {
	case StateIdle, StateDragging:
		u.state = StateDragging
		return nil
	default:
		return u.invalid("drag enter")
	}
}

func (u *Uploader) DragLeave() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch u.state {
	case StateDragging, StateIdle:
		u.state = StateIdle
		return nil
	default:
		return u.invalid("drag leave")
	}
}

// Drop starts uploading the first valid file. Without a valid file the
// uploader fails with domain.ErrUnsupportedFile.
func (u *Uploader) Drop(files []File) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state != StateIdle && u.state != StateDragging {
		return u.invalid("drop")
	}

	for _, f := range files {
		if ValidFile(f.Name) {
			u.file = f
			u.progress = 0
			u.err = nil
			u.state = StateUploading
			return nil
		}
	}

	u.state = StateFailed
	u.err = fmt.Errorf("%w: accepted formats are PDF, DOC, DOCX", domain.ErrUnsupportedFile)
	return u.err
}

// Select behaves like Drop for files picked through a dialog
func (u *Uploader) Select(files []File) error {
	return u.Drop(files)
}

// Tick advances progress by one step. When progress reaches MaxProgress the
// completion callback runs exactly once, outside the lock.
func (u *Uploader) Tick(ctx context.Context) State {
	u.mu.Lock()
	if u.state != StateUploading || u.finishing {
		state := u.state
		u.mu.Unlock()
		return state
	}

	u.progress += u.step
	if u.progress < MaxProgress {
		u.mu.Unlock()
		return StateUploading
	}

	u.progress = MaxProgress
	u.finishing = true
	file := u.file
	u.mu.Unlock()

	var err error
	if u.onComplete != nil {
		err = u.onComplete(ctx, file)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.finishing = false
	if err != nil {
		u.state = StateFailed
		u.err = err
	} else {
		u.state = StateCompleted
	}
	return u.state
}

// Run ticks on the configured interval until the upload ends. Cancelling ctx
// fails the upload with the context error.
func (u *Uploader) Run(ctx context.Context) error {
	if u.State() != StateUploading {
		return u.invalid("run")
	}

	var tick <-chan time.Time
	if u.interval > 0 {
		ticker := time.NewTicker(u.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return u.fail(ctx.Err())
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return u.fail(err)
		}

		switch u.Tick(ctx) {
		case StateCompleted:
			return nil
		case StateFailed:
			return u.Err()
		}
	}
}

// Reset returns a finished uploader to Idle
func (u *Uploader) Reset() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.state.Terminal() {
		return u.invalid("reset")
	}

	u.state = StateIdle
	u.progress = 0
	u.file = File{}
	u.err = nil
	return nil
}

func (u *Uploader) fail(err error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.state.Terminal() {
		u.state = StateFailed
		u.err = err
	}
	return u.err
}

// invalid must be called with the lock held
func (u *Uploader) invalid(event string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, event, u.state)
}
