// Package record captures and replays interactive shell sessions using the
// User Mode Linux log format.
package record

import (
	"bytes"
	"encoding/binary"
	"io"
	"log"
	"sync"
	"time"
)

type streamFd int

const (
	fdStdin  streamFd = 0
	fdStdout streamFd = 1
	fdStderr streamFd = 2
)

type fdOp int32

const (
	opOpen  fdOp = 1
	opClose fdOp = 2
	opWrite fdOp = 3
	opExec  fdOp = 4
)

type fdDir int32

const (
	dirRead  fdDir = 1
	dirWrite fdDir = 2
)

// event is the on-disk framing of one recorded I/O operation.
type event struct {
	Operation    int32  // Operation, maps into fdOp.
	Tty          uint32 // Should always be 0.
	Size         int32  // Number of bytes following this event.
	Direction    int32  // Data direction, maps into fdDir.
	Seconds      uint32 // UNIX timestamp of the event.
	Microseconds uint32 // Microseconds after the timestamp of the event.
}

func logEvent(out io.Writer, timestamp time.Time, fd streamFd, op fdOp, data []byte) error {
	sec := timestamp.UnixNano() / int64(time.Second)
	usec := (timestamp.UnixNano() % int64(time.Second)) / int64(time.Microsecond)

	direction := dirWrite
	if fd == fdStdin {
		direction = dirRead
	}

	eventData := []interface{}{
		int32(op),
		uint32(0), // TTY, always 0
		int32(len(data)),
		int32(direction),
		uint32(sec),
		uint32(usec),
	}

	for _, v := range eventData {
		if err := binary.Write(out, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	if len(data) > 0 {
		if _, err := out.Write(data); err != nil {
			return err
		}
	}

	return nil
}

// Recorder tees a session's standard streams into an event log.
type Recorder struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer

	mutex  sync.Mutex
	output io.Writer
}

// NewRecorder wraps the given streams so all traffic over them is logged to
// output.
func NewRecorder(stdin io.ReadCloser, stdout, stderr io.Writer, output io.Writer) *Recorder {
	r := &Recorder{output: output}
	r.Stdin = &recorderReadCloser{r: r, fd: fdStdin, wrapped: stdin}
	r.Stdout = &recorderWriter{r: r, fd: fdStdout, wrapped: stdout}
	r.Stderr = &recorderWriter{r: r, fd: fdStderr, wrapped: stderr}
	return r
}

func (r *Recorder) recordRead(fd streamFd, from io.Reader, to []byte) (int, error) {
	amount, err := from.Read(to)
	if err == nil {
		readTime := time.Now()
		r.mutex.Lock()
		e2 := logEvent(r.output, readTime, fd, opWrite, to[:amount])
		r.mutex.Unlock()
		if e2 != nil {
			log.Print(e2)
		}
	}
	return amount, err
}

func (r *Recorder) recordWrite(fd streamFd, from []byte, to io.Writer) (int, error) {
	writeTime := time.Now()
	amount, err := to.Write(from)
	if err == nil {
		r.mutex.Lock()
		e2 := logEvent(r.output, writeTime, fd, opWrite, from[:amount])
		r.mutex.Unlock()
		if e2 != nil {
			log.Print(e2)
		}
	}

	return amount, err
}

type recorderReadCloser struct {
	r       *Recorder
	fd      streamFd
	wrapped io.ReadCloser
}

var _ io.ReadCloser = (*recorderReadCloser)(nil)

func (rc *recorderReadCloser) Read(p []byte) (int, error) {
	return rc.r.recordRead(rc.fd, rc.wrapped, p)
}

func (rc *recorderReadCloser) Close() error {
	return rc.wrapped.Close()
}

type recorderWriter struct {
	r       *Recorder
	fd      streamFd
	wrapped io.Writer
}

var _ io.Writer = (*recorderWriter)(nil)

func (rw *recorderWriter) Write(p []byte) (int, error) {
	return rw.r.recordWrite(rw.fd, p, rw.wrapped)
}

type replayOpts struct {
	maxSleep time.Duration
}

// ReplayOpt changes options for playback.
type ReplayOpt func(*replayOpts)

// MaxSleep sets the maximum duration that Replay will sleep when playing
// events.
func MaxSleep(duration time.Duration) ReplayOpt {
	return func(r *replayOpts) {
		r.maxSleep = duration
	}
}

// Replay plays a stream of events to destination with the original pacing.
func Replay(recording io.Reader, destination io.Writer, opts ...ReplayOpt) error {
	options := &replayOpts{
		maxSleep: 3 * time.Second,
	}

	for _, o := range opts {
		o(options)
	}

	var prevTime time.Time
	var once sync.Once

	return replayEvents(recording, func(eventPtr *event, data []byte) error {
		currTime := time.Unix(int64(eventPtr.Seconds), int64(eventPtr.Microseconds)*int64(time.Microsecond))
		once.Do(func() {
			prevTime = currTime
		})

		if fdOp(eventPtr.Operation) == opWrite && fdDir(eventPtr.Direction) == dirWrite {
			sleepDuration := currTime.Sub(prevTime)
			if sleepDuration > options.maxSleep {
				sleepDuration = options.maxSleep
			}
			time.Sleep(sleepDuration)

			if _, err := destination.Write(data); err != nil {
				return err
			}
		}

		prevTime = currTime
		return nil
	})
}

// EventType is the type of event that the LogEvent represents.
type EventType int

const (
	EventTypeClose EventType = iota
	EventTypeInput
	EventTypeOutput
)

type LogEvent struct {
	// Timestamp of this event.
	Time time.Time
	// Type of the event.
	EventType EventType
	// Data associated with the event.
	Data []byte
}

// ReplayCallback reads a stream of events to a callback.
func ReplayCallback(recording io.Reader, callback func(*LogEvent) error) error {
	return replayEvents(recording, func(eventPtr *event, data []byte) error {
		outputEvent := &LogEvent{
			Time: time.Unix(int64(eventPtr.Seconds), int64(eventPtr.Microseconds)*int64(time.Microsecond)),
			Data: data,
		}

		switch {
		case fdOp(eventPtr.Operation) == opClose:
			outputEvent.EventType = EventTypeClose
		case fdDir(eventPtr.Direction) == dirWrite:
			outputEvent.EventType = EventTypeOutput
		default:
			outputEvent.EventType = EventTypeInput
		}

		return callback(outputEvent)
	})
}

func replayEvents(recording io.Reader, callback func(*event, []byte) error) error {
	eventPtr := &event{}
	buf := &bytes.Buffer{}

	for {
		if err := binary.Read(recording, binary.LittleEndian, eventPtr); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		buf.Reset()

		if _, err := io.CopyN(buf, recording, int64(eventPtr.Size)); err != nil {
			return err
		}

		if err := callback(eventPtr, buf.Bytes()); err != nil {
			return err
		}
	}
}
