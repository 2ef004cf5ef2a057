// Package host is the channel between cliptrack and the desktop host that
// captures clipboard changes.
//
// Before the app writes to the clipboard it asks the host to ignore the next
// capture, so its own write is not ingested as an external change. The host
// side (the watch loop) consumes that request when it sees the change.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/xxh3"
)

// ClipKind tags the data type of a clipboard entry.
type ClipKind string

const (
	ClipKindText ClipKind = "Text"
)

// IgnoreRequest is the payload of the suppression notification.
type IgnoreRequest struct {
	Hash    *string  `json:"hash"`
	Kind    ClipKind `json:"kind"`
	Content string   `json:"content"`
}

// TextRequest builds the request sent before writing text: no precomputed
// hash, text kind.
func TextRequest(content string) IgnoreRequest {
	return IgnoreRequest{Hash: nil, Kind: ClipKindText, Content: content}
}

// Notifier delivers suppression notifications to the host.
type Notifier interface {
	IgnoreNextCapture(ctx context.Context, req IgnoreRequest) error
}

// HashContent is the digest the host uses to match captures against
// pending requests.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(content))
}

const (
	ignoreFile = "ignore-next.json"
	markerFile = "host.json"

	// PendingTTL bounds how long an unconsumed request stays valid.
	PendingTTL = 30 * time.Second

	// MarkerTTL is the shortest time a runtime marker stays fresh without a
	// heartbeat. Hosts polling slower get three intervals instead.
	MarkerTTL = 10 * time.Second
)

type pendingRequest struct {
	IgnoreRequest
	RequestedAt time.Time `json:"requested_at"`
}

// Marker describes a running host. The host rewrites UpdatedAt on every
// poll; a marker left behind by a host that died goes stale.
type Marker struct {
	PID       int           `json:"pid"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Interval  time.Duration `json:"interval"`
}

func (m Marker) staleAfter() time.Duration {
	if d := 3 * m.Interval; d > MarkerTTL {
		return d
	}
	return MarkerTTL
}

// FileChannel is a Notifier backed by files in a state directory shared by
// the app and the host process.
type FileChannel struct {
	dir string
	now func() time.Time

	registered *Marker
}

// NewFileChannel returns a channel over the state directory dir.
func NewFileChannel(dir string) *FileChannel {
	return &FileChannel{dir: dir, now: time.Now}
}

// Dir returns the state directory.
func (c *FileChannel) Dir() string {
	return c.dir
}

// IgnoreNextCapture records req as the single pending suppression,
// replacing any earlier one.
func (c *FileChannel) IgnoreNextCapture(ctx context.Context, req IgnoreRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Kind == "" {
		req.Kind = ClipKindText
	}
	return c.writeJSON(ignoreFile, pendingRequest{IgnoreRequest: req, RequestedAt: c.now()})
}

// Pending returns the current request, if any. Expired requests are
// reported as absent.
func (c *FileChannel) Pending() (*IgnoreRequest, error) {
	var p pendingRequest
	ok, err := c.readJSON(ignoreFile, &p)
	if err != nil || !ok {
		return nil, err
	}
	if c.now().Sub(p.RequestedAt) > PendingTTL {
		return nil, nil
	}
	return &p.IgnoreRequest, nil
}

// Consume removes the pending request and reports whether it was meant for
// a capture of content. A request is matched by its hash when present,
// otherwise by the hash of its content.
func (c *FileChannel) Consume(content string) (bool, error) {
	req, err := c.Pending()
	// Drop the file even when it is unreadable so one bad write cannot
	// wedge the channel.
	if rmErr := c.remove(ignoreFile); rmErr != nil && err == nil {
		err = rmErr
	}
	if err != nil {
		return false, err
	}
	if req == nil {
		return false, nil
	}

	want := HashContent(content)
	if req.Hash != nil {
		return *req.Hash == want, nil
	}
	return HashContent(req.Content) == want, nil
}

// Register announces a running host with the given pid that polls every
// interval.
func (c *FileChannel) Register(pid int, interval time.Duration) error {
	now := c.now()
	m := Marker{PID: pid, StartedAt: now, UpdatedAt: now, Interval: interval}
	if err := c.writeJSON(markerFile, m); err != nil {
		return err
	}
	c.registered = &m
	return nil
}

// Heartbeat refreshes the marker written by Register.
func (c *FileChannel) Heartbeat() error {
	if c.registered == nil {
		return errors.New("host is not registered")
	}
	c.registered.UpdatedAt = c.now()
	return c.writeJSON(markerFile, *c.registered)
}

// Unregister removes the runtime marker and any pending request.
func (c *FileChannel) Unregister() error {
	c.registered = nil
	if err := c.remove(ignoreFile); err != nil {
		return err
	}
	return c.remove(markerFile)
}

// Running reports whether a host has registered in the state directory and
// sent a heartbeat recently.
func (c *FileChannel) Running() bool {
	var m Marker
	ok, err := c.readJSON(markerFile, &m)
	if err != nil || !ok {
		return false
	}
	return c.now().Sub(m.UpdatedAt) <= m.staleAfter()
}

func (c *FileChannel) writeJSON(name string, v interface{}) error {
	if err := os.MkdirAll(c.dir, 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, name+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(c.dir, name))
}

func (c *FileChannel) readJSON(name string, v interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func (c *FileChannel) remove(name string) error {
	err := os.Remove(filepath.Join(c.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
