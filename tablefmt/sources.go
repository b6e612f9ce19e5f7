// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tablefmt

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Sources reads records from a sequence of inputs. Each input is a
// local file path, "-" for stdin, or an http:// or https:// URL.
type Sources struct {
	// Paths is the list of inputs to read in.
	Paths []string

	// Schema is the layout shared by every input.
	Schema *Schema

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the input list is empty, it should be treated
	// as consisting of stdin.
	AllowStdin bool

	// Client fetches URL inputs. If nil, http.DefaultClient is
	// used.
	Client *http.Client

	// pos is the position of the next input to read from in Paths
	// when the current one is exhausted.
	pos int

	reader Reader
	path   string
	body   io.ReadCloser
	err    error
}

// IsURL reports whether path names a remote input.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Open opens a single input for reading. The context bounds URL
// fetches; it has no effect on local files.
func Open(ctx context.Context, client *http.Client, path string) (io.ReadCloser, error) {
	if !IsURL(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		return f, nil
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", path)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errors.Errorf("fetching %s: %s", path, resp.Status)
	}
	return resp.Body, nil
}

// Scan advances to the next record in the sequence of inputs and
// returns true if a record was read. The caller should use the Record
// method to get the record. If an I/O error occurs, or this reaches
// the end of the input sequence, it returns false and the caller
// should use the Err method to check for errors.
func (s *Sources) Scan(ctx context.Context) bool {
	if s.err != nil {
		return false
	}

	for {
		if s.body == nil {
			var path string
			if s.AllowStdin && len(s.Paths) == 0 && s.pos == 0 {
				path = "-"
			} else if s.pos < len(s.Paths) {
				path = s.Paths[s.pos]
			} else {
				// We're out of inputs.
				return false
			}
			s.pos++
			s.path = path
			if s.AllowStdin && path == "-" {
				s.body = io.NopCloser(os.Stdin)
			} else {
				body, err := Open(ctx, s.Client, path)
				if err != nil {
					s.err = err
					return false
				}
				s.body = body
			}
			s.reader.Reset(s.body, path, s.Schema)
		}

		if s.reader.Scan() {
			return true
		}
		err := s.reader.Err()
		s.body.Close()
		s.body = nil
		if err != nil {
			s.err = err
			return false
		}
	}
}

// Record returns the last record read, or an error if the record was
// malformed. Syntax errors are non-fatal.
func (s *Sources) Record() (*Record, error) {
	return s.reader.Record()
}

// Path returns the input the last record was read from.
func (s *Sources) Path() string {
	return s.path
}

// Err returns the first non-EOF I/O error that was encountered.
func (s *Sources) Err() error {
	return s.err
}

// Close releases the current input, if any. It is only needed when
// the caller stops before Scan returns false.
func (s *Sources) Close() error {
	if s.body == nil {
		return nil
	}
	err := s.body.Close()
	s.body = nil
	return err
}
