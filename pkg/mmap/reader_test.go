package mmap

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/testutil"
)

type ReaderSuite struct {
	testutil.FileSuite
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderSuite))
}

func (s *ReaderSuite) TestMapsWholeFile() {
	content := bytes.Repeat([]byte("RRF2"), 5000)
	r, err := NewReader(s.CreateTempFile("whole.rrd", content))
	s.Require().NoError(err)
	defer r.Close()

	s.Equal(len(content), r.Len())
	s.Equal(content, r.Bytes())

	read, pages := r.Stats()
	s.EqualValues(len(content), read)
	s.EqualValues((len(content)+os.Getpagesize()-1)/os.Getpagesize(), pages)
}

func (s *ReaderSuite) TestStream() {
	r, err := NewReader(s.CreateTempFile("stream.rrd", []byte("payload")))
	s.Require().NoError(err)
	defer r.Close()

	got, err := io.ReadAll(r.NewStream())
	s.Require().NoError(err)
	s.Equal("payload", string(got))
}

func (s *ReaderSuite) TestEmptyFile() {
	r, err := NewReader(s.CreateTempFile("empty.rrd", nil))
	s.Require().NoError(err)
	defer r.Close()

	s.Zero(r.Len())
	got, err := io.ReadAll(r.NewStream())
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *ReaderSuite) TestMissingFile() {
	_, err := NewReader(s.Path("missing.rrd"))
	s.True(errors.IsType(err, errors.ErrorTypeFileOpenFailure))
}

func (s *ReaderSuite) TestCloseTwice() {
	r, err := NewReader(s.CreateTempFile("close.rrd", []byte("x")))
	s.Require().NoError(err)
	s.NoError(r.Close())
	s.NoError(r.Close())
	s.Zero(r.Len())
}
