package records

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/cheggaaa/pb/v3"
	"github.com/matryer/try"
	log "github.com/sirupsen/logrus"
)

const (
	maxAttempts = 5 // number of times to retry a download
)

var schemes = []string{"http://", "https://", "file://"}

func isURL(source string) bool {
	for _, s := range schemes {
		if strings.HasPrefix(source, s) {
			return true
		}
	}
	return false
}

// Open returns a reader for a record source. The source is a local path
// or a file:// or http(s):// URL. Download progress is drawn on progress
// when it is not nil: a bar if the length is known, a spinner otherwise.
func Open(ctx context.Context, source string, progress io.Writer) (io.ReadCloser, error) {
	if !isURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open record file %s, error %w", source, err)
		}
		return f, nil
	}
	t := &http.Transport{}
	t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	c := &http.Client{Transport: t, Timeout: time.Second * 40}
	var res *http.Response
	err := try.Do(func(attempt int) (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return false, err
		}
		res, err = c.Do(req)
		if err == nil && res.StatusCode != http.StatusOK {
			res.Body.Close()
			err = fmt.Errorf("expected status code 200, got %d", res.StatusCode)
		}
		if err != nil {
			log.WithFields(log.Fields{"source": source, "attempt": attempt}).Warnf("failed to fetch records: %v", err)
		}
		return attempt < maxAttempts && ctx.Err() == nil, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch record file from %s, error %w", source, err)
	}
	if progress == nil {
		return res.Body, nil
	}
	if res.ContentLength > 0 {
		bar := pb.Full.New(0).SetTotal(res.ContentLength).SetWriter(progress).Start()
		return &progressReader{Reader: bar.NewProxyReader(res.Body), body: res.Body, done: func() { bar.Finish() }}, nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = progress
	s.Suffix = " " + source
	s.Start()
	return &progressReader{Reader: res.Body, body: res.Body, done: s.Stop}, nil
}

type progressReader struct {
	io.Reader
	body io.Closer
	done func()
}

func (p *progressReader) Close() error {
	p.done()
	return p.body.Close()
}
