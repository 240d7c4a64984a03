package hub

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Status is the per-file result of a download attempt.
type Status string

const (
	StatusDownloaded     Status = "downloaded"
	StatusAlreadyPresent Status = "already-present"
	StatusFailed         Status = "failed"
)

// Outcome records what happened to one file of a batch.
type Outcome struct {
	Path      string // repo-relative path
	LocalPath string
	Status    Status
	Err       error // set only for StatusFailed
}

// Summary aggregates a batch of outcomes.
type Summary struct {
	Downloaded int
	Skipped    int
	Failed     int
}

func (s Summary) Total() int {
	return s.Downloaded + s.Skipped + s.Failed
}

// Summarize counts outcomes by status.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusDownloaded:
			s.Downloaded++
		case StatusAlreadyPresent:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// LocalPaths returns the local paths of every materialized file, present
// already or newly downloaded.
func LocalPaths(outcomes []Outcome) []string {
	var out []string
	for _, o := range outcomes {
		if o.Status == StatusDownloaded || o.Status == StatusAlreadyPresent {
			out = append(out, o.LocalPath)
		}
	}
	return out
}

// Downloader materializes repository files under a local root. Failures are
// isolated per file: the batch always runs to the end and every file gets an
// Outcome.
type Downloader struct {
	Client *Client

	// Concurrency bounds parallel fetches. Zero or one means strictly
	// sequential, matching list order.
	Concurrency int

	// ShowProgress draws a per-file progress bar. Disabled automatically
	// when fetching concurrently, bars would interleave.
	ShowProgress bool
}

// Fetch downloads files into root, preserving repo-relative paths. Files
// already on disk are skipped by existence alone, no integrity check. The
// returned slice has one outcome per input file, in input order.
func (d *Downloader) Fetch(ctx context.Context, repo RepoRef, files []File, root string) []Outcome {
	outcomes := make([]Outcome, len(files))

	if d.Concurrency <= 1 {
		for i, f := range files {
			outcomes[i] = d.fetchOne(ctx, repo, f, root, d.ShowProgress)
		}
		return outcomes
	}

	g := new(errgroup.Group)
	g.SetLimit(d.Concurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			outcomes[i] = d.fetchOne(ctx, repo, f, root, false)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, failures live in outcomes
	return outcomes
}

func (d *Downloader) fetchOne(ctx context.Context, repo RepoRef, f File, root string, progress bool) Outcome {
	dst := filepath.Join(root, filepath.FromSlash(f.Path))

	if _, err := os.Stat(dst); err == nil {
		slog.Info("Already exists", "path", f.Path)
		return Outcome{Path: f.Path, LocalPath: dst, Status: StatusAlreadyPresent}
	}

	if err := d.download(ctx, repo, f, dst, progress); err != nil {
		slog.Warn("Failed to download", "path", f.Path, "error", err)
		return Outcome{Path: f.Path, LocalPath: dst, Status: StatusFailed, Err: err}
	}

	return Outcome{Path: f.Path, LocalPath: dst, Status: StatusDownloaded}
}

func (d *Downloader) download(ctx context.Context, repo RepoRef, f File, dst string, progress bool) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create directory")
	}

	slog.Info("Downloading", "path", f.Path, "size", f.ByteSize())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.Client.resolveURL(repo, f.Path), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build download request")
	}
	d.Client.addAuth(req)

	resp, err := d.Client.client().Do(req)
	if err != nil {
		return goerr.Wrap(err, "download request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return goerr.New("download failed", goerr.V("status", resp.Status))
	}

	tmp := dst + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return goerr.Wrap(err, "failed to create file")
	}

	body := io.Reader(resp.Body)
	var bar *pb.ProgressBar
	if progress && f.ByteSize() > 0 {
		bar = pb.Full.Start64(f.ByteSize())
		body = bar.NewProxyReader(resp.Body)
	}

	_, cerr := io.Copy(out, body)
	if bar != nil {
		bar.Finish()
	}
	if cerr != nil {
		out.Close()
		os.Remove(tmp)
		return goerr.Wrap(cerr, "failed to write file")
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return goerr.Wrap(err, "failed to close file")
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return goerr.Wrap(err, "failed to move file to destination")
	}
	return nil
}
