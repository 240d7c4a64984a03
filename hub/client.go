// Package hub is a client for the HuggingFace Hub API: it lists repository
// trees and fetches individual files.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// TagRepoNotFound marks listing failures for repositories that do not exist.
	TagRepoNotFound = goerr.NewTag("repository_not_found")
	// TagRepoAccess marks HTTP or transport failures while talking to the Hub.
	TagRepoAccess = goerr.NewTag("repository_access")
)

const defaultBaseURL = "https://huggingface.co"

const userAgent = "onnxget/1"

// Client talks to the Hub API. The zero value is not usable; construct with
// NewClient. BaseURL may be overridden before use (tests point it at a local
// server).
type Client struct {
	BaseURL string
	Token   string

	httpc *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Token:   token,
		httpc: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConns:          64,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

func (c *Client) client() *http.Client {
	if c.httpc == nil {
		return http.DefaultClient
	}
	return c.httpc
}

func (c *Client) addAuth(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("User-Agent", userAgent)
}

func (c *Client) treeURL(repo RepoRef, prefix string) string {
	return fmt.Sprintf("%s/api/models/%s/tree/%s/%s",
		c.BaseURL, repo.FullName(), url.PathEscape(repo.ref()), escapePath(prefix))
}

func (c *Client) resolveURL(repo RepoRef, path string) string {
	return fmt.Sprintf("%s/%s/resolve/%s/%s",
		c.BaseURL, repo.FullName(), url.PathEscape(repo.ref()), escapePath(path))
}

// escapePath escapes each path segment separately so slashes survive.
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i := range segs {
		segs[i] = url.PathEscape(segs[i])
	}
	return strings.Join(segs, "/")
}

// ListFiles returns every file in the repository, recursing into
// directories. Order follows the API listing.
func (c *Client) ListFiles(ctx context.Context, repo RepoRef) ([]File, error) {
	var files []File
	if err := c.walkTree(ctx, repo, "", &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Client) walkTree(ctx context.Context, repo RepoRef, prefix string, out *[]File) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.treeURL(repo, prefix), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build tree request", goerr.T(TagRepoAccess))
	}
	c.addAuth(req)

	resp, err := c.client().Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to reach the Hub",
			goerr.V("repo", repo.FullName()), goerr.T(TagRepoAccess))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return goerr.New("repository not found",
			goerr.V("repo", repo.FullName()), goerr.T(TagRepoNotFound))
	case http.StatusUnauthorized, http.StatusForbidden:
		return goerr.New("repository requires a token or accepted terms, set HF_TOKEN or --token",
			goerr.V("repo", repo.FullName()), goerr.V("status", resp.Status), goerr.T(TagRepoAccess))
	default:
		return goerr.New("tree API request failed",
			goerr.V("repo", repo.FullName()), goerr.V("status", resp.Status), goerr.T(TagRepoAccess))
	}

	var nodes []File
	if err := json.NewDecoder(resp.Body).Decode(&nodes); err != nil {
		return goerr.Wrap(err, "failed to decode tree response",
			goerr.V("repo", repo.FullName()), goerr.T(TagRepoAccess))
	}

	for _, n := range nodes {
		switch n.Type {
		case "directory", "tree":
			if err := c.walkTree(ctx, repo, n.Path, out); err != nil {
				return err
			}
		default:
			*out = append(*out, n)
		}
	}
	return nil
}
