package hub_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"onnxget/hub"
)

func newTreeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/owner/model/tree/main/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/models/owner/model/tree/main/":
			fmt.Fprint(w, `[
				{"type":"file","path":"config.json","size":120,"oid":"a1"},
				{"type":"directory","path":"onnx"},
				{"type":"file","path":"tokenizer.json","size":500,"oid":"a2"}
			]`)
		case "/api/models/owner/model/tree/main/onnx":
			fmt.Fprint(w, `[
				{"type":"file","path":"onnx/model_int8.onnx","size":0,"oid":"a3","lfs":{"oid":"sha","size":2048}}
			]`)
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestParseRepo(t *testing.T) {
	repo, err := hub.ParseRepo("Xenova/flan-t5-small")
	gt.NoError(t, err)
	gt.Equal(t, repo.Owner, "Xenova")
	gt.Equal(t, repo.Name, "flan-t5-small")
	gt.Equal(t, repo.FullName(), "Xenova/flan-t5-small")

	_, err = hub.ParseRepo("no-slash")
	gt.Error(t, err)
	_, err = hub.ParseRepo("too/many/parts")
	gt.Error(t, err)
}

func TestListFilesRecursesDirectories(t *testing.T) {
	srv := newTreeServer(t)
	client := hub.NewClient("")
	client.BaseURL = srv.URL

	files, err := client.ListFiles(context.Background(), hub.RepoRef{Owner: "owner", Name: "model"})
	gt.NoError(t, err)
	gt.Equal(t, hub.Paths(files), []string{
		"config.json",
		"onnx/model_int8.onnx",
		"tokenizer.json",
	})

	// LFS size backs an absent tree size.
	gt.Equal(t, files[1].ByteSize(), int64(2048))
}

func TestListFilesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	client := hub.NewClient("")
	client.BaseURL = srv.URL

	_, err := client.ListFiles(context.Background(), hub.RepoRef{Owner: "no", Name: "repo"})
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, hub.TagRepoNotFound))
}

func TestListFilesHTTPError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", status)
		}))

		client := hub.NewClient("")
		client.BaseURL = srv.URL

		_, err := client.ListFiles(context.Background(), hub.RepoRef{Owner: "o", Name: "m"})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, hub.TagRepoAccess))
		srv.Close()
	}
}

func TestListFilesSendsToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	client := hub.NewClient("secret")
	client.BaseURL = srv.URL

	_, err := client.ListFiles(context.Background(), hub.RepoRef{Owner: "o", Name: "m"})
	gt.NoError(t, err)
	gt.Equal(t, gotAuth, "Bearer secret")
}

func TestSelect(t *testing.T) {
	files := []hub.File{
		{Path: "a.onnx", Size: 1},
		{Path: "b.onnx", Size: 2},
		{Path: "config.json", Size: 3},
	}
	got := hub.Select(files, []string{"config.json", "a.onnx", "ghost.onnx"})
	gt.Equal(t, hub.Paths(got), []string{"config.json", "a.onnx"})
}
