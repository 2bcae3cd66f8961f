package tools_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sage-agent/sage/tools"
)

const fetchPage = `<html><body>
<h1>Title</h1>
<div class="content"><p>First paragraph.</p><a href="/next">next</a></div>
</body></html>`

func newFetchServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(fetchPage))
		case "/binary":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte{0x00, 0x01})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWebFetch_TextExtraction(t *testing.T) {
	srv := newFetchServer(t)
	def := tools.NewWebFetchTool()

	out, err := callTool(t, def, tools.WebFetchInput{URL: srv.URL + "/", Selector: "h1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "Title" {
		t.Fatalf("got %q", out)
	}
}

func TestWebFetch_LinksResolvedAgainstBase(t *testing.T) {
	srv := newFetchServer(t)
	def := tools.NewWebFetchTool()

	out, err := callTool(t, def, tools.WebFetchInput{URL: srv.URL + "/", Extract: "links"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var links []string
	if err := json.Unmarshal([]byte(out), &links); err != nil {
		t.Fatalf("links output not JSON: %v", err)
	}
	if len(links) != 1 || links[0] != srv.URL+"/next" {
		t.Fatalf("got %v", links)
	}
}

func TestWebFetch_SelectorMiss_IsMessageNotError(t *testing.T) {
	srv := newFetchServer(t)
	def := tools.NewWebFetchTool()

	out, err := callTool(t, def, tools.WebFetchInput{URL: srv.URL + "/", Selector: "table.missing"})
	if err != nil {
		t.Fatalf("selector miss should not be an error: %v", err)
	}
	if !strings.Contains(out, "no elements found matching selector") {
		t.Fatalf("got %q", out)
	}
}

func TestWebFetch_NonHTMLContentType_Error(t *testing.T) {
	srv := newFetchServer(t)
	def := tools.NewWebFetchTool()

	_, err := callTool(t, def, tools.WebFetchInput{URL: srv.URL + "/binary"})
	if err == nil {
		t.Fatal("expected content-type rejection")
	}
}

func TestWebFetch_Status404_Error(t *testing.T) {
	srv := newFetchServer(t)
	def := tools.NewWebFetchTool()

	_, err := callTool(t, def, tools.WebFetchInput{URL: srv.URL + "/nope"})
	if err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestWebFetch_InvalidURL_Error(t *testing.T) {
	def := tools.NewWebFetchTool()
	for _, bad := range []string{"", "ftp://example.com/x", "not a url", "file:///etc/passwd"} {
		if _, err := callTool(t, def, tools.WebFetchInput{URL: bad}); err == nil {
			t.Fatalf("expected rejection for %q", bad)
		}
	}
}

func TestWebFetch_UnknownExtractMode_Error(t *testing.T) {
	srv := newFetchServer(t)
	def := tools.NewWebFetchTool()

	_, err := callTool(t, def, tools.WebFetchInput{URL: srv.URL + "/", Extract: "attributes"})
	if err == nil {
		t.Fatal("expected error for unknown extract mode")
	}
}
