package comments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-domtmpl/pkg/locale"
	"github.com/goliatone/go-domtmpl/pkg/source"
)

func sampleThread() Thread {
	return Thread{
		PostId: "post-1",
		Config: Config{IsReadable: true, IsWritable: true},
		List: []Comment{
			{Id: "1", Visible: true, Author: "Ann", When: "2024-01-02T10:00:00Z", Text: "Hello <em>world</em><script>alert(1)</script>"},
			{Id: "2", Visible: true, Author: "<b>Bob</b>", When: "2024-03-05T08:07:00Z", Text: "<p>Second</p>"},
		},
	}
}

func TestRenderThread(t *testing.T) {
	t.Parallel()

	w := New(nil)
	frag, err := w.Render(sampleThread(), "https://example.com/post.html?x=1#top")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := frag.String()

	wantFragments := []string{
		"<h1>2 comments</h1>",
		`By Ann on <a href="https://example.com/post.html?x=1#c1" name="c1">January 2, 2024 at 10:00</a>`,
		`By &lt;b&gt;Bob&lt;/b&gt; on <a href="https://example.com/post.html?x=1#c2" name="c2">March 5, 2024 at 08:07</a>`,
		`<div class="commentText">Hello <em>world</em></div>`,
		`<div class="commentText"><p>Second</p></div>`,
		`<form id="commentform">`,
	}
	for _, want := range wantFragments {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"No comments", "1 comment<", "<script", "<jv", "jv-href", "cond="} {
		if strings.Contains(out, unwanted) {
			t.Fatalf("unexpected %q in output\n%s", unwanted, out)
		}
	}
	if strings.Index(out, "#c1") > strings.Index(out, "#c2") {
		t.Fatalf("comments rendered out of order\n%s", out)
	}
}

func TestRenderCountsAndForm(t *testing.T) {
	t.Parallel()

	w := New(nil, WithLanguage(locale.Spanish))

	empty := Thread{Config: Config{IsReadable: true}}
	frag, err := w.Render(empty, "https://example.com/p")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := frag.String()
	if !strings.Contains(out, "Ningún comentario") || strings.Contains(out, "<form") {
		t.Fatalf("unexpected empty thread output\n%s", out)
	}

	single := Thread{Config: Config{IsReadable: true}, List: []Comment{{Id: "9", Author: "Eva", When: "2024-09-01T00:00:00Z", Text: "x"}}}
	frag, err = w.Render(single, "https://example.com/p")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out = frag.String()
	if !strings.Contains(out, "1 de setiembre de 2024 a las 00:00") {
		t.Fatalf("expected Spanish date\n%s", out)
	}
}

func TestRenderUnavailable(t *testing.T) {
	t.Parallel()

	thread := sampleThread()
	thread.Config.IsReadable = false
	if _, err := New(nil).Render(thread, ""); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	t.Parallel()

	set := source.New(source.WithStrings(map[string]string{
		"thread": `<ul><jv-for items="comments" item="c"><li jv-id="c.anchor"><jv>c.author</jv></li></jv-for></ul>`,
	}))
	w := New(nil, WithTemplates(set), WithTemplateName("thread"))
	frag, err := w.Render(sampleThread(), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<ul><li id="c1">Ann</li><li id="c2">&lt;b&gt;Bob&lt;/b&gt;</li></ul>`
	if diff := cmp.Diff(want, frag.String()); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := New(nil).Context(Thread{List: []Comment{{Id: "7", Author: "A", When: "w", Text: "t"}}}, "/page")
	want := map[string]any{
		"has_none_count":     false,
		"has_singular_count": true,
		"has_plural_count":   false,
		"count":              1,
		"can_add_comment":    false,
	}
	for key, value := range want {
		if got := ctx[key]; got != value {
			t.Fatalf("%s: expected %v, got %v", key, value, got)
		}
	}
	list, ok := ctx["comments"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("unexpected comments list %#v", ctx["comments"])
	}
	entry, _ := list[0].(interface{ Lookup(string) (any, bool) })
	if url, _ := entry.Lookup("url"); url != "/page#c7" {
		t.Fatalf("unexpected url %v", url)
	}
}

func newAPI(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL + "/_/")
}

func TestLoadFetchesAndRenders(t *testing.T) {
	t.Parallel()

	var gotPost string
	client := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/_/list" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotPost = body["PostId"]
		_ = json.NewEncoder(w).Encode(sampleThread())
	})

	frag, err := New(client).Load(context.Background(), "post-1", "https://example.com/p")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotPost != "post-1" {
		t.Fatalf("expected post id to be sent, got %q", gotPost)
	}
	if !strings.Contains(frag.String(), "<h1>2 comments</h1>") {
		t.Fatalf("unexpected output\n%s", frag.String())
	}
}

func TestLoadReportsStatus(t *testing.T) {
	t.Parallel()

	client := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	if _, err := New(client).Load(context.Background(), "p", ""); !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
}

func TestSubmitMessages(t *testing.T) {
	t.Parallel()

	var visible atomic.Bool
	visible.Store(true)
	client := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_/add" {
			http.NotFound(w, r)
			return
		}
		var in NewComment
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if in.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(Comment{Id: "3", Visible: visible.Load(), Author: in.Author, Text: in.Text})
	})
	w := New(client, WithLanguage(locale.Galician))

	msg, err := w.Submit(context.Background(), NewComment{PostId: "p", Author: "A", Text: "hi"})
	if err != nil || msg != "" {
		t.Fatalf("expected published comment without message, got %q, %v", msg, err)
	}

	visible.Store(false)
	msg, err = w.Submit(context.Background(), NewComment{PostId: "p", Author: "A", Text: "hi"})
	if err != nil || msg != locale.Message(locale.Galician, locale.CommentPostedAsDraft) {
		t.Fatalf("expected draft notice, got %q, %v", msg, err)
	}

	msg, err = w.Submit(context.Background(), NewComment{PostId: "p", Author: "A", Text: "fail"})
	if !errors.Is(err, ErrStatus) || msg != locale.Message(locale.Galician, locale.ErrorPostingComment) {
		t.Fatalf("expected error message, got %q, %v", msg, err)
	}
}
