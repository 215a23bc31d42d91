package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

var fixedNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func gb18030(t *testing.T, s string) []byte {
	t.Helper()
	b, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func testRSS(now time.Time) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="gb2312"?>
<rss version="2.0">
<channel>
<title>水木社区-十大热门话题</title>
<link>http://www.newsmth.net</link>
<item>
  <title> 第一个话题 </title>
  <link>http://www.newsmth.net/nForum/article/Python/1</link>
  <description><![CDATA[<p>hello &amp; <b>world</b></p>]]></description>
  <pubDate>%s</pubDate>
</item>
<item>
  <title>第二个话题</title>
  <link>http://www.newsmth.net/nForum/article/Joke/2</link>
  <description>没有时间</description>
</item>
</channel>
</rss>`, now.Add(-2*time.Hour).Format(time.RFC1123))
}

func newTestFetcher(topTenURL, boardURL, charset string) *FeedFetcher {
	f := NewFeedFetcher(&Config{
		TopTenURL:   topTenURL,
		BoardURL:    boardURL,
		FeedCharset: charset,
		HTTPTimeout: 5 * time.Second,
	}, discardLogger())
	f.now = func() time.Time { return fixedNow }
	return f
}

func TestFeedFetcher_TopTen(t *testing.T) {
	body := gb18030(t, testRSS(fixedNow))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nForum/rss/topten", r.URL.Path)
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	f := newTestFetcher(srv.URL+"/nForum/rss/topten", srv.URL+"/nForum/rss/board-%s", "gb18030")
	items := f.TopTen(context.Background())

	require.Len(t, items, 2)
	assert.Equal(t, FeedItem{
		Title:       "第一个话题",
		Link:        "http://www.newsmth.net/nForum/article/Python/1",
		Description: "hello & world",
		Since:       "2小时前",
	}, items[0])
	assert.Equal(t, "第二个话题", items[1].Title)
	assert.Equal(t, "没有时间", items[1].Description)
	assert.Empty(t, items[1].Since)
}

func TestFeedFetcher_Board(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write(gb18030(t, testRSS(fixedNow)))
	}))
	defer srv.Close()

	f := newTestFetcher(srv.URL+"/topten", srv.URL+"/nForum/rss/board-%s", "gb18030")
	items := f.Board(context.Background(), "Python")

	assert.Equal(t, "/nForum/rss/board-Python", gotPath)
	assert.Len(t, items, 2)
}

func TestFeedFetcher_UTF8Charset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0"><channel><title>t</title>
<item><title>中文标题</title><link>http://example.com/1</link></item>
</channel></rss>`)
	}))
	defer srv.Close()

	f := newTestFetcher(srv.URL, srv.URL+"/%s", "utf-8")
	items := f.TopTen(context.Background())

	require.Len(t, items, 1)
	assert.Equal(t, "中文标题", items[0].Title)
}

func TestFeedFetcher_FailuresReturnEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		charset string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			charset: "gb18030",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			charset: "gb18030",
		},
		{
			name: "malformed xml",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, "this is not a feed <<<")
			},
			charset: "gb18030",
		},
		{
			name: "unknown charset",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, testRSS(fixedNow))
			},
			charset: "no-such-charset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			f := newTestFetcher(srv.URL, srv.URL+"/board-%s", tt.charset)
			items := f.TopTen(context.Background())

			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestFeedFetcher_UnreachableReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	unreachable := srv.URL
	srv.Close()

	f := newTestFetcher(unreachable, unreachable+"/board-%s", "gb18030")
	assert.Empty(t, f.TopTen(context.Background()))
	assert.Empty(t, f.Fetch(context.Background(), "::not a url"))
}

func TestDecodeFeedBody(t *testing.T) {
	src := gb18030(t, `<?xml version="1.0" encoding="gb2312"?><rss><title>水木</title></rss>`)

	got, err := decodeFeedBody(src, "gb18030")
	require.NoError(t, err)
	assert.Equal(t, `<?xml version="1.0" encoding="utf-8"?><rss><title>水木</title></rss>`, string(got))

	same, err := decodeFeedBody([]byte("plain"), "")
	require.NoError(t, err)
	assert.Equal(t, "plain", string(same))

	_, err = decodeFeedBody(src, "klingon")
	assert.ErrorIs(t, err, errUnknownCharset)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "a < b and c", plainText("<div>a &lt; b\n\n <i>and</i> c</div>"))
	assert.Equal(t, "", plainText(""))
}
