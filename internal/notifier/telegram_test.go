package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"TickerScope/internal/apperr"
	"TickerScope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(baseURL string) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "")
	n.BaseURL = baseURL
	n.Backoff = time.Millisecond
	return n
}

func TestSend_PostsHTMLMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	require.NoError(t, newTestNotifier(srv.URL).Send(context.Background(), "<b>hi</b>"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "<b>hi</b>", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSend_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		kind   apperr.Kind
	}{
		{http.StatusTooManyRequests, apperr.KindRateLimited},
		{http.StatusBadRequest, apperr.KindNetwork},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestNotifier(srv.URL).Send(context.Background(), "x")
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

func TestSendWithRetry_RecoversAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	require.NoError(t, newTestNotifier(srv.URL).SendWithRetry(context.Background(), "x", 3))
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestNotifier(srv.URL).SendWithRetry(context.Background(), "x", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 retries exhausted")
	assert.Equal(t, apperr.KindNetwork, apperr.KindOf(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendWithRetry_ChunksDeliveredOnce(t *testing.T) {
	var (
		mu        sync.Mutex
		calls     int
		delivered []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		delivered = append(delivered, body["text"])
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	text := strings.Repeat(strings.Repeat("x", 99)+"\n", 60)
	parts := splitMessage(text, maxMessageLen)
	require.Len(t, parts, 2)

	require.NoError(t, newTestNotifier(srv.URL).SendWithRetry(context.Background(), text, 3))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, calls)
	assert.Equal(t, parts, delivered)
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))

	text := strings.Repeat("line\n", 5)
	parts := splitMessage(text, 12)
	assert.Equal(t, text, strings.Join(parts, ""))
	for _, p := range parts {
		assert.LessOrEqual(t, len([]rune(p)), 12)
		assert.True(t, strings.HasSuffix(p, "\n"))
	}

	long := strings.Repeat("x", 25)
	parts = splitMessage(long, 10)
	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, parts)
}

func TestStartPolling_HandlesConfiguredChatOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		replies []string
		polled  atomic.Int32
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if polled.Add(1) == 1 {
				fmt.Fprint(w, `{"ok":true,"result":[
					{"update_id":7,"message":{"text":" /analyze aapl ","chat":{"id":42}}},
					{"update_id":8,"message":{"text":"/analyze msft","chat":{"id":99}}}
				]}`)
				return
			}
			assert.Equal(t, "9", r.URL.Query().Get("offset"))
			cancel()
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			mu.Lock()
			replies = append(replies, body["text"])
			mu.Unlock()
			fmt.Fprint(w, `{"ok":true}`)
		}
	}))
	defer srv.Close()

	var handled []string
	done := make(chan struct{})
	go func() {
		newTestNotifier(srv.URL).StartPolling(ctx, func(_ context.Context, cmd string) string {
			handled = append(handled, cmd)
			return "ack " + cmd
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
	assert.Equal(t, []string{"/analyze aapl"}, handled)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ack /analyze aapl"}, replies)
}

func TestFormatDigest(t *testing.T) {
	at := time.Date(2024, 5, 14, 16, 30, 0, 0, time.UTC)
	out := FormatDigest(at, []DigestEntry{
		{Ticker: "AAPL", Report: &model.AnalysisReport{
			Ticker:       "AAPL",
			WindowDays:   30,
			CurrentPrice: 189.5,
			Trend:        model.TrendGrowing,
			Sentiment:    model.SentimentResult{Classification: model.SentimentNeutral},
		}},
		{Ticker: "ZZZZ", Err: errors.New(`ticker "ZZZZ" not found`)},
	})

	assert.True(t, strings.HasPrefix(out, "<b>TickerScope digest</b> | 2024-05-14 16:30\n2 tickers, 1 failed\n"))
	assert.Contains(t, out, "<b>TickerScope report: AAPL</b>")
	assert.Contains(t, out, "189.50")
	assert.Contains(t, out, "<b>ZZZZ</b>: Error: ticker &#34;ZZZZ&#34; not found")
}

func TestFormatHelp(t *testing.T) {
	out := FormatHelp(30)
	assert.Contains(t, out, "/analyze TICKER [DAYS] (default 30 days)")
	assert.Contains(t, out, "/search QUERY")
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.SendWithRetry(context.Background(), "digest", 3))
}
