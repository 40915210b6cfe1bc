package obs

import (
	"bytes"
	"context"
	"coordinates-service/internal/platform/logger"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestTimeLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	ctx := WithRequestID(context.Background(), "abc")

	func() (err error) {
		defer Time(ctx, "test.op")(&err)
		return errors.New("boom")
	}()

	out := buf.String()
	if !strings.Contains(out, "req_id=abc") || !strings.Contains(out, "op=test.op") || !strings.Contains(out, "err=boom") {
		t.Fatalf("unexpected log line %q", out)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}
