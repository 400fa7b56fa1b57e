package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	c.Observe(Run{Platform: "ios", Created: 3, Unchanged: 2, Duration: time.Second})
	c.Observe(Run{Platform: "ios", Removed: 1, Duration: time.Second, Err: errors.New("boom")})

	if e, g := 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("ios", StatusSuccess)); e != g {
		t.Errorf("successful runs: expected %v, got %v", e, g)
	}

	if e, g := 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("ios", StatusError)); e != g {
		t.Errorf("failed runs: expected %v, got %v", e, g)
	}

	if e, g := 3.0, testutil.ToFloat64(c.Images.WithLabelValues("ios", ActionCreated)); e != g {
		t.Errorf("created images: expected %v, got %v", e, g)
	}

	if e, g := 0.0, testutil.ToFloat64(c.Images.WithLabelValues("ios", ActionRemoved)); e != g {
		t.Errorf("removed images of a failed run: expected %v, got %v", e, g)
	}

	filename := filepath.Join(t.TempDir(), "assetgen.prom")

	if err := c.WriteToTextfile(filename); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !strings.Contains(string(data), `assetgen_images_total{action="created",platform="ios"} 3`) {
		t.Errorf("unexpected textfile content:\n%s", data)
	}
}
