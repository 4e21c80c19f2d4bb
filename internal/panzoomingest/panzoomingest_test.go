package panzoomingest

import (
	"strings"
	"testing"
)

const testDoc = `<recording>
  <event timestamp="1.5">
    <viewBox>0 0 1600 1200</viewBox>
  </event>
  <event timestamp="3.25">
    <viewBox>100 100 800 600</viewBox>
  </event>
</recording>`

func TestIngest(t *testing.T) {
	panzooms, err := Ingest(strings.NewReader(testDoc))
	if err != nil {
		t.Fatal(err)
	}
	if len(panzooms) != 2 {
		t.Fatalf("got %d panzooms, want 2", len(panzooms))
	}
	if panzooms[0].T != 1.5 || panzooms[0].ViewBox != "0 0 1600 1200" {
		t.Fatalf("panzooms[0] = %+v, unexpected", panzooms[0])
	}
	if panzooms[1].T != 3.25 || panzooms[1].ViewBox != "100 100 800 600" {
		t.Fatalf("panzooms[1] = %+v, unexpected", panzooms[1])
	}
}

func TestIngestMissingTimestamp(t *testing.T) {
	_, err := Ingest(strings.NewReader(`<recording><event><viewBox>0 0 1 1</viewBox></event></recording>`))
	if err == nil {
		t.Fatal("expected error for event missing timestamp")
	}
}
