package codec

import (
	"testing"
	"time"

	"github.com/reoring/fieldshape"
)

func TestParseDateTime_RoundTrip(t *testing.T) {
	in := "2025-01-01T00:00:00Z"
	got, err := ParseDateTime(in)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	if out := FormatDateTime(got); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestParseDateTime_NaiveAccepted_AwareRejects(t *testing.T) {
	if _, err := ParseDateTime("2025-01-01T10:30:00"); err != nil {
		t.Fatalf("naive datetime should parse: %v", err)
	}
	if _, err := ParseAwareDateTime("2025-01-01T10:30:00"); err == nil {
		t.Fatalf("aware datetime must require an offset")
	}
	if _, err := ParseAwareDateTime("2025-01-01T10:30:00+09:00"); err != nil {
		t.Fatalf("aware datetime with offset: %v", err)
	}
}

func TestParseDateTimeAndDuration(t *testing.T) {
	if _, err := ParseDate("2025-02-30"); err == nil {
		t.Fatalf("expected invalid date")
	}
	if _, err := ParseTime("12:34"); err != nil {
		t.Fatalf("time: %v", err)
	}
	d, err := ParseDuration("90")
	if err != nil || d != 90*time.Second {
		t.Fatalf("seconds duration: %v %v", d, err)
	}
	d, err = ParseDuration("1h30m")
	if err != nil || d != 90*time.Minute {
		t.Fatalf("go duration: %v %v", d, err)
	}
}

func TestCheck_FormatsByKind(t *testing.T) {
	cases := []struct {
		kind *fieldshape.Kind
		ok   string
		bad  string
	}{
		{fieldshape.KindEmail, "a@example.com", "not-an-email"},
		{fieldshape.KindURL, "https://example.com/x", "example"},
		{fieldshape.KindUUID, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "zzz"},
		{fieldshape.KindIPv4, "10.0.0.1", "::1"},
		{fieldshape.KindIPv6, "::1", "10.0.0.1"},
		{fieldshape.KindIPv4Interface, "10.0.0.1/24", "10.0.0.1"},
		{fieldshape.KindDate, "2024-12-31", "31/12/2024"},
	}
	for _, c := range cases {
		if err := Check(c.kind, c.ok); err != nil {
			t.Errorf("%s: %q should pass: %v", c.kind, c.ok, err)
		}
		if err := Check(c.kind, c.bad); err == nil {
			t.Errorf("%s: %q should fail", c.kind, c.bad)
		}
	}
	if err := Check(fieldshape.KindString, "anything"); err != nil {
		t.Fatalf("plain strings have no format: %v", err)
	}
}
