package util

import (
	"testing"
	"time"
)

func TestWeekStartMidWeek(t *testing.T) {
	// Wednesday 2024-10-09 -> Monday 2024-10-07
	wed := time.Date(2024, 10, 9, 15, 30, 0, 0, time.UTC)
	got := WeekStart(wed)
	want := time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWeekStartMonday(t *testing.T) {
	mon := time.Date(2024, 10, 7, 9, 0, 0, 0, time.UTC)
	if got := WeekStart(mon); !got.Equal(time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("monday should map to itself, got %v", got)
	}
}

func TestWeekStartSunday(t *testing.T) {
	// Sunday 2024-10-13 belongs to the week starting Monday 2024-10-07
	sun := time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC)
	if got := WeekStart(sun); !got.Equal(time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("sunday should fold back to monday, got %v", got)
	}
}

func TestISOWeekYearBoundary(t *testing.T) {
	// Monday 2014-12-29 is ISO week 1 of 2015
	y, w := ISOWeek(time.Date(2014, 12, 29, 0, 0, 0, 0, time.UTC))
	if y != 2015 || w != 1 {
		t.Fatalf("expected 2015-W1, got %d-W%d", y, w)
	}
	// Friday 2021-01-01 is ISO week 53 of 2020
	y, w = ISOWeek(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	if y != 2020 || w != 53 {
		t.Fatalf("expected 2020-W53, got %d-W%d", y, w)
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-11")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if FormatDate(d) != "2024-03-11" {
		t.Fatalf("round trip mismatch: %s", FormatDate(d))
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime("1728555010")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}
