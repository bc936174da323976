package clock

import (
	"reflect"
	"testing"
	"time"
)

func TestFakeAdvance(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var got []string
	f.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	f.AfterFunc(10*time.Millisecond, func() {
		got = append(got, "a")
		f.AfterFunc(5*time.Millisecond, func() { got = append(got, "a2") })
	})
	stopped := f.AfterFunc(15*time.Millisecond, func() { got = append(got, "never") })
	if !stopped.Stop() {
		t.Fatalf("Stop() = false, want true")
	}

	f.Advance(12 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("after 12ms ran %v", got)
	}
	f.Advance(10 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"a", "a2", "b"}) {
		t.Fatalf("after 22ms ran %v", got)
	}
	if f.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", f.Pending())
	}
	if stopped.Stop() {
		t.Fatalf("second Stop() = true, want false")
	}
	if want := time.Unix(0, 0).Add(22 * time.Millisecond); !f.Now().Equal(want) {
		t.Fatalf("Now() = %v, want %v", f.Now(), want)
	}
}
