package notify_test

import (
	"bytes"
	"testing"

	"taskdeck/internal/notify"
)

func TestText(t *testing.T) {
	tests := []struct {
		category notify.Category
		success  bool
		want     string
	}{
		{notify.Created, true, "Successfully created!"},
		{notify.Created, false, "Failed to create."},
		{notify.Updated, true, "Successfully updated!"},
		{notify.Updated, false, "Failed to update."},
		{notify.Deleted, true, "Successfully deleted!"},
		{notify.Deleted, false, "Failed to delete."},
		{notify.Login, true, "Login successful!"},
		{notify.Login, false, "Something went wrong!"},
		{notify.Category("fetch"), false, ""},
	}
	for _, tt := range tests {
		if got := notify.Text(tt.category, tt.success); got != tt.want {
			t.Errorf("Text(%s, %t) = %q, want %q", tt.category, tt.success, got, tt.want)
		}
		if got := (notify.Signal{Category: tt.category, Success: tt.success}).Text(); got != tt.want {
			t.Errorf("Signal.Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestToaster_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	toaster := notify.NewToaster(&out, &errOut, false)

	toaster.Notify(notify.Signal{Category: notify.Created, Success: true})
	toaster.Notify(notify.Signal{Category: notify.Deleted, Success: false})
	toaster.Notify(notify.Signal{Category: "unknown", Success: true})

	if out.String() != "Successfully created!\n" {
		t.Errorf("unexpected stdout %q", out.String())
	}
	if errOut.String() != "Failed to delete.\n" {
		t.Errorf("unexpected stderr %q", errOut.String())
	}
}

func TestToaster_Quiet(t *testing.T) {
	var out, errOut bytes.Buffer
	toaster := notify.NewToaster(&out, &errOut, true)

	toaster.Notify(notify.Signal{Category: notify.Login, Success: true})
	toaster.Notify(notify.Signal{Category: notify.Login, Success: false})

	if out.Len() != 0 {
		t.Errorf("expected quiet stdout, got %q", out.String())
	}
	if errOut.String() != "Something went wrong!\n" {
		t.Errorf("failures must still be shown, got %q", errOut.String())
	}
}

func TestRelay_Set(t *testing.T) {
	first := &notify.Recorder{}
	second := &notify.Recorder{}
	relay := notify.NewRelay(first)

	relay.Notify(notify.Signal{Category: notify.Created, Success: true})
	previous := relay.Set(second)
	relay.Notify(notify.Signal{Category: notify.Updated, Success: true})

	if previous != first {
		t.Error("expected Set to return the previous target")
	}
	if len(first.Signals()) != 1 || len(second.Signals()) != 1 {
		t.Errorf("expected one signal each, got %d and %d", len(first.Signals()), len(second.Signals()))
	}

	relay.Set(nil)
	relay.Notify(notify.Signal{Category: notify.Deleted, Success: true})
	if len(second.Signals()) != 1 {
		t.Error("expected nil target to discard")
	}
}

func TestRecorder_Last(t *testing.T) {
	rec := &notify.Recorder{}
	if _, ok := rec.Last(); ok {
		t.Fatal("expected no signal")
	}
	rec.Notify(notify.Signal{Category: notify.Created, Success: true})
	rec.Notify(notify.Signal{Category: notify.Deleted, Success: false})

	last, ok := rec.Last()
	if !ok || last != (notify.Signal{Category: notify.Deleted, Success: false}) {
		t.Errorf("unexpected last signal %+v", last)
	}
}

func TestFunc(t *testing.T) {
	var got []notify.Signal
	var n notify.Notifier = notify.Func(func(s notify.Signal) { got = append(got, s) })
	n.Notify(notify.Signal{Category: notify.Created})
	if len(got) != 1 {
		t.Errorf("expected one signal, got %d", len(got))
	}
	notify.Discard.Notify(notify.Signal{Category: notify.Created})
}
