package application_test

import (
	"testing"
	"time"

	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/recruitment/application"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestUpdateStatus_Transitions(t *testing.T) {
	const (
		clicked      = application.ApplicationStatusClicked
		applied      = application.ApplicationStatusApplied
		interviewing = application.ApplicationStatusInterviewing
		offered      = application.ApplicationStatusOffered
		rejected     = application.ApplicationStatusRejected
	)
	cases := []struct {
		from, to application.ApplicationStatus
		ok       bool
	}{
		{clicked, applied, true},
		{clicked, rejected, true},
		{clicked, interviewing, false},
		{clicked, offered, false},
		{applied, interviewing, true},
		{applied, rejected, true},
		{applied, clicked, false},
		{interviewing, offered, true},
		{interviewing, rejected, true},
		{offered, rejected, false},
		{rejected, applied, false},
		{rejected, rejected, false},
	}
	for _, c := range cases {
		app := application.NewClick("a1", "u1", "j1", now)
		app.Status = c.from

		err := app.UpdateStatus(c.to, now.Add(time.Hour))
		if c.ok {
			if err != nil {
				t.Errorf("%s -> %s: unexpected error %v", c.from, c.to, err)
				continue
			}
			if app.Status != c.to || app.StatusChangedAt == nil || !app.UpdatedAt.Equal(now.Add(time.Hour)) {
				t.Errorf("%s -> %s: not applied: %+v", c.from, c.to, app)
			}
			continue
		}
		if !errx.IsCode(err, application.CodeInvalidStatusTransition) {
			t.Errorf("%s -> %s: err = %v, want INVALID_STATUS_TRANSITION", c.from, c.to, err)
		}
		if app.Status != c.from {
			t.Errorf("%s -> %s: status changed on rejected transition", c.from, c.to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := application.ParseStatus(" interviewing "); !ok || s != application.ApplicationStatusInterviewing {
		t.Errorf("ParseStatus = %q, %v", s, ok)
	}
	if _, ok := application.ParseStatus("HIRED"); ok {
		t.Error("unknown status accepted")
	}
}

func TestBelongsTo(t *testing.T) {
	app := application.NewClick("a1", "u1", "j1", now)
	if !app.BelongsTo("u1") || app.BelongsTo("u2") || app.BelongsTo("") {
		t.Error("ownership check wrong")
	}
}
