package announcement_test

import (
	"testing"
	"time"

	"gymhub/internal/domain/announcement"
	"gymhub/internal/domain/user"
)

// TestAnnouncement_Validate tests validation of Announcement.
func TestAnnouncement_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ann     announcement.Announcement
		wantErr bool
	}{
		{
			name:    "valid for all roles",
			ann:     announcement.Announcement{Title: "Maintenance", Content: "Down at 2am", Audience: announcement.AudienceAll, Status: announcement.StatusDraft},
			wantErr: false,
		},
		{
			name:    "valid for one role with severity",
			ann:     announcement.Announcement{Title: "Payouts", Content: "New schedule", Audience: user.RoleVendor, Status: announcement.StatusPublished, Severity: announcement.SeverityWarning},
			wantErr: false,
		},
		{
			name:    "empty title",
			ann:     announcement.Announcement{Content: "x", Audience: announcement.AudienceAll, Status: announcement.StatusDraft},
			wantErr: true,
		},
		{
			name:    "empty content",
			ann:     announcement.Announcement{Title: "x", Audience: announcement.AudienceAll, Status: announcement.StatusDraft},
			wantErr: true,
		},
		{
			name:    "bad audience",
			ann:     announcement.Announcement{Title: "x", Content: "y", Audience: "everyone", Status: announcement.StatusDraft},
			wantErr: true,
		},
		{
			name:    "bad status",
			ann:     announcement.Announcement{Title: "x", Content: "y", Audience: announcement.AudienceAll, Status: "live"},
			wantErr: true,
		},
		{
			name:    "bad severity",
			ann:     announcement.Announcement{Title: "x", Content: "y", Audience: announcement.AudienceAll, Status: announcement.StatusDraft, Severity: "critical"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ann.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAnnouncement_Publish tests the draft -> published transition.
func TestAnnouncement_Publish(t *testing.T) {
	now := time.Now()
	a := announcement.Announcement{Title: "t", Content: "c", Audience: announcement.AudienceAll, Status: announcement.StatusDraft}
	if err := a.Publish(now); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if a.Status != announcement.StatusPublished || !a.PublishedAt.Equal(now) {
		t.Errorf("after Publish: status %q, at %v", a.Status, a.PublishedAt)
	}
	if err := a.Publish(now); err != announcement.ErrAlreadyLive {
		t.Errorf("second Publish error = %v, want ErrAlreadyLive", err)
	}
}

// TestAnnouncement_VisibleTo tests audience targeting.
func TestAnnouncement_VisibleTo(t *testing.T) {
	published := announcement.Announcement{Status: announcement.StatusPublished, Audience: user.RoleCustomer}
	if !published.VisibleTo(user.RoleCustomer) {
		t.Error("targeted role cannot see announcement")
	}
	if published.VisibleTo(user.RoleVendor) {
		t.Error("untargeted role sees announcement")
	}

	broadcast := announcement.Announcement{Status: announcement.StatusPublished, Audience: announcement.AudienceAll}
	for _, role := range user.ValidRoles {
		if !broadcast.VisibleTo(role) {
			t.Errorf("broadcast hidden from %q", role)
		}
	}

	draft := announcement.Announcement{Status: announcement.StatusDraft, Audience: announcement.AudienceAll}
	if draft.VisibleTo(user.RoleAdmin) {
		t.Error("draft visible before publish")
	}
}
