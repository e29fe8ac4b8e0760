package backup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/studiodesk/backup"
	"github.com/jacentio/studiodesk/store"
)

type fakeExporter struct {
	snaps []store.Snapshot
	err   error
}

func (f *fakeExporter) Export(_ context.Context, snap store.Snapshot) (backup.Manifest, error) {
	if f.err != nil {
		return backup.Manifest{}, f.err
	}
	f.snaps = append(f.snaps, snap)
	fp, err := backup.Fingerprint(snap)
	if err != nil {
		return backup.Manifest{}, err
	}
	return backup.Manifest{BackupID: backup.BackupID(snap.TakenAt), Fingerprint: fp}, nil
}

// --- Spec Tests ---

func TestSpec(t *testing.T) {
	tests := []struct {
		freq store.BackupFrequency
		want string
	}{
		{store.BackupDaily, "@daily"},
		{store.BackupWeekly, "@weekly"},
		{store.BackupMonthly, "@monthly"},
		{"", "@daily"},
		{"hourly", "@daily"},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			if got := backup.Spec(tt.freq); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// --- Run Tests ---

func TestRun_Exports(t *testing.T) {
	s := seededStore()
	exp := &fakeExporter{}

	res, err := backup.Run(context.Background(), s, exp, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Skipped {
		t.Fatalf("expected export, skipped: %s", res.Reason)
	}
	if len(exp.snaps) != 1 || len(exp.snaps[0].Clients) != 3 {
		t.Errorf("expected one snapshot with 3 clients, got %d exports", len(exp.snaps))
	}
}

func TestRun_SkipsWhenAutoBackupOff(t *testing.T) {
	s := seededStore()
	s.UpdateSystemSettings(store.SystemSettingsPatch{AutoBackup: store.Ptr(false)})
	exp := &fakeExporter{}

	res, err := backup.Run(context.Background(), s, exp, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Skipped {
		t.Error("expected skip")
	}
	if len(exp.snaps) != 0 {
		t.Errorf("expected no export, got %d", len(exp.snaps))
	}
}

func TestRun_SkipsUnchanged(t *testing.T) {
	s := seededStore()
	fp, _ := backup.Fingerprint(s.Snapshot())
	exp := &fakeExporter{}

	res, err := backup.Run(context.Background(), s, exp, fp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Skipped {
		t.Error("expected skip for unchanged contents")
	}
}

func TestRun_ExporterError(t *testing.T) {
	exp := &fakeExporter{err: errors.New("boom")}

	_, err := backup.Run(context.Background(), seededStore(), exp, "")
	if err == nil {
		t.Fatal("expected error")
	}
}

// --- Scheduler Tests ---

func TestScheduler_RunOnceRemembersFingerprint(t *testing.T) {
	s := seededStore()
	exp := &fakeExporter{}
	sc := backup.NewScheduler(s, exp, nil)

	if res, err := sc.RunOnce(context.Background()); err != nil || res.Skipped {
		t.Fatalf("expected first pass to export, got %+v %v", res, err)
	}
	if res, err := sc.RunOnce(context.Background()); err != nil || !res.Skipped {
		t.Fatalf("expected second pass to skip, got %+v %v", res, err)
	}

	s.AddClient(store.Client{Name: "New"})
	if res, err := sc.RunOnce(context.Background()); err != nil || res.Skipped {
		t.Fatalf("expected export after a change, got %+v %v", res, err)
	}
	if len(exp.snaps) != 2 {
		t.Errorf("expected 2 exports, got %d", len(exp.snaps))
	}
}

func TestScheduler_FollowsFrequency(t *testing.T) {
	s := seededStore()
	sc := backup.NewScheduler(s, &fakeExporter{}, nil)

	if err := sc.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sc.Stop(context.Background())

	if sc.Spec() != "@daily" {
		t.Errorf("expected '@daily', got %q", sc.Spec())
	}

	s.UpdateSystemSettings(store.SystemSettingsPatch{BackupFrequency: store.Ptr(store.BackupMonthly)})
	if sc.Spec() != "@monthly" {
		t.Errorf("expected '@monthly', got %q", sc.Spec())
	}

	s.AddClient(store.Client{Name: "Unrelated"})
	if sc.Spec() != "@monthly" {
		t.Errorf("expected schedule untouched by client writes, got %q", sc.Spec())
	}
}

func TestScheduler_StopUnsubscribes(t *testing.T) {
	s := seededStore()
	sc := backup.NewScheduler(s, &fakeExporter{}, nil)
	if err := sc.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sc.Stop(context.Background())

	s.UpdateSystemSettings(store.SystemSettingsPatch{BackupFrequency: store.Ptr(store.BackupWeekly)})
	if sc.Spec() != "@daily" {
		t.Errorf("expected stopped scheduler to keep '@daily', got %q", sc.Spec())
	}
}

// --- Handler Tests ---

func TestHandleScheduled(t *testing.T) {
	exp := &fakeExporter{}
	h := backup.NewHandler(seededStore(), exp, nil)

	if err := h.HandleScheduled(context.Background(), events.CloudWatchEvent{ID: "evt-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exp.snaps) != 1 {
		t.Errorf("expected 1 export, got %d", len(exp.snaps))
	}
}

func TestHandleScheduled_Disabled(t *testing.T) {
	s := seededStore()
	s.UpdateSystemSettings(store.SystemSettingsPatch{AutoBackup: store.Ptr(false)})
	exp := &fakeExporter{}
	h := backup.NewHandler(s, exp, nil)

	if err := h.HandleScheduled(context.Background(), events.CloudWatchEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exp.snaps) != 0 {
		t.Errorf("expected no export, got %d", len(exp.snaps))
	}
}

func TestHandleScheduled_PropagatesError(t *testing.T) {
	h := backup.NewHandler(seededStore(), &fakeExporter{err: errors.New("boom")}, nil)

	if err := h.HandleScheduled(context.Background(), events.CloudWatchEvent{}); err == nil {
		t.Error("expected error for Lambda retry")
	}
}
