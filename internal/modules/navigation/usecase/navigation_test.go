package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	navout "pulse/internal/modules/navigation/adapter/out"
	navdto "pulse/internal/modules/navigation/dto"
	"pulse/internal/modules/navigation/service"
	"pulse/internal/modules/navigation/usecase"
	"pulse/internal/platform/clock"
)

func TestOnboardingSurvivesRestartWithSQLite(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), ".pulse", "pulse.db")
	ctx := context.Background()

	store, err := navout.NewSQLiteFlagStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	uc := usecase.NewInteractor(service.NewNavigationService(store, clock.NewManualScheduler(), 0, nil))
	out, err := uc.Start(ctx, navdto.StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.Screen != "onboarding" || out.Page.Title == "" || out.PageCount != 3 {
		t.Fatalf("unexpected first-run state: %+v", out)
	}
	for i := 0; i < 3; i++ {
		if out, err = uc.Advance(ctx, navdto.AdvanceInput{}); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if out.Screen != "dashboard" || !out.OnboardingComplete {
		t.Fatalf("expected dashboard after onboarding, got %+v", out)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := navout.NewSQLiteFlagStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	sched := clock.NewManualScheduler()
	uc = usecase.NewInteractor(service.NewNavigationService(reopened, sched, time.Second, nil))

	changed := make(chan navdto.StateOutput, 1)
	out, err = uc.Start(ctx, navdto.StartInput{OnChange: func(s navdto.StateOutput) { changed <- s }})
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if out.Screen != "initializing" || !out.Initializing {
		t.Fatalf("expected initializing on restart, got %+v", out)
	}
	sched.Advance(time.Second)
	got := <-changed
	if got.Screen != "dashboard" {
		t.Fatalf("returning user must land on dashboard, got %s", got.Screen)
	}

	reset, err := uc.ResetSession(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset.Screen != "initializing" {
		t.Fatalf("reset must return to initializing, got %s", reset.Screen)
	}
	done, err := uc.OnStartupComplete(ctx)
	if err != nil {
		t.Fatalf("startup complete: %v", err)
	}
	if done.Screen != "onboarding" || done.Phase != "page0" {
		t.Fatalf("expected onboarding page0 after reset, got %+v", done)
	}
}
