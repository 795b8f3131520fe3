package drift

import (
	"testing"
)

func TestModeForPredicate(t *testing.T) {
	tests := []struct {
		name string
		a    Activity
		want Mode
	}{
		{"nothing live", Activity{}, ModeIdle},
		{"dragging", Activity{Dragging: true}, ModeHigh},
		{"coasting", Activity{Coasting: true}, ModeHigh},
		{"snapping", Activity{Snapping: true}, ModeHigh},
		{"animating", Activity{Animating: true}, ModeHigh},
		{"playing only", Activity{Playing: true}, ModeLow},
		{"playing while coasting", Activity{Playing: true, Coasting: true}, ModeHigh},
		{"playing while animating", Activity{Playing: true, Animating: true}, ModeHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModeFor(tt.a); got != tt.want {
				t.Errorf("ModeFor(%+v) = %v, want %v", tt.a, got, tt.want)
			}
		})
	}
}

func TestSchedulerIdleNeverSteps(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	if s.Mode() != ModeIdle {
		t.Fatalf("fresh scheduler mode = %v, want idle", s.Mode())
	}
	for i := 0; i < 10; i++ {
		if s.ShouldStep(at(i * 16)) {
			t.Fatal("idle scheduler should never step")
		}
	}
}

func TestSchedulerHighStepsEveryFrame(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	s.Reevaluate(Activity{Dragging: true}, at(0))
	for i := 0; i < 10; i++ {
		if !s.ShouldStep(at(i * 16)) {
			t.Fatal("high-frequency scheduler should step every frame")
		}
	}
}

func TestSchedulerLowCadence(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	s.Reevaluate(Activity{Playing: true}, at(0))
	if s.Mode() != ModeLow {
		t.Fatalf("mode = %v, want low", s.Mode())
	}

	// Entering low fires immediately, then holds for the interval.
	if !s.ShouldStep(at(0)) {
		t.Fatal("first low-cadence frame should step")
	}
	if s.ShouldStep(at(16)) || s.ShouldStep(at(48)) {
		t.Error("frames inside the 67ms interval should be skipped")
	}
	if !s.ShouldStep(at(70)) {
		t.Error("frame after the interval should step")
	}
	if s.ShouldStep(at(80)) {
		t.Error("timer should re-arm after a low-cadence step")
	}
}

func TestSchedulerModeTransitionsResetSchedule(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	s.Reevaluate(Activity{Playing: true}, at(0))
	s.ShouldStep(at(0)) // consume; next slot at 67ms

	// Activity escalates: previous low schedule is cancelled.
	s.Reevaluate(Activity{Playing: true, Coasting: true}, at(10))
	if !s.ShouldStep(at(16)) {
		t.Error("high mode should step regardless of the old low timer")
	}

	// Back to low: timer arms fresh from the transition.
	s.Reevaluate(Activity{Playing: true}, at(100))
	if !s.ShouldStep(at(100)) {
		t.Error("re-entering low should fire immediately")
	}
}

func TestSchedulerReevaluateSameModeKeepsTimer(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	s.Reevaluate(Activity{Playing: true}, at(0))
	s.ShouldStep(at(0))

	// Reevaluating with unchanged activity must not reset the pending slot.
	s.Reevaluate(Activity{Playing: true}, at(30))
	if s.ShouldStep(at(40)) {
		t.Error("same-mode reevaluate should keep the existing timer")
	}
	if !s.ShouldStep(at(70)) {
		t.Error("original timer slot should still fire")
	}
}

func TestSchedulerDetachIsIdempotent(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	s.Reevaluate(Activity{Dragging: true}, at(0))

	s.Detach()
	s.Detach()
	if s.Mode() != ModeIdle {
		t.Errorf("detached mode = %v, want idle", s.Mode())
	}
	if s.ShouldStep(at(16)) {
		t.Error("detached scheduler should never step")
	}

	// Reevaluate after detach stays cancelled.
	s.Reevaluate(Activity{Dragging: true}, at(32))
	if s.Mode() != ModeIdle || s.ShouldStep(at(48)) {
		t.Error("detached scheduler should ignore reevaluation")
	}
}
