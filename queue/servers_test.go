package queue

import (
	"errors"
	"math"
	"testing"
)

func TestServerPool_AcquireUntilFull(t *testing.T) {
	// GIVEN a pool of 2 idle servers
	p, err := NewServerPool(2)
	if err != nil {
		t.Fatalf("NewServerPool: %v", err)
	}

	// WHEN servers are acquired beyond capacity
	id0, ok0 := p.Acquire(0)
	id1, ok1 := p.Acquire(0)
	_, ok2 := p.Acquire(0)

	// THEN the two servers are handed out lowest-id first and the third
	// acquire reports no idle server
	if !ok0 || id0 != 0 {
		t.Errorf("first Acquire: got (%d, %v), want (0, true)", id0, ok0)
	}
	if !ok1 || id1 != 1 {
		t.Errorf("second Acquire: got (%d, %v), want (1, true)", id1, ok1)
	}
	if ok2 {
		t.Errorf("third Acquire on a full pool succeeded")
	}
	if p.BusyCount() != 2 {
		t.Errorf("BusyCount: got %d, want 2", p.BusyCount())
	}
	if p.BusyCount() > p.Size() {
		t.Errorf("busy count %d exceeds pool size %d", p.BusyCount(), p.Size())
	}
}

func TestServerPool_ReleaseAccumulatesBusyTime(t *testing.T) {
	// GIVEN a server assigned at t=2 and released at t=5, then assigned
	// at t=7 and released at t=11
	p, _ := NewServerPool(1)
	p.Acquire(2)
	if err := p.Release(0, 5); err != nil {
		t.Fatalf("Release: %v", err)
	}
	p.Acquire(7)
	if err := p.Release(0, 11); err != nil {
		t.Fatalf("Release: %v", err)
	}

	// THEN busy time is the sum of both assignment spans
	if got := p.BusyTime(0); math.Abs(got-7) > 1e-12 {
		t.Errorf("BusyTime: got %v, want 7", got)
	}

	// AND utilisation over a 14-day run is busy/total
	utils := p.Utilisations(14)
	if math.Abs(utils[0]-0.5) > 1e-12 {
		t.Errorf("Utilisation: got %v, want 0.5", utils[0])
	}
}

func TestServerPool_WrapUpCountsOpenAssignments(t *testing.T) {
	// GIVEN one server mid-service since t=2 and one idle since t=4
	p, _ := NewServerPool(2)
	p.Acquire(2)
	p.Acquire(3)
	if err := p.Release(1, 4); err != nil {
		t.Fatalf("Release: %v", err)
	}

	// WHEN the run wraps up at t=10
	p.WrapUp(10)

	// THEN the busy server's open span counts up to the wrap-up point
	// and the idle server is untouched
	if got := p.BusyTime(0); math.Abs(got-8) > 1e-12 {
		t.Errorf("BusyTime(0) after WrapUp: got %v, want 8", got)
	}
	if got := p.BusyTime(1); math.Abs(got-1) > 1e-12 {
		t.Errorf("BusyTime(1) after WrapUp: got %v, want 1", got)
	}
	if p.BusyCount() != 1 {
		t.Errorf("WrapUp changed busy state: BusyCount got %d, want 1", p.BusyCount())
	}

	// AND a later release adds only time beyond the wrap-up point
	if err := p.Release(0, 13); err != nil {
		t.Fatalf("Release after WrapUp: %v", err)
	}
	if got := p.BusyTime(0); math.Abs(got-11) > 1e-12 {
		t.Errorf("BusyTime(0) after late release: got %v, want 11", got)
	}
}

func TestServerPool_UtilisationsZeroSpan(t *testing.T) {
	// GIVEN a pool with accumulated busy time but a zero observed span
	p, _ := NewServerPool(2)
	p.Acquire(0)
	p.Release(0, 1)

	// THEN utilisations report zero instead of dividing by zero
	for id, u := range p.Utilisations(0) {
		if u != 0 {
			t.Errorf("Utilisations(0)[%d]: got %v, want 0", id, u)
		}
	}
}

func TestServerPool_ReleaseIdleServer_Fails(t *testing.T) {
	p, _ := NewServerPool(2)

	err := p.Release(1, 3)

	var invalid *InvalidReleaseError
	if !errors.As(err, &invalid) {
		t.Fatalf("Release of idle server: got %v, want InvalidReleaseError", err)
	}
	if invalid.Server != 1 {
		t.Errorf("InvalidReleaseError.Server: got %d, want 1", invalid.Server)
	}
}

func TestServerPool_ReleaseOutOfRange_Fails(t *testing.T) {
	p, _ := NewServerPool(1)

	if err := p.Release(5, 0); err == nil {
		t.Error("Release of out-of-range server id succeeded")
	}
	if err := p.Release(-1, 0); err == nil {
		t.Error("Release of negative server id succeeded")
	}
}

func TestNewServerPool_RejectsNonPositiveSize(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := NewServerPool(n); err == nil {
			t.Errorf("NewServerPool(%d) succeeded", n)
		}
	}
}
