package viewmodel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jfmyers9/profiles/internal/artist"
)

func populated(name string) artist.Result {
	return artist.Result{
		View: artist.ViewModel{
			Artist:    &artist.Artist{ID: name + "-id", Name: name, Followers: 250000},
			TopTracks: []artist.Track{{ID: "t1", Name: "Track 1"}},
			Albums:    []artist.Album{{ID: "a1", Name: "Album 1"}},
		},
	}
}

func failed(kind artist.Kind) artist.Result {
	return artist.Result{Err: &artist.Failure{Kind: kind, Err: errors.New("boom")}}
}

func TestBeginPublishesLoading(t *testing.T) {
	s := New(0)

	s.Complete(context.Background(), s.Begin("queen"), populated("Queen"))
	if s.Current().Artist == nil {
		t.Fatal("expected populated view before second search")
	}

	ticket := s.Begin("beatles")
	vm := s.Current()

	if !vm.Loading {
		t.Error("expected loading view after Begin")
	}
	if vm.Artist != nil {
		t.Error("expected previous artist to be discarded")
	}
	if vm.Query != "beatles" {
		t.Errorf("Query = %q, want beatles", vm.Query)
	}
	if vm.Generation != ticket.Generation {
		t.Errorf("Generation = %d, want %d", vm.Generation, ticket.Generation)
	}
	if ticket.Generation != 2 {
		t.Errorf("ticket generation = %d, want 2", ticket.Generation)
	}
}

func TestCompleteStates(t *testing.T) {
	tests := []struct {
		name       string
		result     artist.Result
		wantArtist bool
		wantErr    artist.Kind
	}{
		{"populated", populated("Queen"), true, 0},
		{"not found is empty", failed(artist.KindNotFound), false, 0},
		{"aggregation failure", failed(artist.KindAggregation), false, artist.KindAggregation},
		{"auth failure", failed(artist.KindAuth), false, artist.KindAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(0)
			ticket := s.Begin("queen")

			if !s.Complete(context.Background(), ticket, tt.result) {
				t.Fatal("Complete returned false for the current ticket")
			}

			vm := s.Current()
			if vm.Loading {
				t.Error("loading must be cleared once a result is published")
			}
			if (vm.Artist != nil) != tt.wantArtist {
				t.Errorf("Artist present = %v, want %v", vm.Artist != nil, tt.wantArtist)
			}

			var gotKind artist.Kind
			if vm.Err != nil {
				gotKind = vm.Err.Kind
			}
			if gotKind != tt.wantErr {
				t.Errorf("error kind = %v, want %v", gotKind, tt.wantErr)
			}
			if vm.Query != "queen" {
				t.Errorf("Query = %q, want queen", vm.Query)
			}
		})
	}
}

func TestCompleteDiscardsSupersededResult(t *testing.T) {
	s := New(0)

	first := s.Begin("queen")
	second := s.Begin("beatles")

	if s.Complete(context.Background(), first, populated("Queen")) {
		t.Error("superseded ticket must not publish")
	}
	if vm := s.Current(); !vm.Loading || vm.Query != "beatles" {
		t.Errorf("stale result replaced the newer loading view: %+v", vm)
	}

	if !s.Complete(context.Background(), second, populated("The Beatles")) {
		t.Fatal("current ticket failed to publish")
	}
	if name := s.Current().Artist.Name; name != "The Beatles" {
		t.Errorf("Artist = %q, want The Beatles", name)
	}
}

func TestSettleDelayRaceKeepsNewestSearch(t *testing.T) {
	s := New(30 * time.Millisecond)

	first := s.Begin("queen")
	second := s.Begin("beatles")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Complete(context.Background(), second, populated("The Beatles"))
	}()
	go func() {
		defer wg.Done()
		// Older search finishes later but must still lose
		time.Sleep(10 * time.Millisecond)
		s.Complete(context.Background(), first, populated("Queen"))
	}()
	wg.Wait()

	vm := s.Current()
	if vm.Artist == nil || vm.Artist.Name != "The Beatles" {
		t.Errorf("expected newest search to win, got %+v", vm.Artist)
	}
}

func TestSettleDelay(t *testing.T) {
	delay := 20 * time.Millisecond
	s := New(delay)
	ticket := s.Begin("queen")

	start := time.Now()
	s.Complete(context.Background(), ticket, populated("Queen"))

	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("Complete returned after %v, want at least %v", elapsed, delay)
	}
}

func TestCompleteCancelled(t *testing.T) {
	s := New(time.Hour)
	ticket := s.Begin("queen")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if s.Complete(ctx, ticket, populated("Queen")) {
		t.Error("cancelled Complete must not publish")
	}
	if !s.Current().Loading {
		t.Error("view should still be loading after a cancelled search")
	}
}

func TestSubscribe(t *testing.T) {
	s := New(0)
	ch, cancel := s.Subscribe()

	ticket := s.Begin("queen")
	select {
	case vm := <-ch:
		if !vm.Loading {
			t.Error("first notification should be the loading view")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for loading notification")
	}

	s.Complete(context.Background(), ticket, populated("Queen"))
	select {
	case vm := <-ch:
		if vm.Artist == nil || vm.Artist.Name != "Queen" {
			t.Errorf("unexpected notification: %+v", vm)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for populated notification")
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}

func TestSubscribeKeepsLatest(t *testing.T) {
	s := New(0)
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Begin("queen")
	s.Begin("beatles")

	vm := <-ch
	if vm.Query != "beatles" {
		t.Errorf("Query = %q, want beatles", vm.Query)
	}
}
