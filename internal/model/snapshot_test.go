package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SnapshotSuite struct {
	suite.Suite
	at time.Time
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotSuite))
}

func (s *SnapshotSuite) SetupTest() {
	s.at = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *SnapshotSuite) snapshot(players ...Player) Snapshot {
	return NewSnapshot(players, s.at)
}

func player(name, uid, steamID string) Player {
	return Player{Name: name, PlayerUID: uid, SteamID: SteamID(steamID)}
}

// Snapshot accessor tests

func (s *SnapshotSuite) TestEmptySnapshot() {
	snap := s.snapshot()

	s.Equal(0, snap.Len())
	s.Empty(snap.Players())
	s.False(snap.Has("76561198000000001"))
}

func (s *SnapshotSuite) TestZeroValueSnapshot() {
	var snap Snapshot

	s.Equal(0, snap.Len())
	s.Empty(snap.Players())
	s.False(snap.Has("76561198000000001"))
}

func (s *SnapshotSuite) TestSnapshotAccessors() {
	snap := s.snapshot(
		player("Bob", "223344", "76561198000000002"),
		player("Alice", "112233", "76561198000000001"),
	)

	s.Equal(2, snap.Len())
	s.True(snap.Has("76561198000000001"))
	s.True(snap.Has("76561198000000002"))
	s.False(snap.Has("76561198000000003"))
	s.Equal(s.at, snap.TakenAt)
}

func (s *SnapshotSuite) TestPlayersSortedBySteamID() {
	snap := s.snapshot(
		player("Carol", "3", "76561198000000003"),
		player("Alice", "1", "76561198000000001"),
		player("Bob", "2", "76561198000000002"),
	)

	got := snap.Players()
	s.Len(got, 3)
	s.Equal("Alice", got[0].Name)
	s.Equal("Bob", got[1].Name)
	s.Equal("Carol", got[2].Name)
}

// Diff tests

func (s *SnapshotSuite) TestDiffNoChange() {
	snap := s.snapshot(
		player("Alice", "1", "76561198000000001"),
		player("Bob", "2", "76561198000000002"),
	)

	d := Diff(snap, snap)

	s.True(d.Empty())
	s.Empty(d.Joined)
	s.Empty(d.Left)
}

func (s *SnapshotSuite) TestDiffJoin() {
	prev := s.snapshot(player("Alice", "1", "76561198000000001"))
	curr := s.snapshot(
		player("Alice", "1", "76561198000000001"),
		player("Bob", "2", "76561198000000002"),
	)

	d := Diff(prev, curr)

	s.Len(d.Joined, 1)
	s.Equal("Bob", d.Joined[0].Name)
	s.Empty(d.Left)
}

func (s *SnapshotSuite) TestDiffLeave() {
	prev := s.snapshot(
		player("Alice", "1", "76561198000000001"),
		player("Bob", "2", "76561198000000002"),
	)
	curr := s.snapshot(player("Alice", "1", "76561198000000001"))

	d := Diff(prev, curr)

	s.Empty(d.Joined)
	s.Len(d.Left, 1)
	s.Equal("Bob", d.Left[0].Name)
}

func (s *SnapshotSuite) TestDiffJoinAndLeaveSameTick() {
	prev := s.snapshot(
		player("Alice", "1", "76561198000000001"),
		player("Bob", "2", "76561198000000002"),
	)
	curr := s.snapshot(
		player("Alice", "1", "76561198000000001"),
		player("Carol", "3", "76561198000000003"),
	)

	d := Diff(prev, curr)

	s.Len(d.Joined, 1)
	s.Equal(SteamID("76561198000000003"), d.Joined[0].SteamID)
	s.Len(d.Left, 1)
	s.Equal(SteamID("76561198000000002"), d.Left[0].SteamID)
}

func (s *SnapshotSuite) TestDiffNameChangeIsNotAnEvent() {
	prev := s.snapshot(player("Alice", "1", "76561198000000001"))
	curr := s.snapshot(player("Alyce", "1", "76561198000000001"))

	d := Diff(prev, curr)

	s.True(d.Empty())
}

func (s *SnapshotSuite) TestDiffFromEmpty() {
	prev := s.snapshot()
	curr := s.snapshot(
		player("Alice", "1", "76561198000000001"),
		player("Bob", "2", "76561198000000002"),
	)

	d := Diff(prev, curr)

	s.Len(d.Joined, 2)
	s.Empty(d.Left)
}

func (s *SnapshotSuite) TestDiffToEmpty() {
	prev := s.snapshot(
		player("Alice", "1", "76561198000000001"),
		player("Bob", "2", "76561198000000002"),
	)
	curr := s.snapshot()

	d := Diff(prev, curr)

	s.Empty(d.Joined)
	s.Len(d.Left, 2)
}

func (s *SnapshotSuite) TestDiffJoinedAndLeftDisjoint() {
	prev := s.snapshot(
		player("Alice", "1", "76561198000000001"),
		player("Bob", "2", "76561198000000002"),
		player("Carol", "3", "76561198000000003"),
	)
	curr := s.snapshot(
		player("Bob", "2", "76561198000000002"),
		player("Carol", "3", "76561198000000003"),
		player("Dave", "4", "76561198000000004"),
	)

	d := Diff(prev, curr)

	left := make(map[SteamID]bool)
	for _, p := range d.Left {
		left[p.SteamID] = true
	}
	for _, p := range d.Joined {
		s.False(left[p.SteamID], "steamid %s appears in both joined and left", p.SteamID)
	}
}

func (s *SnapshotSuite) TestDiffSymmetry() {
	a := s.snapshot(
		player("Alice", "1", "76561198000000001"),
		player("Bob", "2", "76561198000000002"),
	)
	b := s.snapshot(
		player("Bob", "2", "76561198000000002"),
		player("Carol", "3", "76561198000000003"),
	)

	forward := Diff(a, b)
	backward := Diff(b, a)

	s.Equal(forward.Joined, backward.Left)
	s.Equal(forward.Left, backward.Joined)
}

func (s *SnapshotSuite) TestDiffResultsSortedBySteamID() {
	prev := s.snapshot()
	curr := s.snapshot(
		player("Zed", "26", "76561198000000026"),
		player("Alice", "1", "76561198000000001"),
		player("Mallory", "13", "76561198000000013"),
	)

	d := Diff(prev, curr)

	s.Len(d.Joined, 3)
	s.Equal(SteamID("76561198000000001"), d.Joined[0].SteamID)
	s.Equal(SteamID("76561198000000013"), d.Joined[1].SteamID)
	s.Equal(SteamID("76561198000000026"), d.Joined[2].SteamID)
}
