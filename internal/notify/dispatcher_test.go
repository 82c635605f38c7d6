package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/palnotify/internal/metrics"
	"github.com/mcoot/palnotify/internal/model"
	"github.com/mcoot/palnotify/internal/testutil"
)

type fakeSink struct {
	name     string
	err      error
	messages []string
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Send(_ context.Context, message string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}

type DispatcherSuite struct {
	suite.Suite
	alice model.Player
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.alice = model.Player{Name: "Alice", PlayerUID: "112233", SteamID: "76561198000000001"}
}

func (s *DispatcherSuite) newDispatcher(webhooks []Notifier, broadcast Notifier) *Dispatcher {
	templates := Templates{
		Join:           "{name} joined",
		Leave:          "{name} left",
		JoinBroadcast:  "welcome {name}",
		LeaveBroadcast: "goodbye {name}",
	}
	return NewDispatcher(templates, webhooks, broadcast, testutil.NopLogger(), metrics.New())
}

func (s *DispatcherSuite) TestDeliversToEverySink() {
	a := &fakeSink{name: "discord"}
	b := &fakeSink{name: "line"}
	d := s.newDispatcher([]Notifier{a, b}, nil)

	d.PlayerJoined(context.Background(), s.alice)

	s.Equal([]string{"Alice joined"}, a.messages)
	s.Equal([]string{"Alice joined"}, b.messages)
}

func (s *DispatcherSuite) TestFailingSinkDoesNotBlockOthers() {
	failing := &fakeSink{name: "discord", err: errors.New("webhook down")}
	healthy := &fakeSink{name: "line"}
	d := s.newDispatcher([]Notifier{failing, healthy}, nil)

	d.PlayerLeft(context.Background(), s.alice)

	s.Empty(failing.messages)
	s.Equal([]string{"Alice left"}, healthy.messages)
}

func (s *DispatcherSuite) TestBroadcastUsesItsOwnTemplate() {
	webhook := &fakeSink{name: "discord"}
	broadcast := &fakeSink{name: "broadcast"}
	d := s.newDispatcher([]Notifier{webhook}, broadcast)

	d.PlayerJoined(context.Background(), s.alice)

	s.Equal([]string{"Alice joined"}, webhook.messages)
	s.Equal([]string{"welcome Alice"}, broadcast.messages)
}

func (s *DispatcherSuite) TestNoSinksIsANoOp() {
	d := s.newDispatcher(nil, nil)

	d.PlayerJoined(context.Background(), s.alice)
	d.PlayerLeft(context.Background(), s.alice)

	s.Equal(0, d.SinkCount())
}

func (s *DispatcherSuite) TestSinkCount() {
	d := s.newDispatcher([]Notifier{&fakeSink{name: "discord"}}, &fakeSink{name: "broadcast"})

	s.Equal(2, d.SinkCount())
}
