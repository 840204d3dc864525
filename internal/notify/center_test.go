package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mangestic/ctfctl/internal/dependencies/mocks"
)

type CenterSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	center *Center
}

func TestCenterSuite(t *testing.T) {
	suite.Run(t, new(CenterSuite))
}

func (s *CenterSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.center = NewCenter(s.clock, 0)
}

func (s *CenterSuite) TestStartsEmpty() {
	s.Nil(s.center.Current())
}

func (s *CenterSuite) TestInfoShowsMessage() {
	s.center.Info("Login berhasil!")

	msg := s.center.Current()
	s.Require().NotNil(msg)
	s.Equal("Login berhasil!", msg.Text)
	s.Equal(KindInfo, msg.Kind)
}

func (s *CenterSuite) TestErrorShowsMessage() {
	s.center.Error("Gagal login")

	msg := s.center.Current()
	s.Require().NotNil(msg)
	s.Equal(KindError, msg.Kind)
}

func (s *CenterSuite) TestMessageExpiresAfterTTL() {
	s.center.Info("hello")

	s.clock.Advance(DefaultTTL - time.Millisecond)
	s.NotNil(s.center.Current())

	s.clock.Advance(time.Millisecond)
	s.Nil(s.center.Current())
}

func (s *CenterSuite) TestNewMessageReplacesCurrent() {
	s.center.Info("first")
	s.center.Error("second")

	msg := s.center.Current()
	s.Require().NotNil(msg)
	s.Equal("second", msg.Text)
	s.Equal(KindError, msg.Kind)
}

func (s *CenterSuite) TestReplacementRestartsTimer() {
	s.center.Info("first")

	// Most of the first message's lifetime passes before the second shows
	s.clock.Advance(DefaultTTL - time.Millisecond)
	s.center.Info("second")

	// The second message gets its own full lifetime
	s.clock.Advance(DefaultTTL - time.Millisecond)
	msg := s.center.Current()
	s.Require().NotNil(msg)
	s.Equal("second", msg.Text)

	s.clock.Advance(time.Millisecond)
	s.Nil(s.center.Current())
}

func (s *CenterSuite) TestClearRemovesImmediately() {
	s.center.Info("hello")
	s.center.Clear()
	s.Nil(s.center.Current())
}

func (s *CenterSuite) TestClearThenShowGetsFullLifetime() {
	s.center.Info("first")
	s.center.Clear()
	s.center.Info("second")

	s.clock.Advance(DefaultTTL - time.Millisecond)
	s.NotNil(s.center.Current())

	s.clock.Advance(time.Millisecond)
	s.Nil(s.center.Current())
}

func (s *CenterSuite) TestCustomTTL() {
	center := NewCenter(s.clock, time.Second)
	center.Info("hello")

	s.clock.Advance(time.Second)
	s.Nil(center.Current())
}

func (s *CenterSuite) TestCurrentReturnsCopy() {
	s.center.Info("hello")

	msg := s.center.Current()
	msg.Text = "mutated"

	s.Equal("hello", s.center.Current().Text)
}
