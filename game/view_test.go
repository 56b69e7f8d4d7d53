package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicView(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t, Options{Lives: 2, TurnSeconds: 15}, "ana", "bruno")
	room := rig.room

	t.Run("lobby hides turn state", func(t *testing.T) {
		got := room.publicView()
		want := RoomView{
			Code:    "AB2CD",
			OwnerID: "p1",
			Status:  "lobby",
			Players: []PlayerView{
				{ID: "p1", Nickname: "ana", Lives: 2},
				{ID: "p2", Nickname: "bruno", Lives: 2},
			},
			Options: Options{Lives: 2, TurnSeconds: 15},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("playing exposes prompt and deadline", func(t *testing.T) {
		rig.oracle.On("NextPrompt").Return("ar")
		require.NoError(t, room.handleStartGame("p1"))

		got := room.publicView()
		assert.Equal(t, "playing", got.Status)
		assert.Equal(t, "ar", got.CurrentPrompt)
		assert.Equal(t, "p1", got.CurrentPlayerID)
		assert.Equal(t, 1, got.Round)
		assert.Equal(t, room.turnDeadline.UnixMilli(), got.TurnDeadline)
	})

	t.Run("ended hides turn state again", func(t *testing.T) {
		room.endGame()

		got := room.publicView()
		assert.Equal(t, "ended", got.Status)
		assert.Empty(t, got.CurrentPrompt)
		assert.Empty(t, got.CurrentPlayerID)
		assert.Zero(t, got.TurnDeadline)
	})
}

func TestOptionsSanitized(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   Options
		want Options
	}{
		{name: "zero values get defaults", in: Options{}, want: Options{TurnSeconds: DefaultTurnSeconds, Lives: DefaultLives}},
		{name: "below minimum clamped up", in: Options{TurnSeconds: 1, Lives: -2}, want: Options{TurnSeconds: MinTurnSeconds, Lives: MinLives}},
		{name: "above maximum clamped down", in: Options{TurnSeconds: 120, Lives: 9}, want: Options{TurnSeconds: MaxTurnSeconds, Lives: MaxLives}},
		{name: "valid values untouched", in: Options{TurnSeconds: 12, Lives: 4, StrictRejects: true}, want: Options{TurnSeconds: 12, Lives: 4, StrictRejects: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.sanitized())
		})
	}
}
