package game

import "github.com/samber/lo"

type PlayerView struct {
	ID         string `json:"id"`
	Nickname   string `json:"nickname"`
	Lives      int    `json:"lives"`
	Eliminated bool   `json:"eliminated"`
}

// RoomView is the read-only projection sent to clients. Timer handles and
// the used-word set stay internal; only the count is exposed.
type RoomView struct {
	Code            string       `json:"code"`
	OwnerID         string       `json:"ownerId"`
	Status          string       `json:"status"`
	Players         []PlayerView `json:"players"`
	UsedWordCount   int          `json:"usedWordCount"`
	CurrentPrompt   string       `json:"currentPrompt,omitempty"`
	CurrentPlayerID string       `json:"currentPlayerId,omitempty"`
	Round           int          `json:"round"`
	Options         Options      `json:"options"`
	TurnDeadline    int64        `json:"turnDeadline,omitempty"` // unix milliseconds
}

func (r *Room) publicView() RoomView {
	view := RoomView{
		Code:    r.code,
		OwnerID: r.ownerID,
		Status:  r.status.String(),
		Players: lo.Map(r.players, func(p *Player, _ int) PlayerView {
			return PlayerView{ID: p.ID, Nickname: p.Nickname, Lives: p.Lives, Eliminated: p.Eliminated}
		}),
		UsedWordCount: len(r.usedWords),
		Round:         r.round,
		Options:       r.options,
	}
	if r.status == StatusPlaying {
		view.CurrentPrompt = r.currentPrompt
		view.CurrentPlayerID = r.currentPlayerID
		view.TurnDeadline = r.turnDeadline.UnixMilli()
	}
	return view
}
